// Package repository defines the dataset store interface and errors.
package repository

// Option applies a configuration option to the DatasetStore.
type Option func(*DatasetStore)

// WithInitialCapacity pre-sizes the backing slice for an expected dataset.
func WithInitialCapacity(capacity int) Option {
	return func(s *DatasetStore) {
		if capacity > 0 {
			s.initialCapacity = capacity
		}
	}
}
