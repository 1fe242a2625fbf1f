// Package memo caches computed insight snapshots keyed by dataset version.
package memo

// Option applies a configuration option to the in-memory cache.
type Option func(*inMemoryCache)

// WithMaxSize sets the maximum number of snapshots to keep.
// Values <= 0 leave the default in place.
func WithMaxSize(maxSize int) Option {
	return func(c *inMemoryCache) {
		if maxSize > 0 {
			c.maxSize = maxSize
		}
	}
}
