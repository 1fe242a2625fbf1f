// Package repository defines the dataset store interface and errors.
package repository

import (
	"context"
	"sync"

	"github.com/okian/joblens/internal/domain/record"
	"github.com/okian/joblens/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultInitialCapacity = 1024
)

// DatasetStore implements Store with an RWMutex-guarded append-only slice.
type DatasetStore struct {
	mu              sync.RWMutex
	records         []record.Record
	version         int64
	initialCapacity int
}

// NewDatasetStore creates an empty store with configuration options.
func NewDatasetStore(_ context.Context, opts ...Option) *DatasetStore {
	s := &DatasetStore{
		initialCapacity: defaultInitialCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.records = make([]record.Record, 0, s.initialCapacity)

	metrics.UpdateDatasetRecords(0)
	metrics.UpdateDatasetVersion(0)

	return s
}

// Append adds recs to the dataset. Empty batches do not bump the version, so
// snapshot caches keyed by version stay warm across no-op calls.
func (s *DatasetStore) Append(ctx context.Context, recs ...record.Record) {
	if len(recs) == 0 {
		return
	}

	s.mu.Lock()
	s.records = append(s.records, recs...)
	s.version++
	count, version := len(s.records), s.version
	s.mu.Unlock()

	metrics.UpdateDatasetRecords(count)
	metrics.UpdateDatasetVersion(version)
}

// Snapshot returns the current records. Appends only ever grow the backing
// slice, so the returned prefix is immutable from the caller's point of view.
func (s *DatasetStore) Snapshot(ctx context.Context) []record.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[:len(s.records):len(s.records)]
}

// Len returns the number of stored records.
func (s *DatasetStore) Len(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Version returns the monotonic dataset version.
func (s *DatasetStore) Version(ctx context.Context) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// VersionedSnapshot returns the records together with the version they
// belong to, read under one lock so the pair is consistent.
func (s *DatasetStore) VersionedSnapshot(ctx context.Context) ([]record.Record, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[:len(s.records):len(s.records)], s.version
}

// Reset drops all records and bumps the version.
func (s *DatasetStore) Reset(ctx context.Context) {
	s.mu.Lock()
	s.records = make([]record.Record, 0, s.initialCapacity)
	s.version++
	version := s.version
	s.mu.Unlock()

	metrics.UpdateDatasetRecords(0)
	metrics.UpdateDatasetVersion(version)
}
