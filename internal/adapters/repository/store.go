// Package repository defines the dataset store interface and errors.
package repository

import (
	"context"

	"github.com/okian/joblens/internal/domain/record"
)

// Store provides access to the normalized dataset the aggregations read.
//
// The dataset is append-only: records are never mutated or removed outside
// Reset, so a snapshot is a stable prefix of the backing storage and stays
// valid while later appends happen.
type Store interface {
	// Append adds normalized records and bumps the dataset version once per
	// non-empty batch.
	Append(ctx context.Context, recs ...record.Record)

	// Snapshot returns the current records. The returned slice must not be
	// modified by callers.
	Snapshot(ctx context.Context) []record.Record

	// Len returns the number of records currently stored.
	Len(ctx context.Context) int

	// Version returns the monotonic dataset version. Two equal versions
	// imply identical snapshots.
	Version(ctx context.Context) int64

	// Reset drops all records and bumps the version.
	Reset(ctx context.Context)
}
