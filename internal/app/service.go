// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	ingestqueue "github.com/okian/joblens/internal/adapters/mq/queue"
	workerpool "github.com/okian/joblens/internal/adapters/mq/worker"
	repository "github.com/okian/joblens/internal/adapters/repository"
	"github.com/okian/joblens/internal/domain/insights"
	"github.com/okian/joblens/internal/domain/memo"
	"github.com/okian/joblens/internal/domain/normalize"
	"github.com/okian/joblens/internal/domain/record"
	"github.com/okian/joblens/pkg/logger"
	"github.com/okian/joblens/pkg/metrics"
)

// normalizeAdapter adapts the normalize package to worker.Normalizer.
type normalizeAdapter struct{}

func (normalizeAdapter) Normalize(raw record.Raw) record.Record {
	return normalize.Normalize(raw)
}

// Service implements the API dependencies for the insight system.
type Service struct {
	mu sync.RWMutex

	// Core components
	dataset *repository.DatasetStore
	queue   ingestqueue.Queue
	pool    *workerpool.Pool
	engine  *insights.Engine
	cache   memo.Cache

	// Configuration
	workerCount  int
	queueSize    int
	memoSize     int
	roleLimit    int
	skillLimit   int
	countryLimit int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of ingest workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the ingest queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithMemoSize sets the size of the insight snapshot cache.
func WithMemoSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.memoSize = size
		}
	}
}

// WithTableLimits sets the ranked table bounds. Role covers both the
// top-roles and salary-by-role tables.
func WithTableLimits(role, skill, country int) Option {
	return func(s *Service) {
		if role > 0 {
			s.roleLimit = role
		}
		if skill > 0 {
			s.skillLimit = skill
		}
		if country > 0 {
			s.countryLimit = country
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:  runtime.NumCPU() * 2,
		queueSize:    100000,
		memoSize:     4,
		roleLimit:    10,
		skillLimit:   12,
		countryLimit: 8,
		logger:       nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting insight service...")

	s.dataset = repository.NewDatasetStore(ctx)
	s.cache = memo.NewInMemoryCache(
		memo.WithMaxSize(s.memoSize),
	)
	s.queue = ingestqueue.NewInMemoryQueue(
		ingestqueue.WithCapacity(s.queueSize),
		ingestqueue.WithBufferSize(s.queueSize),
	)
	s.engine = insights.New(
		insights.WithRoleLimit(s.roleLimit),
		insights.WithSalaryLimit(s.roleLimit),
		insights.WithSkillLimit(s.skillLimit),
		insights.WithCountryLimit(s.countryLimit),
	)

	s.pool = workerpool.NewPool(s.workerCount, s.queue, normalizeAdapter{}, s.dataset)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "insight service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("memoSize", s.memoSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping insight service...")

	// Closing the queue lets the workers drain before stopping.
	if q, ok := s.queue.(*ingestqueue.InMemoryQueue); ok {
		_ = q.Close()
	}
	if s.pool != nil {
		s.pool.Stop()
	}

	s.started = false
	s.logger.Info(context.Background(), "insight service stopped")
}

// Submit enqueues one raw posting for asynchronous processing.
// Returns false on backpressure.
func (s *Service) Submit(ctx context.Context, raw record.Raw) bool {
	sub := ingestqueue.Submission{
		ID:  uuid.New().String(),
		Raw: raw,
	}
	ok := s.queue.Enqueue(ctx, sub)
	if !ok {
		metrics.RecordRecordRejected()
		s.logger.Warn(ctx, "submission rejected",
			logger.String("submissionID", sub.ID),
		)
	}
	return ok
}

// SubmitBatch enqueues many raw postings and returns how many were accepted.
func (s *Service) SubmitBatch(ctx context.Context, raws []record.Raw) int {
	accepted := 0
	for _, raw := range raws {
		if s.Submit(ctx, raw) {
			accepted++
		}
	}
	return accepted
}

// Seed synchronously normalizes and stores raws, bypassing the queue. Used
// for startup datasets where readiness should imply a populated store.
func (s *Service) Seed(ctx context.Context, raws []record.Raw) {
	if len(raws) == 0 {
		return
	}
	s.dataset.Append(ctx, normalize.All(raws)...)
	for range raws {
		metrics.RecordRecordIngested()
	}
	s.logger.Info(ctx, "seeded dataset", logger.Int("records", len(raws)))
}

// Insights returns the tables for the current dataset, serving from the
// snapshot cache when the dataset version has not moved.
func (s *Service) Insights(ctx context.Context) insights.Insights {
	recs, version := s.dataset.VersionedSnapshot(ctx)

	if cached, ok := s.cache.Get(version); ok {
		metrics.RecordMemoHit()
		return cached
	}
	metrics.RecordMemoMiss()

	start := time.Now()
	result := s.engine.Compute(recs)
	metrics.RecordRecompute(float64(time.Since(start).Milliseconds()))

	metrics.UpdateTableRows("topRoles", result.Status.TopRoles)
	metrics.UpdateTableRows("salaryByRole", result.Status.SalaryByRole)
	metrics.UpdateTableRows("skillsDemand", result.Status.SkillsDemand)
	metrics.UpdateTableRows("jobsByCountry", result.Status.JobsByCountry)
	metrics.UpdateTableRows("salaryTrend", result.Status.SalaryTrend)

	s.cache.Put(version, result)
	return result
}

// Status returns the digest of the current computation.
func (s *Service) Status(ctx context.Context) insights.Status {
	return s.Insights(ctx).Status
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"memoSize":    s.memoSize,
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		records := s.dataset.Len(ctx)

		stats["queueLength"] = queueLen
		stats["datasetRecords"] = records
		stats["datasetVersion"] = s.dataset.Version(ctx)
		stats["memoEntries"] = s.cache.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateDatasetRecords(records)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}
