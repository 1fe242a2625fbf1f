package testrecords

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/joblens/internal/domain/record"
	"github.com/okian/joblens/pkg/logger"
)

// Run executes the complete seed-and-verify flow.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting record seeding",
		logger.String("baseURL", config.BaseURL),
		logger.Int("records", config.NumRecords),
		logger.Int("batchSize", config.BatchSize),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Float64("malformedRate", config.MalformedRate),
		logger.Bool("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate postings
	raws := generateRecords(ctx, config, stats)

	// Step 3: Submit in batches
	if err := submitRecords(ctx, config, toBatches(raws, config.BatchSize), stats); err != nil {
		return fmt.Errorf("record submission failed: %w", err)
	}

	// Step 4: Wait for the queue to drain
	logger.Get().Info(ctx, "waiting for records to be processed")
	time.Sleep(config.WaitTime)

	// Step 5: Fetch insights
	view, err := fetchInsights(ctx, config)
	if err != nil {
		return fmt.Errorf("insight retrieval failed: %w", err)
	}

	// Step 6: Verify table bounds and ordering
	if err := verifyInsights(ctx, view, stats); err != nil {
		return fmt.Errorf("insight verification failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "seeding completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// toBatches splits raws into batches of the given size.
func toBatches(raws []record.Raw, size int) []batch {
	if size <= 0 {
		size = 1
	}
	batches := make([]batch, 0, (len(raws)+size-1)/size)
	for start := 0; start < len(raws); start += size {
		end := start + size
		if end > len(raws) {
			end = len(raws)
		}
		batches = append(batches, batch(raws[start:end]))
	}
	return batches
}

// displayFinalStats prints the final seeding statistics.
func displayFinalStats(stats *Stats) {
	var acceptRate, recordsPerSecond float64

	if stats.RecordsSubmitted > 0 {
		acceptRate = float64(stats.RecordsAccepted) / float64(stats.RecordsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		recordsPerSecond = float64(stats.RecordsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("recordsGenerated", stats.RecordsGenerated),
		logger.Int("recordsSubmitted", stats.RecordsSubmitted),
		logger.Int("recordsAccepted", stats.RecordsAccepted),
		logger.Int("recordsRejected", stats.RecordsRejected),
		logger.Int("batchesFailed", stats.BatchesFailed),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("acceptRate", acceptRate),
		logger.Float64("recordsPerSecond", recordsPerSecond))
}
