package testrecords

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/joblens/pkg/logger"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer func() {
		_ = resp.Body.Close()
	}()
	return io.ReadAll(resp.Body)
}

// submitRecords submits postings in batches using a worker pool.
func submitRecords(ctx context.Context, config *Config, records []batch, stats *Stats) error {
	logger.Get().Info(ctx, "submitting batches",
		logger.Int("batches", len(records)),
		logger.Int("workers", config.Workers),
	)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/records"

	var (
		submitted int64
		accepted  int64
		rejected  int64
		failed    int64
	)

	batchChan := make(chan batch, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range batchChan {
				select {
				case <-ctx.Done():
					return
				default:
					ack, err := submitSingleBatch(ctx, client, url, b)
					atomic.AddInt64(&submitted, int64(len(b)))
					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							logger.Get().Warn(ctx, "batch submission failed", logger.Error(err))
						}
						continue
					}
					atomic.AddInt64(&accepted, int64(ack.Accepted))
					atomic.AddInt64(&rejected, int64(ack.Rejected))
				}
			}
		}()
	}

	go func() {
		defer close(batchChan)
		for _, b := range records {
			select {
			case <-ctx.Done():
				return
			case batchChan <- b:
			}
		}
	}()

	wg.Wait()

	stats.RecordsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.RecordsAccepted = int(atomic.LoadInt64(&accepted))
	stats.RecordsRejected = int(atomic.LoadInt64(&rejected))
	stats.BatchesFailed = int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "submission completed",
		logger.Int("submitted", stats.RecordsSubmitted),
		logger.Int("accepted", stats.RecordsAccepted),
		logger.Int("rejected", stats.RecordsRejected),
		logger.Int("batchesFailed", stats.BatchesFailed),
	)

	return nil
}

// submitSingleBatch posts one batch and decodes the ack.
func submitSingleBatch(ctx context.Context, client *HTTPClient, url string, b batch) (*ingestAck, error) {
	resp, err := client.Post(ctx, url, b)
	if err != nil {
		return nil, err
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != StatusAccepted {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var ack ingestAck
	if err := json.Unmarshal(body, &ack); err != nil {
		return nil, fmt.Errorf("failed to decode ack: %w", err)
	}
	return &ack, nil
}

// fetchInsights retrieves the computed insight tables.
func fetchInsights(ctx context.Context, config *Config) (*insightsView, error) {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/insights"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch insights: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("insights request failed with status %d", resp.StatusCode)
	}

	var view insightsView
	if err := json.Unmarshal(body, &view); err != nil {
		return nil, fmt.Errorf("failed to decode insights: %w", err)
	}
	return &view, nil
}
