package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/joblens/internal/testrecords"
)

// Default configuration constants.
const (
	defaultNumRecords    = 10000
	defaultBatchSize     = 100
	defaultWorkers       = 2 // multiplier for runtime.NumCPU()
	defaultTimeout       = 30 * time.Second
	defaultMalformedRate = 0.1
	defaultSeedTimeout   = 10 * time.Minute
)

func main() {
	var (
		baseURL       = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numRecords    = flag.Int("records", defaultNumRecords, "Number of postings to generate and submit")
		batchSize     = flag.Int("batch", defaultBatchSize, "Postings per request")
		workers       = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout       = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		malformedRate = flag.Float64("malformed", defaultMalformedRate, "Fraction of postings with damaged fields")
		waitTime      = flag.Duration("wait", testrecords.DefaultWaitTime, "Time to wait for async processing before verification")
		logFile       = flag.String("log", "", "Log file for seeding output (default: seed_log_TIMESTAMP.log)")
		verbose       = flag.Bool("verbose", false, "Enable verbose logging")
		help          = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		testrecords.ShowHelp()
		return
	}

	// Setup logging
	if err := testrecords.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultSeedTimeout)
	defer cancel()

	// Create seeding configuration
	config := &testrecords.Config{
		BaseURL:       *baseURL,
		NumRecords:    *numRecords,
		BatchSize:     *batchSize,
		Workers:       *workers,
		Timeout:       *timeout,
		MalformedRate: *malformedRate,
		WaitTime:      *waitTime,
		LogFile:       *logFile,
		Verbose:       *verbose,
	}

	// Run the seeding
	if err := testrecords.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seeding failed: " + err.Error() + "\n")
		return
	}
}
