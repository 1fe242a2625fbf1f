package testrecords

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/okian/joblens/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "seed_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the record seeding tool.
func ShowHelp() {
	os.Stdout.WriteString(`JobLens Record Seeding Tool
===========================

A concurrent tool for seeding a running JobLens instance with synthetic
job postings and verifying the resulting insight tables.

Usage:
  go run cmd/seed-records/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -records int
        Number of postings to generate and submit (default 10000)
  -batch int
        Postings per request (default 100)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -malformed float
        Fraction of postings with deliberately damaged fields (default 0.1)
  -wait duration
        Time to wait for async processing before verification (default 3s)
  -log string
        Log file for seeding output (default: seed_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Seed with default settings
  go run cmd/seed-records/main.go

  # Seed with custom parameters
  go run cmd/seed-records/main.go -records 50000 -workers 16 -url http://localhost:8080

  # Seed with a higher malformed fraction
  go run cmd/seed-records/main.go -records 10000 -malformed 0.25
`)
}
