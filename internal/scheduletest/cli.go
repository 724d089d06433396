package scheduletest

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/pciu/dutyfinder/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "test_log_" + timestamp + ".log"
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

// ShowHelp prints usage information for the schedule test tool.
func ShowHelp() {
	os.Stdout.WriteString(`Duty Finder Schedule Test Tool
==============================

Generates a synthetic invigilation schedule, submits it to a running
duty-finder service, and verifies every invigilator code resolves to the
expected duty count.

Usage:
  go run cmd/schedule-test/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -blocks int
        Number of course blocks to generate (default 200)
  -pool int
        Number of distinct invigilator codes (default 40)
  -workers int
        Number of concurrent lookup workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for the generated schedule (default: generated_schedule_RUNID.txt)
  -log string
        Log file for test output (default: test_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Test with default settings
  go run cmd/schedule-test/main.go

  # Larger schedule against a non-default port
  go run cmd/schedule-test/main.go -blocks 1000 -pool 100 -url http://localhost:8080
`)
}
