package scheduletest

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pciu/dutyfinder/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// Run executes the complete schedule round-trip test: generate a synthetic
// schedule, verify the service parses it, and look up every code in the pool.
func Run(ctx context.Context, config *Config) error {
	runID := uuid.New().String()
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting schedule round-trip test",
		logger.String("runID", runID),
		logger.String("baseURL", config.BaseURL),
		logger.Int("blocks", config.NumBlocks),
		logger.Int("poolSize", config.PoolSize),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()))

	client := newHTTPClient(config.Timeout)

	if err := checkServiceHealth(ctx, client, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	gen, err := generateSchedule(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("schedule generation failed: %w", err)
	}

	if err := verifyParse(ctx, client, config, gen, stats); err != nil {
		return fmt.Errorf("parse verification failed: %w", err)
	}

	if err := lookupCodes(ctx, client, config, gen, stats); err != nil {
		return fmt.Errorf("code lookup failed: %w", err)
	}

	if err := saveScheduleToFile(ctx, config, gen, runID); err != nil {
		logger.Get().Warn(ctx, "failed to save schedule to file", logger.Error(err))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	logger.Get().Info(ctx, "test completed successfully", logger.String("runID", runID))
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Any 200 counts as healthy (the endpoint serves Prometheus metrics).
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveScheduleToFile writes the generated schedule text to disk.
func saveScheduleToFile(ctx context.Context, config *Config, gen *generated, runID string) error {
	if gen.Text == "" {
		return fmt.Errorf("no schedule to save")
	}

	filename := config.OutputFile
	if filename == "" {
		filename = "generated_schedule_" + runID + ".txt"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(filename, []byte(gen.Text), filePermission); err != nil {
		return fmt.Errorf("failed to write schedule: %w", err)
	}

	logger.Get().Info(ctx, "schedule saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("blocksGenerated", stats.BlocksGenerated),
		logger.Int("dutiesExpected", stats.DutiesExpected),
		logger.Int("dutiesParsed", stats.DutiesParsed),
		logger.Int("lookupsIssued", stats.LookupsIssued),
		logger.Int("lookupsMatched", stats.LookupsMatched),
		logger.Int("lookupsMismatch", stats.LookupsMismatch),
		logger.Int("lookupsFailed", stats.LookupsFailed),
		logger.String("duration", stats.Duration.String()))
}
