package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/pciu/dutyfinder/internal/scheduletest"
)

// Default configuration constants.
const (
	defaultNumBlocks   = 200
	defaultPoolSize    = 40
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numBlocks  = flag.Int("blocks", defaultNumBlocks, "Number of course blocks to generate")
		poolSize   = flag.Int("pool", defaultPoolSize, "Number of distinct invigilator codes")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent lookup workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for the generated schedule (default: generated_schedule_RUNID.txt)")
		logFile    = flag.String("log", "", "Log file for test output (default: test_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		scheduletest.ShowHelp()
		return
	}

	if err := scheduletest.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	config := &scheduletest.Config{
		BaseURL:    *baseURL,
		NumBlocks:  *numBlocks,
		PoolSize:   *poolSize,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	if err := scheduletest.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		return
	}
}
