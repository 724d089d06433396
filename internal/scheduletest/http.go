package scheduletest

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

	"github.com/pciu/dutyfinder/pkg/logger"
)

// HTTPClient wraps http.Client with a shared timeout.
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body.
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

func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// verifyParse posts the schedule to /debug and checks the duty count.
func verifyParse(ctx context.Context, client *HTTPClient, config *Config, gen *generated, stats *Stats) error {
	resp, err := client.Post(ctx, config.BaseURL+"/debug", debugRequest{ScheduleText: gen.Text})
	if err != nil {
		return fmt.Errorf("debug request failed: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read debug response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("debug returned status %d: %s", resp.StatusCode, body)
	}

	var dbg debugResponse
	if err := json.Unmarshal(body, &dbg); err != nil {
		return fmt.Errorf("failed to decode debug response: %w", err)
	}

	stats.DutiesParsed = dbg.TotalDuties
	logger.Get().Info(ctx, "debug parse summary",
		logger.Int("dutiesParsed", dbg.TotalDuties),
		logger.Int("dutiesExpected", gen.TotalDuties),
		logger.Int("invigilators", dbg.InvigilatorCount))

	if dbg.TotalDuties != gen.TotalDuties {
		return fmt.Errorf("parsed %d duties, expected %d", dbg.TotalDuties, gen.TotalDuties)
	}
	return nil
}

// lookupCodes searches every code in the pool concurrently and compares the
// reported duty count against the generator's ground truth.
func lookupCodes(ctx context.Context, client *HTTPClient, config *Config, gen *generated, stats *Stats) error {
	logger.Get().Info(ctx, "looking up codes",
		logger.Int("codes", len(gen.Pool)),
		logger.Int("workers", config.Workers))

	var (
		issued   int64
		matched  int64
		mismatch int64
		failed   int64
	)

	codeChan := make(chan string, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for code := range codeChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				if config.Verbose {
					logger.Get().Debug(ctx, "looking up code", logger.String("code", code))
				}

				atomic.AddInt64(&issued, 1)
				switch lookupSingleCode(ctx, client, config, gen, code) {
				case lookupMatched:
					atomic.AddInt64(&matched, 1)
				case lookupMismatch:
					atomic.AddInt64(&mismatch, 1)
					logger.Get().Warn(ctx, "duty count mismatch", logger.String("code", code))
				default:
					atomic.AddInt64(&failed, 1)
				}
			}
		}()
	}

	go func() {
		defer close(codeChan)
		for _, code := range gen.Pool {
			select {
			case <-ctx.Done():
				return
			case codeChan <- code:
			}
		}
	}()

	wg.Wait()

	stats.LookupsIssued = int(atomic.LoadInt64(&issued))
	stats.LookupsMatched = int(atomic.LoadInt64(&matched))
	stats.LookupsMismatch = int(atomic.LoadInt64(&mismatch))
	stats.LookupsFailed = int(atomic.LoadInt64(&failed))

	if stats.LookupsMismatch > 0 || stats.LookupsFailed > 0 {
		return fmt.Errorf("lookups diverged: %d mismatched, %d failed of %d",
			stats.LookupsMismatch, stats.LookupsFailed, stats.LookupsIssued)
	}
	return nil
}

type lookupResult int

const (
	lookupMatched lookupResult = iota
	lookupMismatch
	lookupFailed
)

// lookupSingleCode queries /search for one code. A code the generator never
// placed resolves as matched when the service answers 404.
func lookupSingleCode(ctx context.Context, client *HTTPClient, config *Config, gen *generated, code string) lookupResult {
	resp, err := client.Post(ctx, config.BaseURL+"/search", searchRequest{
		ScheduleText:    gen.Text,
		InvigilatorCode: code,
	})
	if err != nil {
		return lookupFailed
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return lookupFailed
	}

	expected := gen.Expected[code]

	switch resp.StatusCode {
	case http.StatusOK:
		var sr searchResponse
		if err := json.Unmarshal(body, &sr); err != nil {
			return lookupFailed
		}
		if sr.TotalDuties == expected {
			return lookupMatched
		}
		return lookupMismatch
	case http.StatusNotFound:
		if expected == 0 {
			return lookupMatched
		}
		return lookupMismatch
	default:
		return lookupFailed
	}
}
