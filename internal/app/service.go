// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pciu/dutyfinder/internal/domain/extract"
	"github.com/pciu/dutyfinder/internal/domain/model"
	"github.com/pciu/dutyfinder/internal/domain/query"
	"github.com/pciu/dutyfinder/internal/domain/schedule"
	"github.com/pciu/dutyfinder/internal/domain/segment"
	"github.com/pciu/dutyfinder/pkg/logger"
	"github.com/pciu/dutyfinder/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultMaxInputBytes   = 1 << 20
	defaultMaxInputLines   = 20_000
	defaultSampleCodeLimit = 20
)

// Service wires the parsing pipeline for the HTTP API. Every parse call is
// independent: records are produced fresh and nothing is memoized across
// calls, since duty lists derive from caller-supplied text.
type Service struct {
	mu sync.RWMutex

	// Core components, built on Start.
	extractor *extract.Extractor
	segmenter *segment.Segmenter
	parser    *schedule.Parser

	// Configuration
	excludedCodes      []string
	boilerplateMarkers []string
	tableMarkers       []string
	blockTerminators   []string
	maxInputBytes      int
	maxInputLines      int
	sampleCodeLimit    int

	// Running totals for /stats.
	parseCalls   atomic.Int64
	dutiesTotal  atomic.Int64
	lookupCalls  atomic.Int64
	lookupMisses atomic.Int64

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithExcludedCodes sets the program-code exclusion table.
func WithExcludedCodes(codes []string) Option {
	return func(s *Service) {
		if len(codes) > 0 {
			s.excludedCodes = codes
		}
	}
}

// WithBoilerplateMarkers sets the letterhead/footer skip table.
func WithBoilerplateMarkers(markers []string) Option {
	return func(s *Service) {
		if len(markers) > 0 {
			s.boilerplateMarkers = markers
		}
	}
}

// WithTableMarkers sets the table-header/separator skip table.
func WithTableMarkers(markers []string) Option {
	return func(s *Service) {
		if len(markers) > 0 {
			s.tableMarkers = markers
		}
	}
}

// WithBlockTerminators sets the course-block terminator table.
func WithBlockTerminators(markers []string) Option {
	return func(s *Service) {
		if len(markers) > 0 {
			s.blockTerminators = markers
		}
	}
}

// WithInputLimits sets the defensive input caps. Zero disables a cap.
func WithInputLimits(maxBytes, maxLines int) Option {
	return func(s *Service) {
		s.maxInputBytes = maxBytes
		s.maxInputLines = maxLines
	}
}

// WithSampleCodeLimit bounds the code sample returned on lookup misses.
func WithSampleCodeLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.sampleCodeLimit = limit
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		excludedCodes:      extract.DefaultExcludedCodes(),
		boilerplateMarkers: schedule.DefaultBoilerplateMarkers(),
		tableMarkers:       schedule.DefaultTableMarkers(),
		blockTerminators:   schedule.DefaultBlockTerminators(),
		maxInputBytes:      defaultMaxInputBytes,
		maxInputLines:      defaultMaxInputLines,
		sampleCodeLimit:    defaultSampleCodeLimit,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the parsing pipeline.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.extractor = extract.New(extract.WithExcludedCodes(s.excludedCodes))
	s.segmenter = segment.New(s.extractor)
	s.parser = schedule.New(
		schedule.WithSegmenter(s.segmenter),
		schedule.WithBoilerplateMarkers(s.boilerplateMarkers),
		schedule.WithTableMarkers(s.tableMarkers),
		schedule.WithBlockTerminators(s.blockTerminators),
		schedule.WithMaxLines(s.maxInputLines),
	)

	s.started = true
	s.logger.Info(ctx, "duty finder service started",
		logger.Int("excludedCodes", len(s.excludedCodes)),
		logger.Int("maxInputBytes", s.maxInputBytes),
		logger.Int("maxInputLines", s.maxInputLines),
		logger.Int("sampleCodeLimit", s.sampleCodeLimit),
	)

	return nil
}

// Stop shuts the service down. The pipeline holds no resources; this only
// flips the started flag so Start can rebuild with fresh options.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "duty finder service stopped")
}

// ParseSchedule extracts all duty records from raw schedule text. It fails
// with schedule.ErrEmptyInput on blank text, schedule.ErrInputTooLarge past
// the defensive caps, and schedule.ErrNoDuties when nothing was recovered.
// Any panic inside the heuristics is converted to ErrParseFailure; partial,
// best-effort extraction is the designed behavior, not a crash.
func (s *Service) ParseSchedule(ctx context.Context, text string) (records []model.DutyRecord, err error) {
	if strings.TrimSpace(text) == "" {
		return nil, schedule.ErrEmptyInput
	}
	if s.maxInputBytes > 0 && len(text) > s.maxInputBytes {
		return nil, schedule.ErrInputTooLarge
	}

	defer func() {
		if r := recover(); r != nil {
			// The logger is nil until Start; the boundary must still hold.
			if s.logger != nil {
				s.logger.Error(ctx, "panic during schedule parse", logger.Any("panic", r))
			}
			records, err = nil, ErrParseFailure
		}
	}()

	start := time.Now()
	records, err = s.parser.Parse(ctx, text)
	if err != nil {
		return nil, err
	}

	metrics.RecordParseDuration(float64(time.Since(start).Microseconds()) / 1000.0)
	metrics.RecordParseInputLines(strings.Count(text, "\n") + 1)
	s.parseCalls.Add(1)

	if len(records) == 0 {
		metrics.RecordParseFailure()
		s.logger.Debug(ctx, "no duties recovered from text",
			logger.Int("bytes", len(text)),
		)
		return nil, schedule.ErrNoDuties
	}

	metrics.RecordScheduleParsed()
	metrics.RecordDutiesExtracted(len(records))
	s.dutiesTotal.Add(int64(len(records)))

	s.logger.Debug(ctx, "schedule parsed",
		logger.Int("duties", len(records)),
	)
	return records, nil
}

// FindDuties returns every record assigned to code, case-insensitively. An
// empty result is a legitimate zero-match condition, not an error.
func (s *Service) FindDuties(ctx context.Context, records []model.DutyRecord, code string) ([]model.DutyRecord, error) {
	if strings.TrimSpace(code) == "" {
		return nil, schedule.ErrEmptyInput
	}

	matches := query.FindDuties(records, code)

	metrics.RecordLookup()
	s.lookupCalls.Add(1)
	if len(matches) == 0 {
		metrics.RecordLookupMiss()
		s.lookupMisses.Add(1)
		if s.logger != nil {
			s.logger.Debug(ctx, "lookup missed", logger.String("code", code))
		}
	}
	return matches, nil
}

// AllCodes returns the sorted distinct invigilator codes across records.
func (s *Service) AllCodes(records []model.DutyRecord) []string {
	return query.AllCodes(records)
}

// SampleCodes returns a bounded sorted code sample for "not found" hints.
func (s *Service) SampleCodes(records []model.DutyRecord) []string {
	return query.SampleCodes(records, s.sampleCodeLimit)
}

// OtherInvigilators returns rec's invigilator list minus the queried code.
func (s *Service) OtherInvigilators(rec model.DutyRecord, code string) []string {
	return query.OtherInvigilators(rec, code)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":         s.started,
		"parseCalls":      s.parseCalls.Load(),
		"dutiesExtracted": s.dutiesTotal.Load(),
		"lookupCalls":     s.lookupCalls.Load(),
		"lookupMisses":    s.lookupMisses.Load(),
		"maxInputBytes":   s.maxInputBytes,
		"maxInputLines":   s.maxInputLines,
		"sampleCodeLimit": s.sampleCodeLimit,
	}
}
