// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pciu/dutyfinder/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// ParseSchedule extracts duty records from raw schedule text.
	ParseSchedule(ctx context.Context, text string) ([]model.DutyRecord, error)

	// FindDuties answers a code lookup over parsed records.
	FindDuties(ctx context.Context, records []model.DutyRecord, code string) ([]model.DutyRecord, error)

	// AllCodes and SampleCodes expose the distinct-code listings.
	AllCodes(records []model.DutyRecord) []string
	SampleCodes(records []model.DutyRecord) []string

	// OtherInvigilators trims the queried code from a record's list.
	OtherInvigilators(rec model.DutyRecord, code string) []string
}

// Server wires HTTP routes for the business API.
type Server struct {
	indexHandler  *indexHandler
	searchHandler *SearchHandler
	debugHandler  *DebugHandler
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		indexHandler:  newIndexHandler(),
		searchHandler: NewSearchHandler(deps),
		debugHandler:  NewDebugHandler(deps),
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/search", RequestIDMiddleware(MetricsMiddleware(s.searchHandler.HandleSearch, "search")))
	mux.HandleFunc("/debug", RequestIDMiddleware(MetricsMiddleware(s.debugHandler.HandleDebug, "debug")))
	mux.HandleFunc("/", s.indexHandler.HandleIndex)
}

type errorResponse struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	SampleCodes []string `json:"sample_codes,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

func writeErrorWithSample(w http.ResponseWriter, status int, code, msg string, sample []string) {
	writeJSON(w, status, errorResponse{Code: code, Message: msg, SampleCodes: sample})
}
