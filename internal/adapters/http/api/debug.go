// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pciu/dutyfinder/internal/domain/model"
)

// maxSampleDuties bounds the duty sample in debug responses.
const maxSampleDuties = 5

type debugRequest struct {
	ScheduleText string `json:"schedule_text"`
}

type debugResponse struct {
	TotalDuties      int                `json:"total_duties"`
	SampleDuties     []model.DutyRecord `json:"sample_duties"`
	AllInvigilators  []string           `json:"all_invigilators"`
	InvigilatorCount int                `json:"invigilator_count"`
}

// DebugHandler exposes parser diagnostics for a pasted schedule.
type DebugHandler struct {
	deps Dependencies
}

// NewDebugHandler creates a new debug handler.
func NewDebugHandler(deps Dependencies) *DebugHandler {
	return &DebugHandler{deps: deps}
}

// HandleDebug handles POST /debug requests.
func (h *DebugHandler) HandleDebug(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req debugRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.ScheduleText) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, errors.New("missing schedule_text")))
		return
	}

	records, err := h.deps.ParseSchedule(r.Context(), req.ScheduleText)
	if err != nil {
		writeParseError(w, err)
		return
	}

	sample := records
	if len(sample) > maxSampleDuties {
		sample = sample[:maxSampleDuties]
	}
	codes := h.deps.AllCodes(records)

	writeJSON(w, http.StatusOK, debugResponse{
		TotalDuties:      len(records),
		SampleDuties:     sample,
		AllInvigilators:  codes,
		InvigilatorCount: len(codes),
	})
}
