// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pciu/dutyfinder/internal/domain/schedule"
)

// searchRequest mirrors the body of POST /search.
type searchRequest struct {
	ScheduleText    string `json:"schedule_text"`
	InvigilatorCode string `json:"invigilator_code"`
}

func (r searchRequest) validate() error {
	switch {
	case strings.TrimSpace(r.ScheduleText) == "":
		return errors.New("missing schedule_text")
	case strings.TrimSpace(r.InvigilatorCode) == "":
		return errors.New("missing invigilator_code")
	}
	return nil
}

// dutyView is one duty in the search response, with course/title trimmed and
// the queried code removed from the invigilator list.
type dutyView struct {
	Date              string   `json:"date"`
	Time              string   `json:"time"`
	Room              string   `json:"room"`
	OtherInvigilators []string `json:"other_invigilators"`
}

type searchResponse struct {
	Success     bool       `json:"success"`
	Invigilator string     `json:"invigilator"`
	TotalDuties int        `json:"total_duties"`
	Duties      []dutyView `json:"duties"`
}

// SearchHandler handles duty search requests.
type SearchHandler struct {
	deps Dependencies
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(deps Dependencies) *SearchHandler {
	return &SearchHandler{deps: deps}
}

// HandleSearch handles POST /search requests.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}

	ctx := r.Context()
	code := strings.ToUpper(strings.TrimSpace(req.InvigilatorCode))

	records, err := h.deps.ParseSchedule(ctx, req.ScheduleText)
	if err != nil {
		writeParseError(w, err)
		return
	}

	matches, err := h.deps.FindDuties(ctx, records, code)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	if len(matches) == 0 {
		writeErrorWithSample(w, http.StatusNotFound, "no_match",
			fmt.Sprintf("no duties found for invigilator %q", code),
			h.deps.SampleCodes(records))
		return
	}

	duties := make([]dutyView, len(matches))
	for i, rec := range matches {
		duties[i] = dutyView{
			Date:              rec.Date,
			Time:              rec.Time,
			Room:              rec.Room,
			OtherInvigilators: h.deps.OtherInvigilators(rec, code),
		}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Success:     true,
		Invigilator: code,
		TotalDuties: len(matches),
		Duties:      duties,
	})
}

// writeParseError translates parse-stage sentinels into HTTP statuses.
func writeParseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, schedule.ErrEmptyInput):
		writeError(w, http.StatusBadRequest, "empty_input", err)
	case errors.Is(err, schedule.ErrInputTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "input_too_large", err)
	case errors.Is(err, schedule.ErrNoDuties):
		writeError(w, http.StatusUnprocessableEntity, "no_duties", errors.New("no duties could be parsed from the text; check the format"))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
