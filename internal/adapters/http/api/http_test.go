package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pciu/dutyfinder/internal/adapters/http/api"
	"github.com/pciu/dutyfinder/internal/domain/model"
	"github.com/pciu/dutyfinder/internal/domain/schedule"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDeps implements api.Dependencies for handler tests.
type mockDeps struct {
	records  []model.DutyRecord
	parseErr error
	matches  []model.DutyRecord
	findErr  error
	sample   []string
}

func (m *mockDeps) ParseSchedule(_ context.Context, _ string) ([]model.DutyRecord, error) {
	return m.records, m.parseErr
}

func (m *mockDeps) FindDuties(_ context.Context, _ []model.DutyRecord, _ string) ([]model.DutyRecord, error) {
	return m.matches, m.findErr
}

func (m *mockDeps) AllCodes(_ []model.DutyRecord) []string {
	return m.sample
}

func (m *mockDeps) SampleCodes(_ []model.DutyRecord) []string {
	return m.sample
}

func (m *mockDeps) OtherInvigilators(rec model.DutyRecord, code string) []string {
	var others []string
	for _, inv := range rec.Invigilators {
		if !strings.EqualFold(inv, code) {
			others = append(others, inv)
		}
	}
	return others
}

type mockStats struct{}

func (mockStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func postJSON(mux *http.ServeMux, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func newMux(deps api.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, mockStats{}).Register(context.Background(), mux)
	return mux
}

func TestSearchHandler(t *testing.T) {
	Convey("Given a server with one parsed duty", t, func() {
		duty := model.DutyRecord{
			Date: "01/02/2024", Time: "(09:00am - 12:00pm)",
			Course: "CSE 101", Room: "308",
			Invigilators: []string{"ZBS", "MNJ"},
		}
		deps := &mockDeps{
			records: []model.DutyRecord{duty},
			matches: []model.DutyRecord{duty},
			sample:  []string{"MNJ", "ZBS"},
		}
		mux := newMux(deps)

		Convey("When searching for a known code", func() {
			rec := postJSON(mux, "/search", `{"schedule_text":"x","invigilator_code":"zbs"}`)

			Convey("Then the response carries the trimmed duty view", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					Success     bool   `json:"success"`
					Invigilator string `json:"invigilator"`
					TotalDuties int    `json:"total_duties"`
					Duties      []struct {
						Room              string   `json:"room"`
						OtherInvigilators []string `json:"other_invigilators"`
					} `json:"duties"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Success, ShouldBeTrue)
				So(resp.Invigilator, ShouldEqual, "ZBS")
				So(resp.TotalDuties, ShouldEqual, 1)
				So(resp.Duties[0].Room, ShouldEqual, "308")
				So(resp.Duties[0].OtherInvigilators, ShouldResemble, []string{"MNJ"})
			})

			Convey("And a request ID is echoed", func() {
				So(rec.Header().Get("X-Request-ID"), ShouldNotBeBlank)
			})
		})

		Convey("When the code matches nothing", func() {
			deps.matches = nil
			rec := postJSON(mux, "/search", `{"schedule_text":"x","invigilator_code":"XYZ"}`)

			Convey("Then 404 carries a bounded code sample", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
				var resp struct {
					Code        string   `json:"code"`
					SampleCodes []string `json:"sample_codes"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Code, ShouldEqual, "no_match")
				So(resp.SampleCodes, ShouldResemble, []string{"MNJ", "ZBS"})
			})
		})

		Convey("When fields are missing", func() {
			So(postJSON(mux, "/search", `{"schedule_text":"","invigilator_code":"ZBS"}`).Code, ShouldEqual, http.StatusBadRequest)
			So(postJSON(mux, "/search", `{"schedule_text":"x","invigilator_code":""}`).Code, ShouldEqual, http.StatusBadRequest)
			So(postJSON(mux, "/search", `not json`).Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When only GET is attempted", func() {
			req := httptest.NewRequest(http.MethodGet, "/search", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given a server whose parser finds nothing", t, func() {
		mux := newMux(&mockDeps{parseErr: schedule.ErrNoDuties})

		Convey("Then /search maps it to 422", func() {
			rec := postJSON(mux, "/search", `{"schedule_text":"x","invigilator_code":"ZBS"}`)
			So(rec.Code, ShouldEqual, http.StatusUnprocessableEntity)
			So(rec.Body.String(), ShouldContainSubstring, "no_duties")
		})
	})

	Convey("Given a server whose input cap trips", t, func() {
		mux := newMux(&mockDeps{parseErr: schedule.ErrInputTooLarge})

		Convey("Then /search maps it to 413", func() {
			rec := postJSON(mux, "/search", `{"schedule_text":"x","invigilator_code":"ZBS"}`)
			So(rec.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
		})
	})
}

func TestDebugHandler(t *testing.T) {
	Convey("Given a server with several parsed duties", t, func() {
		var records []model.DutyRecord
		for i := 0; i < 7; i++ {
			records = append(records, model.DutyRecord{Room: "308", Invigilators: []string{"ZBS"}})
		}
		deps := &mockDeps{records: records, sample: []string{"ZBS"}}
		mux := newMux(deps)

		Convey("When posting to /debug", func() {
			rec := postJSON(mux, "/debug", `{"schedule_text":"x"}`)

			Convey("Then the sample is capped at five duties", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var resp struct {
					TotalDuties      int                `json:"total_duties"`
					SampleDuties     []model.DutyRecord `json:"sample_duties"`
					AllInvigilators  []string           `json:"all_invigilators"`
					InvigilatorCount int                `json:"invigilator_count"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.TotalDuties, ShouldEqual, 7)
				So(resp.SampleDuties, ShouldHaveLength, 5)
				So(resp.AllInvigilators, ShouldResemble, []string{"ZBS"})
				So(resp.InvigilatorCount, ShouldEqual, 1)
			})
		})

		Convey("When the text is blank", func() {
			So(postJSON(mux, "/debug", `{"schedule_text":"  "}`).Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestStatsAndIndex(t *testing.T) {
	Convey("Given a registered server", t, func() {
		mux := newMux(&mockDeps{})

		Convey("Then /stats serves the provider's map", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"started":true`)
		})

		Convey("Then / serves the embedded search page", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "Invigilation Duty Finder")
		})

		Convey("Then unknown paths under / are 404", func() {
			req := httptest.NewRequest(http.MethodGet, "/nope", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Then /healthz serves the metrics exposition", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			So(rec.Code, ShouldEqual, http.StatusOK)
		})
	})
}
