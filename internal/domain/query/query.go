// Package query answers lookups over extracted duty records.
package query

import (
	"sort"
	"strings"

	"github.com/pciu/dutyfinder/internal/domain/model"
)

// FindDuties returns every record whose invigilator list contains code,
// case-insensitively, preserving input order. A record counts once even when
// the code appears twice in its list.
func FindDuties(records []model.DutyRecord, code string) []model.DutyRecord {
	target := strings.ToUpper(strings.TrimSpace(code))
	if target == "" {
		return nil
	}

	var matches []model.DutyRecord
	for _, rec := range records {
		for _, inv := range rec.Invigilators {
			if strings.ToUpper(inv) == target {
				matches = append(matches, rec)
				break
			}
		}
	}
	return matches
}

// AllCodes collects the distinct invigilator codes across all records and
// returns them sorted. Useful for "did you mean" listings.
func AllCodes(records []model.DutyRecord) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for _, inv := range rec.Invigilators {
			seen[strings.ToUpper(inv)] = struct{}{}
		}
	}

	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// SampleCodes returns at most limit sorted distinct codes, for bounded
// "not found" hints.
func SampleCodes(records []model.DutyRecord, limit int) []string {
	codes := AllCodes(records)
	if limit > 0 && len(codes) > limit {
		codes = codes[:limit]
	}
	return codes
}

// OtherInvigilators returns rec's invigilators minus the queried code,
// case-insensitively, preserving order.
func OtherInvigilators(rec model.DutyRecord, code string) []string {
	target := strings.ToUpper(strings.TrimSpace(code))
	others := make([]string, 0, len(rec.Invigilators))
	for _, inv := range rec.Invigilators {
		if strings.ToUpper(inv) != target {
			others = append(others, inv)
		}
	}
	return others
}
