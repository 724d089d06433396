// Package extract recovers invigilator identifier codes from schedule text
// fragments, filtering out numeric and program-code noise.
package extract

import (
	"regexp"
	"strings"
)

// defaultExcludedCodes lists academic program abbreviations that match the
// code token pattern but never denote an invigilator.
var defaultExcludedCodes = []string{
	"BBA", "CSE", "ENG", "TEX", "BTE", "EEE", "CEN",
	"LLB", "JRN", "BFT", "LLM", "MJR", "ENF",
}

// Noise stripped before token matching, in this order: long student ID runs,
// program codes like BBA-47, parenthesized capacities, bare room numbers.
var (
	idNumberRe   = regexp.MustCompile(`\d{7,}`)
	programRe    = regexp.MustCompile(`[A-Z]{2,4}-\d+`)
	capacityRe   = regexp.MustCompile(`\(\d+\)`)
	roomNumberRe = regexp.MustCompile(`\d{3}`)
)

// codeTokenRe matches candidate invigilator codes: 2-4 uppercase letters
// optionally followed by up to two digits.
var codeTokenRe = regexp.MustCompile(`\b[A-Z]{2,4}\d{0,2}\b`)

// DefaultExcludedCodes returns a copy of the built-in program-code exclusion set.
func DefaultExcludedCodes() []string {
	out := make([]string, len(defaultExcludedCodes))
	copy(out, defaultExcludedCodes)
	return out
}

// Extractor recovers the ordered list of invigilator codes in a fragment.
type Extractor struct {
	excluded map[string]struct{}
}

// Option applies a configuration option to the Extractor.
type Option func(*Extractor)

// WithExcludedCodes replaces the program-code exclusion set. Comparison is
// case-insensitive.
func WithExcludedCodes(codes []string) Option {
	return func(e *Extractor) {
		if len(codes) == 0 {
			return
		}
		excluded := make(map[string]struct{}, len(codes))
		for _, c := range codes {
			excluded[strings.ToUpper(strings.TrimSpace(c))] = struct{}{}
		}
		e.excluded = excluded
	}
}

// New creates an Extractor with the default exclusion set.
func New(opts ...Option) *Extractor {
	e := &Extractor{}
	WithExcludedCodes(defaultExcludedCodes)(e)

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Extract returns the invigilator codes found in text, upper-cased, in
// first-occurrence order. Duplicates are preserved: a code appearing twice in
// the fragment is returned twice.
func (e *Extractor) Extract(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	cleaned := idNumberRe.ReplaceAllString(text, "")
	cleaned = programRe.ReplaceAllString(cleaned, "")
	cleaned = capacityRe.ReplaceAllString(cleaned, "")
	cleaned = roomNumberRe.ReplaceAllString(cleaned, "")
	cleaned = strings.ReplaceAll(cleaned, "rest", "")

	var codes []string
	for _, tok := range codeTokenRe.FindAllString(cleaned, -1) {
		if len(tok) < 2 {
			continue
		}
		upper := strings.ToUpper(tok)
		if _, banned := e.excluded[upper]; banned {
			continue
		}
		codes = append(codes, upper)
	}
	return codes
}
