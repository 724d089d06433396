// Package schedule scans raw exam-schedule text line by line, tracks the
// active date/time context, and assembles per-course text blocks for
// segmentation into duty records.
package schedule

import (
	"context"
	"regexp"
	"strings"

	"github.com/pciu/dutyfinder/internal/domain/extract"
	"github.com/pciu/dutyfinder/internal/domain/model"
	"github.com/pciu/dutyfinder/internal/domain/segment"
)

var (
	// dateTimeRe captures a "Date: ... Time: ..." header. The date is a loose
	// dd/mm/yyyy plus trailing text; the time accepts digits, colons, am/pm
	// letters, hyphens, spaces, and parentheses so ranges like
	// "(09:00am - 12:00pm)" survive intact.
	dateTimeRe = regexp.MustCompile(`Date:\s*(\d{2}/\d{2}/\d{4}.*?)\s+Time:\s*([0-9:apm\-\s()]+)`)

	// courseStartRe matches a course-entry start line: a 2-4 letter subject,
	// optional space, three digits, then further text.
	courseStartRe = regexp.MustCompile(`^([A-Z]{2,4}\s*\d{3})\s+(.+)`)

	// courseContinuationRe detects the start of the next course entry while
	// absorbing block lines.
	courseContinuationRe = regexp.MustCompile(`^[A-Z]{2,4}\s*\d{3}\s+`)

	// titleBoundaryRe captures the course title: the text preceding the first
	// program-code token or "digits(" room marker.
	titleBoundaryRe = regexp.MustCompile(`^(.*?)(?:\s+[A-Z]{2,4}-\d+|\s+\d{3}\s*\()`)
)

// Default line-classification tables for the source document layout. All
// three are overridable so institutions with different letterheads can adapt
// the parser without code changes.
var (
	defaultBoilerplateMarkers = []string{
		"Port City International University",
		"Dean, Faculty",
		"Updated on",
	}
	defaultTableMarkers = []string{
		"Course Code", "Course Title", "Program", "Room",
		"ID No", "Invigilator", "---", "Rest=", "Page |",
	}
	defaultBlockTerminators = []string{
		"---", "Course Code", "Port City International", "Page |",
	}
)

// DefaultBoilerplateMarkers returns a copy of the institutional header/footer
// substrings skipped during scanning.
func DefaultBoilerplateMarkers() []string {
	return append([]string(nil), defaultBoilerplateMarkers...)
}

// DefaultTableMarkers returns a copy of the table-header and separator
// substrings skipped during scanning.
func DefaultTableMarkers() []string {
	return append([]string(nil), defaultTableMarkers...)
}

// DefaultBlockTerminators returns a copy of the substrings that end a course
// block during assembly.
func DefaultBlockTerminators() []string {
	return append([]string(nil), defaultBlockTerminators...)
}

// Parser turns raw schedule text into duty records.
type Parser struct {
	segmenter          *segment.Segmenter
	boilerplateMarkers []string
	tableMarkers       []string
	blockTerminators   []string
	maxLines           int
}

// Option applies a configuration option to the Parser.
type Option func(*Parser)

// WithSegmenter sets the segmenter used for assembled course blocks.
func WithSegmenter(s *segment.Segmenter) Option {
	return func(p *Parser) {
		if s != nil {
			p.segmenter = s
		}
	}
}

// WithBoilerplateMarkers replaces the boilerplate substring table.
func WithBoilerplateMarkers(markers []string) Option {
	return func(p *Parser) {
		if len(markers) > 0 {
			p.boilerplateMarkers = markers
		}
	}
}

// WithTableMarkers replaces the table-header/separator substring table.
func WithTableMarkers(markers []string) Option {
	return func(p *Parser) {
		if len(markers) > 0 {
			p.tableMarkers = markers
		}
	}
}

// WithBlockTerminators replaces the block-terminator substring table.
func WithBlockTerminators(markers []string) Option {
	return func(p *Parser) {
		if len(markers) > 0 {
			p.blockTerminators = markers
		}
	}
}

// WithMaxLines caps the number of input lines accepted per parse call.
// Zero or negative disables the cap.
func WithMaxLines(n int) Option {
	return func(p *Parser) {
		p.maxLines = n
	}
}

// New creates a Parser with the default tables and a default segmenter.
func New(opts ...Option) *Parser {
	p := &Parser{
		segmenter:          segment.New(extract.New()),
		boilerplateMarkers: defaultBoilerplateMarkers,
		tableMarkers:       defaultTableMarkers,
		blockTerminators:   defaultBlockTerminators,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// scanContext is the transient (date, time) pair threaded through the scan.
// A duty cannot be created while either side is unset.
type scanContext struct {
	date string
	time string
}

func (c scanContext) active() bool {
	return c.date != "" && c.time != ""
}

// Parse extracts all duty records from text, in source order. Malformed
// fragments are skipped, never reported; the only error is the defensive
// input cap. Parsing is reentrant: no state survives the call.
func (p *Parser) Parse(ctx context.Context, text string) ([]model.DutyRecord, error) {
	lines := strings.Split(text, "\n")
	if p.maxLines > 0 && len(lines) > p.maxLines {
		return nil, ErrInputTooLarge
	}

	var duties []model.DutyRecord
	var sc scanContext

	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if line == "" || containsAny(line, p.boilerplateMarkers) {
			i++
			continue
		}

		if m := dateTimeRe.FindStringSubmatch(line); m != nil {
			sc = scanContext{date: strings.TrimSpace(m[1]), time: strings.TrimSpace(m[2])}
			i++
			continue
		}

		if containsAny(line, p.tableMarkers) {
			i++
			continue
		}

		m := courseStartRe.FindStringSubmatch(line)
		if m == nil || !sc.active() {
			// Course lines before any date/time header are dropped, not
			// buffered.
			i++
			continue
		}

		code := strings.TrimSpace(m[1])
		remaining := strings.TrimSpace(m[2])

		block := model.CourseBlock{
			Code:    code,
			Title:   deriveTitle(remaining),
			RawText: remaining,
		}

		// Absorb following lines until the next course entry, a date header,
		// a terminator, or a boilerplate line. Blank lines inside the span do
		// not end it.
		j := i + 1
		for j < len(lines) {
			next := strings.TrimSpace(lines[j])
			if next == "" {
				j++
				continue
			}
			if courseContinuationRe.MatchString(next) || strings.Contains(next, "Date:") {
				break
			}
			if containsAny(next, p.blockTerminators) || containsAny(next, p.boilerplateMarkers) {
				break
			}
			block.RawText += " " + next
			j++
		}

		duties = append(duties, p.segmenter.Segment(ctx, block, sc.date, sc.time)...)
		i = j
	}

	return duties, nil
}

// deriveTitle recovers the course title from the text after the course code:
// everything before the first program-code token or "digits(" room marker,
// else the first word, else "Unknown".
func deriveTitle(remaining string) string {
	if m := titleBoundaryRe.FindStringSubmatch(remaining); m != nil {
		return strings.TrimSpace(m[1])
	}
	if fields := strings.Fields(remaining); len(fields) > 0 {
		return fields[0]
	}
	return "Unknown"
}

func containsAny(line string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
