// Package segment partitions one course's consolidated text block into
// (room, invigilator-codes) pairs.
//
// Extraction runs through an ordered chain of strategies of decreasing
// strictness; the first strategy that yields any record wins. Later
// strategies are a fallback net, not a union.
package segment

import (
	"context"
	"regexp"
	"strings"

	"github.com/pciu/dutyfinder/internal/domain/extract"
	"github.com/pciu/dutyfinder/internal/domain/model"
	"github.com/pciu/dutyfinder/pkg/metrics"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Strategy is one room/invigilator extraction heuristic. Apply returns the
// duty records it could recover from the normalized block text, or nil when
// the block does not fit its layout convention.
type Strategy interface {
	Name() string
	Apply(block model.CourseBlock, date, time string) []model.DutyRecord
}

// Segmenter runs the strategy chain over course blocks.
type Segmenter struct {
	strategies []Strategy
}

// Option applies a configuration option to the Segmenter.
type Option func(*Segmenter)

// WithStrategies replaces the strategy chain. Order is significant.
func WithStrategies(strategies ...Strategy) Option {
	return func(s *Segmenter) {
		if len(strategies) > 0 {
			s.strategies = strategies
		}
	}
}

// New creates a Segmenter with the default chain: explicit room/invigilator
// pairs, then shared-list multi-room, then single leading room.
func New(extractor *extract.Extractor, opts ...Option) *Segmenter {
	if extractor == nil {
		extractor = extract.New()
	}
	s := &Segmenter{
		strategies: []Strategy{
			&pairStrategy{extractor: extractor},
			&multiRoomStrategy{extractor: extractor},
			&singleRoomStrategy{extractor: extractor},
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Segment collapses whitespace runs in the block text, then tries each
// strategy in order, stopping at the first non-empty result. A block no
// strategy can place yields zero records.
func (s *Segmenter) Segment(_ context.Context, block model.CourseBlock, date, time string) []model.DutyRecord {
	block.RawText = strings.TrimSpace(whitespaceRe.ReplaceAllString(block.RawText, " "))

	for _, strat := range s.strategies {
		if records := strat.Apply(block, date, time); len(records) > 0 {
			metrics.RecordStrategyHit(strat.Name())
			return records
		}
	}

	metrics.RecordBlockDropped()
	return nil
}
