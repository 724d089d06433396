package schedule

import "errors"

// Sentinel kinds for parsing errors. These allow errors.Is/As from callers.
var (
	// ErrEmptyInput flags blank schedule text or a blank lookup code,
	// rejected before parsing.
	ErrEmptyInput = errors.New("empty input")

	// ErrNoDuties flags a well-formed call that recovered zero records: the
	// text uses a layout the heuristics do not cover.
	ErrNoDuties = errors.New("no duties parsed")

	// ErrInputTooLarge flags input exceeding the defensive size cap.
	ErrInputTooLarge = errors.New("input too large")
)
