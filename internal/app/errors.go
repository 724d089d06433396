package service

import "errors"

// Sentinel kinds for service errors.
var (
	// ErrParseFailure reports an unexpected internal failure during parsing,
	// recovered at the service boundary.
	ErrParseFailure = errors.New("schedule parse failed")
)
