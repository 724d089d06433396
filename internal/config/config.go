// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Layer file and env overrides on top via Load.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/pciu/dutyfinder/internal/domain/extract"
	"github.com/pciu/dutyfinder/internal/domain/schedule"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxInputBytes caps the accepted schedule text size per request.
	MaxInputBytes int `koanf:"max_input_bytes"`

	// MaxInputLines caps the line count accepted per parse call.
	MaxInputLines int `koanf:"max_input_lines"`

	// SampleCodeLimit bounds the "did you mean" code sample on lookup misses.
	SampleCodeLimit int `koanf:"sample_code_limit"`

	// ExcludedProgramCodes lists program abbreviations rejected as
	// invigilator codes. Institutions with different catalogs override this.
	ExcludedProgramCodes []string `koanf:"excluded_program_codes"`

	// BoilerplateMarkers lists letterhead/footer substrings skipped while
	// scanning.
	BoilerplateMarkers []string `koanf:"boilerplate_markers"`

	// TableMarkers lists table-header and separator substrings skipped while
	// scanning.
	TableMarkers []string `koanf:"table_markers"`

	// BlockTerminators lists substrings that end a course block during
	// assembly.
	BlockTerminators []string `koanf:"block_terminators"`
}

// New creates a Config with defaults matching the source document layout.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		MaxInputBytes:        1 << 20, // 1 MiB of pasted text is far beyond any real schedule
		MaxInputLines:        20_000,
		SampleCodeLimit:      20,
		ExcludedProgramCodes: extract.DefaultExcludedCodes(),
		BoilerplateMarkers:   schedule.DefaultBoilerplateMarkers(),
		TableMarkers:         schedule.DefaultTableMarkers(),
		BlockTerminators:     schedule.DefaultBlockTerminators(),
	}
}
