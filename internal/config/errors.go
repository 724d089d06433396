package config

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig = errors.New("invalid duty finder config")
	ErrLoadConfig    = errors.New("failed to load duty finder config (defaults, YAML file, DUTY_ env)")
)
