package config

import (
	"errors"
)

// Sentinel errors. Load wraps file and env failures with ErrLoadConfig and
// Validate wraps rejected values with ErrInvalidConfig.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
