// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - Validation failures wrap ErrInvalidConfig; loader failures wrap ErrLoadConfig.
package config

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/okian/vitrine/pkg/logger"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatasetPath is the product CSV read once at startup.
	DatasetPath string `koanf:"dataset_path"`

	// CSVDelimiter forces the field separator. Empty sniffs from the extension.
	CSVDelimiter string `koanf:"csv_delimiter"`

	// DensityBins is the density grid size per axis.
	DensityBins int `koanf:"density_bins"`

	// ChartWidth and ChartHeight size the PNG renders in pixels.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`

	// CacheSize bounds the memoized dashboard bundles. Zero disables the cache.
	CacheSize int `koanf:"cache_size"`

	// ShutdownTimeoutMS bounds graceful HTTP shutdown.
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`
}

// New creates a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         logger.FormatText,
		Addr:              ":9080",
		DatasetPath:       "data/products.csv",
		DensityBins:       20,
		ChartWidth:        1024,
		ChartHeight:       512,
		CacheSize:         256,
		ShutdownTimeoutMS: 30_000,
	}
}

// Delimiter returns the configured separator as a rune, or 0 to sniff.
// "tab" and "\t" both mean a tab character.
func (c *Config) Delimiter() rune {
	switch c.CSVDelimiter {
	case "":
		return 0
	case "tab", `\t`:
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(c.CSVDelimiter)
	return r
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DatasetPath) == "":
		return fmt.Errorf("%w: dataset_path must not be empty", ErrInvalidConfig)
	case c.DensityBins <= 0:
		return fmt.Errorf("%w: density_bins must be positive, got %d", ErrInvalidConfig, c.DensityBins)
	case c.ChartWidth <= 0 || c.ChartHeight <= 0:
		return fmt.Errorf("%w: chart size must be positive, got %dx%d", ErrInvalidConfig, c.ChartWidth, c.ChartHeight)
	case c.ShutdownTimeoutMS <= 0:
		return fmt.Errorf("%w: shutdown_timeout_ms must be positive", ErrInvalidConfig)
	}
	if c.CSVDelimiter != "" && c.Delimiter() != '\t' && utf8.RuneCountInString(c.CSVDelimiter) != 1 {
		return fmt.Errorf("%w: csv_delimiter must be a single character or \"tab\", got %q", ErrInvalidConfig, c.CSVDelimiter)
	}
	switch strings.ToLower(c.LogFormat) {
	case logger.FormatText, logger.FormatJSON:
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
