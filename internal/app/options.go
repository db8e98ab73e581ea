package service

import (
	"github.com/okian/vitrine/internal/domain/model"
	"github.com/okian/vitrine/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTable injects an already loaded base table; the dataset path is then ignored.
func WithTable(t *model.Table) Option {
	return func(s *Service) {
		if t != nil {
			s.base = t
		}
	}
}

// WithDatasetPath sets the file the base table is loaded from at Start.
func WithDatasetPath(path string) Option {
	return func(s *Service) {
		s.datasetPath = path
	}
}

// WithDelimiter forces the dataset field separator.
func WithDelimiter(delim rune) Option {
	return func(s *Service) {
		s.delimiter = delim
	}
}

// WithDensityBins sets the density grid size per axis.
func WithDensityBins(bins int) Option {
	return func(s *Service) {
		if bins > 0 {
			s.densityBins = bins
		}
	}
}

// WithCacheSize bounds the number of memoized bundles. Zero disables the
// cache; a negative size leaves it unbounded.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		s.cacheSize = size
	}
}
