// Package service provides the dashboard controller that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/vitrine/internal/adapters/cache"
	"github.com/okian/vitrine/internal/adapters/dataset"
	"github.com/okian/vitrine/internal/domain/charts"
	"github.com/okian/vitrine/internal/domain/filter"
	"github.com/okian/vitrine/internal/domain/model"
	"github.com/okian/vitrine/pkg/logger"
	"github.com/okian/vitrine/pkg/metrics"
)

// Service holds the base table for the process lifetime and recomputes
// dashboard bundles from it on demand.
type Service struct {
	mu sync.RWMutex

	// Core components
	base    *model.Table
	bundles cache.Cache[Bundle]

	// Configuration
	datasetPath string
	delimiter   rune
	densityBins int
	cacheSize   int

	// State
	started        bool
	loadedAt       time.Time
	recomputations atomic.Int64

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		densityBins: charts.DefaultDensityBins,
		cacheSize:   256,
		logger:      nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the dataset (unless a table was injected) and prepares the
// bundle cache. A missing dataset is not an error: the dashboard serves its
// empty sentinels instead.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.OrDefault()
	}

	s.logger.Info(ctx, "starting dashboard service...")

	if s.base == nil {
		if s.datasetPath == "" {
			s.logger.Warn(ctx, "no dataset configured, serving empty dashboard")
			s.base = model.Empty()
		} else {
			s.base = dataset.NewLoader(
				dataset.WithDelimiter(s.delimiter),
				dataset.WithLogger(s.logger.Named("dataset")),
			).Load(ctx, s.datasetPath)
		}
	}
	metrics.UpdateDatasetRows(s.base.Len())

	if s.cacheSize != 0 {
		s.bundles = cache.NewInMemoryCache[Bundle](cache.WithMaxSize(s.cacheSize))
	}

	s.loadedAt = time.Now()
	s.started = true
	s.logger.Info(ctx, "dashboard service started",
		logger.Int("rows", s.base.Len()),
		logger.Int("densityBins", s.densityBins),
		logger.Int("cacheSize", s.cacheSize),
	)

	return nil
}

// Stop releases the cached bundles. The base table is kept so a restarted
// service does not reload it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.bundles = nil
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

// Recompute returns the full dashboard bundle for f.
func (s *Service) Recompute(ctx context.Context, f Filters) (Bundle, error) {
	s.mu.RLock()
	started, base, bundles := s.started, s.base, s.bundles
	s.mu.RUnlock()

	if !started {
		return Bundle{}, ErrNotStarted
	}

	key := f.Key()
	if bundles != nil {
		if b, ok := bundles.Get(ctx, key); ok {
			s.logger.Debug(ctx, "bundle served from cache", logger.String("key", key))
			return b, nil
		}
	}

	start := time.Now()
	b := Recompute(base, f, s.densityBins)
	elapsed := time.Since(start)

	s.recomputations.Add(1)
	metrics.RecordRecompute(float64(elapsed.Microseconds()) / 1000)
	metrics.UpdateGlobalRows(b.Rows.Global)
	if b.Rows.Global == 0 {
		metrics.RecordEmptyResult("kpis")
	}
	empty := b.EmptyCharts()
	for _, name := range empty {
		metrics.RecordEmptyResult(name)
	}

	s.logger.Debug(ctx, "dashboard recomputed",
		logger.Int("globalRows", b.Rows.Global),
		logger.Strings("emptyCharts", empty),
		logger.Duration("elapsed", elapsed),
	)

	if bundles != nil {
		bundles.Put(ctx, key, b)
	}
	return b, nil
}

// Options returns the selectable values of every dimension, drawn from the
// unfiltered base table.
func (s *Service) Options(ctx context.Context) (map[model.Dimension][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}

	out := make(map[model.Dimension][]string, len(model.Dimensions))
	for _, d := range model.Dimensions {
		out[d] = filter.Options(s.base, d)
	}
	return out, nil
}

// Table returns the base table.
func (s *Service) Table() *model.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.base == nil {
		return model.Empty()
	}
	return s.base
}

// DensityBins returns the configured density grid size.
func (s *Service) DensityBins() int { return s.densityBins }

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"datasetPath":    s.datasetPath,
		"densityBins":    s.densityBins,
		"cacheSize":      s.cacheSize,
		"recomputations": s.recomputations.Load(),
	}

	if s.started {
		stats["rows"] = s.base.Len()
		stats["loadedAt"] = s.loadedAt.UTC().Format(time.RFC3339)
		if s.bundles != nil {
			hits, misses := cache.Stats(s.bundles)
			stats["cachedBundles"] = s.bundles.Size()
			stats["cacheHits"] = hits
			stats["cacheMisses"] = misses
		}
	}

	return stats
}

// String implements fmt.Stringer for log output.
func (s *Service) String() string {
	return fmt.Sprintf("service{rows=%d, started=%t}", s.Table().Len(), s.isStarted())
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}
