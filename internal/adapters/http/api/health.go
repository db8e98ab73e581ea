package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/vitrine/pkg/metrics"
)

type healthResponse struct {
	Status string `json:"status"`
	Rows   int    `json:"rows"`
}

// HealthHandler answers readiness probes and serves the metrics registry.
type HealthHandler struct {
	stats   StatsProvider
	metrics http.Handler
}

// NewHealthHandler creates a new health handler. Readiness is read from the
// "started" and "rows" keys of stats.
func NewHealthHandler(stats StatsProvider) *HealthHandler {
	return &HealthHandler{
		stats:   stats,
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /healthz. It is 200 once the dataset has been
// loaded, even when the dataset is empty, and 503 before that.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, "health", "GET, HEAD")
		return
	}
	w.Header().Set("Cache-Control", "no-store")

	stats := map[string]interface{}{}
	if h.stats != nil {
		stats = h.stats.GetStats()
	}
	rows, _ := stats["rows"].(int)
	if started, ok := stats["started"].(bool); ok && !started {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "starting"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Rows: rows})
}

// HandleMetrics handles GET /metrics with the Prometheus exposition of the
// service registry.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}
