// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	service "github.com/okian/vitrine/internal/app"
	"github.com/okian/vitrine/internal/domain/model"
	"github.com/okian/vitrine/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Recompute returns the whole dashboard for the given filters.
	Recompute(ctx context.Context, f service.Filters) (service.Bundle, error)

	// Options lists the selectable values of every dimension.
	Options(ctx context.Context) (map[model.Dimension][]string, error)
}

// ChartRenderer draws one chart of a bundle as PNG.
type ChartRenderer interface {
	Render(w io.Writer, name string, b service.Bundle) error
}

// Bundle mirrors the payload returned by /api/dashboard.
type Bundle = service.Bundle

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	dashboardHandler *DashboardHandler
	optionsHandler   *OptionsHandler
	chartsHandler    *ChartsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, renderer ChartRenderer) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(statsProvider),
		statsHandler:     NewStatsHandler(statsProvider),
		dashboardHandler: NewDashboardHandler(deps),
		optionsHandler:   NewOptionsHandler(deps),
		chartsHandler:    NewChartsHandler(deps, renderer),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/dashboard", MetricsMiddleware(RequestIDMiddleware(s.dashboardHandler.HandleDashboard), "dashboard"))
	mux.HandleFunc("/api/options", MetricsMiddleware(RequestIDMiddleware(s.optionsHandler.HandleOptions), "options"))
	mux.HandleFunc("/charts/", MetricsMiddleware(RequestIDMiddleware(s.chartsHandler.HandleChart), "charts"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v before touching w, so an unencodable value becomes a
// logged 500 rather than a 200 with an empty body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.OrDefault().Named("api").Error(context.Background(), "encode response",
			logger.Int("status", status), logger.Error(err))
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{Code: "encode_failed", Message: err.Error()})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps controller errors to a status code.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, service.ErrNotStarted) {
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
		return
	}
	err = Wrap(op, err)
	logServerError(r, err)
	writeError(w, http.StatusInternalServerError, "internal_error", err)
}

// logServerError records a 5xx cause under the request's correlation id.
func logServerError(r *http.Request, err error) {
	logger.Named("api").Error(r.Context(), "request failed",
		logger.String("request_id", RequestID(r.Context())),
		logger.String("path", r.URL.Path),
		logger.Error(err))
}

func methodNotAllowed(w http.ResponseWriter, op string, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
}
