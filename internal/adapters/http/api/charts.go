package api

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/vitrine/internal/adapters/render"
	"github.com/okian/vitrine/pkg/metrics"
)

// ChartsHandler serves PNG renders of individual charts.
type ChartsHandler struct {
	deps     Dependencies
	renderer ChartRenderer
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(deps Dependencies, renderer ChartRenderer) *ChartsHandler {
	return &ChartsHandler{deps: deps, renderer: renderer}
}

// HandleChart handles GET /charts/{name}.png requests. Filters are read from
// the query string exactly like GET /api/dashboard.
func (h *ChartsHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	const op = "api.chart"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, op, "GET")
		return
	}

	file := strings.TrimPrefix(r.URL.Path, "/charts/")
	name, ok := strings.CutSuffix(file, ".png")
	if !ok || strings.Contains(name, "/") || !render.Known(name) {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
		return
	}
	if h.renderer == nil {
		writeError(w, http.StatusNotImplemented, "not_implemented", NewKind(op, ErrNotImplemented))
		return
	}

	f, err := filtersFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	b, err := h.deps.Recompute(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, op, err)
		return
	}

	var buf bytes.Buffer
	err = h.renderer.Render(&buf, name, b)
	switch {
	case err == nil:
	case errors.Is(err, render.ErrNoRaster):
		writeError(w, http.StatusNotImplemented, "not_implemented", WrapKind(op, ErrNotImplemented, err))
		return
	case errors.Is(err, render.ErrEmptyChart):
		w.WriteHeader(http.StatusNoContent)
		return
	case errors.Is(err, render.ErrUnknownChart):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
		return
	default:
		metrics.RecordChartRenderError(name)
		err = Wrap(op, err)
		logServerError(r, err)
		writeError(w, http.StatusInternalServerError, "render_error", err)
		return
	}

	metrics.RecordChartRender(name, buf.Len())
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
