package api

import (
	"net/http"

	service "github.com/okian/vitrine/internal/app"
)

// DashboardHandler serves the recomputed dashboard as JSON.
type DashboardHandler struct {
	deps Dependencies
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps Dependencies) *DashboardHandler {
	return &DashboardHandler{deps: deps}
}

// HandleDashboard handles GET and POST /api/dashboard requests.
// GET reads filters from the query string, POST from a JSON body.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.dashboard"

	var (
		f   service.Filters
		err error
	)
	switch r.Method {
	case http.MethodGet:
		f, err = filtersFromQuery(r.URL.Query())
	case http.MethodPost:
		f, err = filtersFromBody(r)
	default:
		methodNotAllowed(w, op, "GET, POST")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	b, err := h.deps.Recompute(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}
