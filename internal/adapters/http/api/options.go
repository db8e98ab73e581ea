package api

import (
	"net/http"
	"strings"

	"github.com/okian/vitrine/internal/domain/filter"
	"github.com/okian/vitrine/internal/domain/model"
)

// OptionsHandler serves the dropdown values of each dimension.
type OptionsHandler struct {
	deps Dependencies
}

// NewOptionsHandler creates a new options handler.
func NewOptionsHandler(deps Dependencies) *OptionsHandler {
	return &OptionsHandler{deps: deps}
}

// HandleOptions handles GET /api/options[?dimension=brand] requests.
// Keys of the response are lowercase dimension names.
func (h *OptionsHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	const op = "api.options"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, op, "GET")
		return
	}

	wanted := filter.Selection{}
	for _, raw := range r.URL.Query()["dimension"] {
		for _, name := range strings.Split(raw, ",") {
			if strings.TrimSpace(name) != "" {
				wanted[dimensionFromParam(name)] = nil
			}
		}
	}
	if err := wanted.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	opts, err := h.deps.Options(r.Context())
	if err != nil {
		writeServiceError(w, r, op, err)
		return
	}

	out := make(map[string][]string, len(opts))
	for dim, vals := range opts {
		if _, ok := wanted[dim]; len(wanted) > 0 && !ok {
			continue
		}
		out[strings.ToLower(string(dim))] = vals
	}
	writeJSON(w, http.StatusOK, out)
}

// dimensionFromParam maps "brand" or "Brand" to model.Brand. Unknown names
// pass through unchanged so validation can report them.
func dimensionFromParam(name string) model.Dimension {
	name = strings.TrimSpace(name)
	for _, d := range model.Dimensions {
		if strings.EqualFold(string(d), name) {
			return d
		}
	}
	return model.Dimension(name)
}
