package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	service "github.com/okian/vitrine/internal/app"
)

// Filter parameter names, shared by the query string and the JSON body.
const (
	paramBrand         = "brand"
	paramMaterial      = "material"
	paramScatterGender = "scatter_gender"
	paramGenderSeason  = "gender_season"
	paramSeasonGender  = "season_gender"
)

const maxBodyBytes = 1 << 20

// filtersRequest mirrors the OpenAPI schema for POST /api/dashboard.
type filtersRequest struct {
	Brand         []string `json:"brand"`
	Material      []string `json:"material"`
	ScatterGender []string `json:"scatter_gender"`
	GenderSeason  []string `json:"gender_season"`
	SeasonGender  []string `json:"season_gender"`
}

func (f filtersRequest) toFilters() service.Filters {
	return service.Filters{
		Brands:         clean(f.Brand),
		Materials:      clean(f.Material),
		ScatterGenders: clean(f.ScatterGender),
		GenderSeasons:  clean(f.GenderSeason),
		SeasonGenders:  clean(f.SeasonGender),
	}
}

// filtersFromQuery reads filters from q. Each parameter may repeat and each
// value may hold a comma-separated list; a backslash escapes a literal comma
// or backslash inside a value. Unknown parameters are rejected.
func filtersFromQuery(q url.Values) (service.Filters, error) {
	var req filtersRequest
	for key, vals := range q {
		var dst *[]string
		switch key {
		case paramBrand:
			dst = &req.Brand
		case paramMaterial:
			dst = &req.Material
		case paramScatterGender:
			dst = &req.ScatterGender
		case paramGenderSeason:
			dst = &req.GenderSeason
		case paramSeasonGender:
			dst = &req.SeasonGender
		default:
			return service.Filters{}, fmt.Errorf("%w: %q", ErrUnknownFilter, key)
		}
		for _, v := range vals {
			*dst = append(*dst, splitList(v)...)
		}
	}
	return req.toFilters(), nil
}

// filtersFromBody decodes a JSON filtersRequest. An empty body means no filters.
func filtersFromBody(r *http.Request) (service.Filters, error) {
	var req filtersRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && err != io.EOF {
		return service.Filters{}, err
	}
	return req.toFilters(), nil
}

// splitList splits v on unescaped commas and resolves backslash escapes.
// A trailing lone backslash is kept as is.
func splitList(v string) []string {
	var (
		out []string
		cur strings.Builder
	)
	for i := 0; i < len(v); i++ {
		switch c := v[i]; {
		case c == '\\' && i+1 < len(v):
			i++
			cur.WriteByte(v[i])
		case c == ',':
			out = append(out, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(out, cur.String())
}

// clean trims values and drops empty ones.
func clean(vals []string) []string {
	var out []string
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
