// Package filter narrows a product table by categorical selections.
package filter

import (
	"fmt"
	"sort"

	"github.com/okian/vitrine/internal/domain/model"
)

// Selection maps a dimension to its allowed values.
// A dimension that is absent or maps to an empty list is unconstrained.
// Values within a dimension are OR-combined; dimensions are AND-combined.
type Selection map[model.Dimension][]string

// IsEmpty reports whether no dimension is constrained.
func (s Selection) IsEmpty() bool {
	for _, vals := range s {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// Validate rejects selections naming unknown dimensions.
func (s Selection) Validate() error {
	for dim := range s {
		if !dim.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownDimension, dim)
		}
	}
	return nil
}

// Apply returns the rows of t that satisfy every constrained dimension of sel.
// Row order is preserved and t itself is never modified.
func Apply(t *model.Table, sel Selection) *model.Table {
	if t.IsEmpty() {
		return model.Empty()
	}
	if sel.IsEmpty() {
		return t
	}

	sets := make(map[model.Dimension]map[string]struct{}, len(sel))
	for dim, vals := range sel {
		if len(vals) == 0 {
			continue
		}
		set := make(map[string]struct{}, len(vals))
		for _, v := range vals {
			set[v] = struct{}{}
		}
		sets[dim] = set
	}

	return t.Where(func(p model.Product) bool {
		for dim, set := range sets {
			if _, ok := set[p.Dimension(dim)]; !ok {
				return false
			}
		}
		return true
	})
}

// Options returns the distinct non-empty values of dim in t, sorted.
func Options(t *model.Table, dim model.Dimension) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := 0; i < t.Len(); i++ {
		v := t.At(i).Dimension(dim)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
