package charts

import (
	"math"
	"sort"

	"github.com/okian/vitrine/internal/domain/model"
)

// BuildGenderDistribution counts rows per gender, largest first; ties keep
// first-appearance order. YMax is HeadroomFactor times the largest count.
func BuildGenderDistribution(t *model.Table) GenderDistribution {
	groups := groupBy(t, model.Gender)
	if len(groups) == 0 {
		return GenderDistribution{Empty: true}
	}

	bars := make([]GenderCount, len(groups))
	most := 0
	for i, g := range groups {
		bars[i] = GenderCount{Gender: g.key, Count: len(g.rows)}
		if len(g.rows) > most {
			most = len(g.rows)
		}
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Count > bars[j].Count })
	return GenderDistribution{Bars: bars, YMax: float64(most) * HeadroomFactor}
}

// BuildSeasonDistribution sums UnitsSoldCode per season. Slices are ordered
// by season name and carry their share of the total.
func BuildSeasonDistribution(t *model.Table) SeasonDistribution {
	groups := groupBy(t, model.Season)
	if len(groups) == 0 {
		return SeasonDistribution{Empty: true}
	}

	out := SeasonDistribution{Slices: make([]SeasonSlice, len(groups))}
	for i, g := range groups {
		var units float64
		for _, r := range g.rows {
			if v := t.At(r).UnitsSoldCode; !math.IsNaN(v) {
				units += v
			}
		}
		out.Slices[i] = SeasonSlice{Season: g.key, Units: units}
		out.Total += units
	}
	sort.Slice(out.Slices, func(i, j int) bool { return out.Slices[i].Season < out.Slices[j].Season })
	if out.Total != 0 {
		for i := range out.Slices {
			out.Slices[i].Share = out.Slices[i].Units / out.Total
		}
	}
	return out
}
