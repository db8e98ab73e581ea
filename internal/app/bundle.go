package service

import (
	"encoding/json"
	"slices"

	"github.com/okian/vitrine/internal/domain/charts"
	"github.com/okian/vitrine/internal/domain/filter"
	"github.com/okian/vitrine/internal/domain/kpi"
	"github.com/okian/vitrine/internal/domain/model"
)

// Filters holds every user-selectable constraint of the dashboard.
// Brands and Materials are global; the others each scope a single chart.
type Filters struct {
	Brands         []string `json:"brands,omitempty"`
	Materials      []string `json:"materials,omitempty"`
	ScatterGenders []string `json:"scatter_genders,omitempty"`
	GenderSeasons  []string `json:"gender_seasons,omitempty"`
	SeasonGenders  []string `json:"season_genders,omitempty"`
}

// Global returns the selection shared by every chart and KPI.
func (f Filters) Global() filter.Selection {
	return filter.Selection{model.Brand: f.Brands, model.Material: f.Materials}
}

// Key returns a canonical string for f. Value order and duplicates within a
// list do not change the key because they do not change the result. Each
// value is JSON-quoted so no two distinct selections share a key; an
// unconstrained list encodes as null and a list holding "" as [""].
func (f Filters) Key() string {
	parts := make([][]string, 0, 5)
	for _, vals := range [][]string{f.Brands, f.Materials, f.ScatterGenders, f.GenderSeasons, f.SeasonGenders} {
		if len(vals) == 0 {
			parts = append(parts, nil)
			continue
		}
		c := slices.Clone(vals)
		slices.Sort(c)
		parts = append(parts, slices.Compact(c))
	}
	// [][]string of plain strings always marshals.
	b, _ := json.Marshal(parts)
	return string(b)
}

// RowCounts reports table sizes at each stage of the pipeline.
type RowCounts struct {
	Base    int `json:"base"`
	Global  int `json:"global"`
	Scatter int `json:"scatter"`
	Gender  int `json:"gender"`
	Season  int `json:"season"`
}

// Bundle is the complete dashboard output for one set of filters.
type Bundle struct {
	KPIs      kpi.Summary               `json:"kpis"`
	Scatter   charts.Scatter            `json:"scatter"`
	Density   charts.Density            `json:"density"`
	Histogram charts.Histogram          `json:"histogram"`
	Heatmap   charts.Heatmap            `json:"heatmap"`
	TopBrands charts.TopBrands          `json:"top_brands"`
	Gender    charts.GenderDistribution `json:"gender"`
	Season    charts.SeasonDistribution `json:"season"`
	Rows      RowCounts                 `json:"rows"`
}

// EmptyCharts lists the charts of b that fell back to their empty sentinel.
func (b Bundle) EmptyCharts() []string {
	var out []string
	for _, c := range []struct {
		name  string
		empty bool
	}{
		{"scatter", b.Scatter.Empty},
		{"density", b.Density.Empty},
		{"histogram", b.Histogram.Empty},
		{"heatmap", b.Heatmap.Empty},
		{"brands", b.TopBrands.Empty},
		{"gender", b.Gender.Empty},
		{"season", b.Season.Empty},
	} {
		if c.empty {
			out = append(out, c.name)
		}
	}
	return out
}

// Recompute derives the whole dashboard from base. It is pure: base is never
// modified and equal inputs give equal bundles.
func Recompute(base *model.Table, f Filters, densityBins int) Bundle {
	global := filter.Apply(base, f.Global())
	scatterT := filter.Apply(global, filter.Selection{model.Gender: f.ScatterGenders})
	genderT := filter.Apply(global, filter.Selection{model.Season: f.GenderSeasons})
	seasonT := filter.Apply(global, filter.Selection{model.Gender: f.SeasonGenders})

	return Bundle{
		KPIs:      kpi.Compute(global),
		Scatter:   charts.BuildScatter(scatterT),
		Density:   charts.BuildDensity(scatterT, densityBins),
		Histogram: charts.BuildHistogram(global),
		Heatmap:   charts.BuildHeatmap(global),
		TopBrands: charts.BuildTopBrands(global),
		Gender:    charts.BuildGenderDistribution(genderT),
		Season:    charts.BuildSeasonDistribution(seasonT),
		Rows: RowCounts{
			Base:    base.Len(),
			Global:  global.Len(),
			Scatter: scatterT.Len(),
			Gender:  genderT.Len(),
			Season:  seasonT.Len(),
		},
	}
}
