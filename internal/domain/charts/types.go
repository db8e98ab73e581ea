// Package charts turns product tables into chart-ready structures.
//
// Every builder accepts any table, including an empty one, and never panics.
// A result with Empty set carries no data and tells the renderer to draw an
// empty placeholder. Grouping keys that are missing or have no rows are
// omitted rather than emitted with zero values.
package charts

import (
	"math"
	"strconv"
)

// Fixed chart shapes.
const (
	HistogramBins      = 30
	TopBrandsLimit     = 10
	HeadroomFactor     = 1.2
	DefaultDensityBins = 20
)

// Point is one (x, y) pair.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TrendLine is an ordinary-least-squares fit y = Intercept + Slope*x drawn
// between the smallest and largest x of its group.
type TrendLine struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
	From      Point   `json:"from"`
	To        Point   `json:"to"`
}

// ScatterSeries holds the points of one gender.
type ScatterSeries struct {
	Gender string     `json:"gender"`
	Points []Point    `json:"points"`
	Trend  *TrendLine `json:"trend,omitempty"`
}

// Scatter plots Price (x) against Rating (y), one series per gender.
type Scatter struct {
	Empty  bool            `json:"empty"`
	Series []ScatterSeries `json:"series,omitempty"`
}

// Density is a 2D histogram of Price (x) against Rating (y).
// Counts is indexed [y][x]; edges have one more entry than bins.
type Density struct {
	Empty  bool      `json:"empty"`
	XEdges []float64 `json:"x_edges,omitempty"`
	YEdges []float64 `json:"y_edges,omitempty"`
	Counts [][]int   `json:"counts,omitempty"`
	Max    int       `json:"max,omitempty"`
}

// Bin is one half-open histogram bucket [Start, End); the last bin is closed.
type Bin struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Count int     `json:"count"`
}

// Histogram is the price frequency distribution.
type Histogram struct {
	Empty bool  `json:"empty"`
	Bins  []Bin `json:"bins,omitempty"`
}

// Correlation is a Pearson coefficient; NaN marks an undefined cell and
// encodes as JSON null.
type Correlation float64

// Defined reports whether the coefficient exists.
func (c Correlation) Defined() bool { return !math.IsNaN(float64(c)) }

// MarshalJSON encodes undefined coefficients as null.
func (c Correlation) MarshalJSON() ([]byte, error) {
	if !c.Defined() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(c), 'g', -1, 64), nil
}

// Heatmap is the square correlation matrix over the numeric measures.
type Heatmap struct {
	Empty  bool            `json:"empty"`
	Labels []string        `json:"labels,omitempty"`
	Values [][]Correlation `json:"values,omitempty"`
	Text   [][]string      `json:"text,omitempty"`
}

// BrandPrice is the mean price of one brand.
type BrandPrice struct {
	Brand     string  `json:"brand"`
	MeanPrice float64 `json:"mean_price"`
	Label     string  `json:"label"`
}

// TopBrands lists the most expensive brands by mean price, most expensive first.
type TopBrands struct {
	Empty  bool         `json:"empty"`
	Brands []BrandPrice `json:"brands,omitempty"`
	YMax   float64      `json:"y_max,omitempty"`
}

// GenderCount is the number of products of one gender.
type GenderCount struct {
	Gender string `json:"gender"`
	Count  int    `json:"count"`
}

// GenderDistribution counts products per gender, largest first.
// YMax leaves headroom above the tallest bar.
type GenderDistribution struct {
	Empty bool          `json:"empty"`
	Bars  []GenderCount `json:"bars,omitempty"`
	YMax  float64       `json:"y_max,omitempty"`
}

// SeasonSlice is the sold volume of one season and its share of the whole.
type SeasonSlice struct {
	Season string  `json:"season"`
	Units  float64 `json:"units"`
	Share  float64 `json:"share"`
}

// SeasonDistribution splits sold volume by season.
type SeasonDistribution struct {
	Empty  bool          `json:"empty"`
	Slices []SeasonSlice `json:"slices,omitempty"`
	Total  float64       `json:"total,omitempty"`
}
