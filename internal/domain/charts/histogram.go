package charts

import (
	"gonum.org/v1/gonum/floats"

	"github.com/okian/vitrine/internal/domain/model"
)

// BuildHistogram counts valid prices in HistogramBins equal-width bins over
// the observed range. When every price is equal a single bin holds them all.
func BuildHistogram(t *model.Table) Histogram {
	prices := t.Valid(model.Price)
	if len(prices) == 0 {
		return Histogram{Empty: true}
	}

	lo, hi := floats.Min(prices), floats.Max(prices)
	if lo == hi {
		return Histogram{Bins: []Bin{{Start: lo, End: hi, Count: len(prices)}}}
	}

	bounds := make([]float64, HistogramBins+1)
	floats.Span(bounds, lo, hi)
	bins := make([]Bin, HistogramBins)
	for i := range bins {
		bins[i] = Bin{Start: bounds[i], End: bounds[i+1]}
	}
	for _, v := range prices {
		bins[binIndex(v, lo, hi, HistogramBins)].Count++
	}
	return Histogram{Bins: bins}
}
