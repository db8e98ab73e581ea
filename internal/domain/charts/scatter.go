package charts

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/vitrine/internal/domain/model"
)

// BuildScatter plots valid (Price, Rating) pairs per gender and fits an OLS
// trend line for every gender with at least two distinct prices.
func BuildScatter(t *model.Table) Scatter {
	out := Scatter{Empty: true}
	for _, g := range groupBy(t, model.Gender) {
		xs := make([]float64, 0, len(g.rows))
		ys := make([]float64, 0, len(g.rows))
		for _, i := range g.rows {
			p := t.At(i)
			if math.IsNaN(p.Price) || math.IsNaN(p.Rating) {
				continue
			}
			xs = append(xs, p.Price)
			ys = append(ys, p.Rating)
		}
		if len(xs) == 0 {
			continue
		}

		series := ScatterSeries{Gender: g.key, Points: make([]Point, len(xs))}
		for i := range xs {
			series.Points[i] = Point{X: xs[i], Y: ys[i]}
		}
		series.Trend = fitTrend(xs, ys)
		out.Series = append(out.Series, series)
		out.Empty = false
	}
	return out
}

func fitTrend(xs, ys []float64) *TrendLine {
	if len(xs) < 2 {
		return nil
	}
	lo, hi := floats.Min(xs), floats.Max(xs)
	if lo == hi {
		return nil
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(alpha) || math.IsNaN(beta) {
		return nil
	}
	return &TrendLine{
		Intercept: alpha,
		Slope:     beta,
		From:      Point{X: lo, Y: alpha + beta*lo},
		To:        Point{X: hi, Y: alpha + beta*hi},
	}
}
