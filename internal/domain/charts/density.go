package charts

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/okian/vitrine/internal/domain/model"
)

// BuildDensity bins valid (Price, Rating) pairs on a bins x bins grid spanning
// the observed ranges. A degenerate axis is widened by half a unit each way.
// Non-positive bins fall back to DefaultDensityBins.
func BuildDensity(t *model.Table, bins int) Density {
	if bins <= 0 {
		bins = DefaultDensityBins
	}
	xs := make([]float64, 0, t.Len())
	ys := make([]float64, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		p := t.At(i)
		if math.IsNaN(p.Price) || math.IsNaN(p.Rating) {
			continue
		}
		xs = append(xs, p.Price)
		ys = append(ys, p.Rating)
	}
	if len(xs) == 0 {
		return Density{Empty: true}
	}

	xEdges := edges(floats.Min(xs), floats.Max(xs), bins)
	yEdges := edges(floats.Min(ys), floats.Max(ys), bins)
	counts := make([][]int, bins)
	for i := range counts {
		counts[i] = make([]int, bins)
	}

	out := Density{XEdges: xEdges, YEdges: yEdges, Counts: counts}
	for i := range xs {
		x := binIndex(xs[i], xEdges[0], xEdges[bins], bins)
		y := binIndex(ys[i], yEdges[0], yEdges[bins], bins)
		counts[y][x]++
		if counts[y][x] > out.Max {
			out.Max = counts[y][x]
		}
	}
	return out
}

// edges returns n+1 equally spaced boundaries covering [lo, hi].
func edges(lo, hi float64, n int) []float64 {
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	out := make([]float64, n+1)
	floats.Span(out, lo, hi)
	return out
}

// binIndex maps v into one of n equal bins over [lo, hi]; hi lands in the last bin.
func binIndex(v, lo, hi float64, n int) int {
	idx := int((v - lo) * float64(n) / (hi - lo))
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
