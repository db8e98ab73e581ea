package charts

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/vitrine/internal/domain/model"
)

// BuildHeatmap computes the Pearson correlation of every pair of measures in
// model.Measures over pairwise-complete rows. A cell is undefined (NaN) when
// fewer than two complete pairs exist or either side has zero variance, so a
// single-row table yields a full matrix of undefined cells.
func BuildHeatmap(t *model.Table) Heatmap {
	if t.IsEmpty() {
		return Heatmap{Empty: true}
	}

	cols := make([][]float64, len(model.Measures))
	labels := make([]string, len(model.Measures))
	for i, m := range model.Measures {
		cols[i] = t.Column(m)
		labels[i] = string(m)
	}

	n := len(cols)
	values := make([][]Correlation, n)
	text := make([][]string, n)
	for i := range values {
		values[i] = make([]Correlation, n)
		text[i] = make([]string, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			c := pearson(cols[i], cols[j], i == j)
			values[i][j], values[j][i] = c, c
			label := ""
			if c.Defined() {
				label = fmt.Sprintf("%.2f", float64(c))
			}
			text[i][j], text[j][i] = label, label
		}
	}
	return Heatmap{Labels: labels, Values: values, Text: text}
}

func pearson(a, b []float64, self bool) Correlation {
	xs := make([]float64, 0, len(a))
	ys := make([]float64, 0, len(a))
	for k := range a {
		if math.IsNaN(a[k]) || math.IsNaN(b[k]) {
			continue
		}
		xs = append(xs, a[k])
		ys = append(ys, b[k])
	}
	if len(xs) < 2 || constant(xs) || constant(ys) {
		return Correlation(math.NaN())
	}
	if self {
		return 1
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return Correlation(math.NaN())
	}
	return Correlation(math.Max(-1, math.Min(1, r)))
}

func constant(vals []float64) bool {
	for _, v := range vals[1:] {
		if v != vals[0] {
			return false
		}
	}
	return true
}
