package charts

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/vitrine/internal/domain/model"
)

// BuildTopBrands ranks brands by mean valid price, highest first, and keeps
// TopBrandsLimit of them. Ties keep the order in which brands first appear.
// Brands without any valid price are left out.
func BuildTopBrands(t *model.Table) TopBrands {
	ranked := make([]BrandPrice, 0)
	for _, g := range groupBy(t, model.Brand) {
		prices := make([]float64, 0, len(g.rows))
		for _, i := range g.rows {
			if p := t.At(i).Price; !math.IsNaN(p) {
				prices = append(prices, p)
			}
		}
		if len(prices) == 0 {
			continue
		}
		mean := stat.Mean(prices, nil)
		ranked = append(ranked, BrandPrice{
			Brand:     g.key,
			MeanPrice: mean,
			Label:     fmt.Sprintf("R$ %.0f", mean),
		})
	}
	if len(ranked) == 0 {
		return TopBrands{Empty: true}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MeanPrice > ranked[j].MeanPrice
	})
	if len(ranked) > TopBrandsLimit {
		ranked = ranked[:TopBrandsLimit]
	}

	means := make([]float64, len(ranked))
	for i, b := range ranked {
		means[i] = b.MeanPrice
	}
	return TopBrands{Brands: ranked, YMax: floats.Max(means) * HeadroomFactor}
}
