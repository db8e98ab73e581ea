// Package kpi computes the headline figures shown above the charts.
package kpi

import (
	"fmt"

	"github.com/okian/vitrine/internal/domain/format"
	"github.com/okian/vitrine/internal/domain/model"
)

// Placeholders shown when the filtered table has no rows. They are not the
// formatted zero values: the rating has no "/5.0" suffix and uses a dot.
const (
	EmptyUnits   = "0"
	EmptyPrice   = "R$ 0,00"
	EmptyRating  = "0.0"
	EmptyReviews = "0"
)

// Summary holds the four formatted KPIs.
type Summary struct {
	UnitsSold  string `json:"units_sold"`
	MeanPrice  string `json:"mean_price"`
	MeanRating string `json:"mean_rating"`
	Reviews    string `json:"reviews"`
}

// Empty returns the placeholder summary.
func Empty() Summary {
	return Summary{
		UnitsSold:  EmptyUnits,
		MeanPrice:  EmptyPrice,
		MeanRating: EmptyRating,
		Reviews:    EmptyReviews,
	}
}

// Compute summarizes t: total units sold, mean price, mean rating and total
// review count. Missing values are skipped; a mean with no values reads as 0.
func Compute(t *model.Table) Summary {
	if t.IsEmpty() {
		return Empty()
	}
	price, _ := t.Mean(model.Price)
	rating, _ := t.Mean(model.Rating)
	return Summary{
		UnitsSold:  format.Integer(t.Sum(model.UnitsSoldCode)),
		MeanPrice:  format.Currency(price),
		MeanRating: fmt.Sprintf("%.1f/5.0", rating),
		Reviews:    format.Integer(t.Sum(model.ReviewCount)),
	}
}
