// Package model contains domain models passed between layers.
package model

import "math"

// Dimension names a categorical attribute that filters and groupings operate on.
type Dimension string

// Filterable dimensions.
const (
	Brand    Dimension = "Brand"
	Material Dimension = "Material"
	Gender   Dimension = "Gender"
	Season   Dimension = "Season"
)

// Dimensions lists every categorical dimension in display order.
var Dimensions = []Dimension{Brand, Material, Gender, Season}

// Valid reports whether d is one of the known dimensions.
func (d Dimension) Valid() bool {
	switch d {
	case Brand, Material, Gender, Season:
		return true
	}
	return false
}

// Measure names a numeric attribute of a product.
type Measure string

// Numeric measures.
const (
	Price           Measure = "Price"
	Rating          Measure = "Rating"
	ReviewCount     Measure = "ReviewCount"
	DiscountPercent Measure = "DiscountPercent"
	UnitsSoldCode   Measure = "UnitsSoldCode"
)

// Measures lists every numeric measure in correlation-matrix order.
var Measures = []Measure{Price, Rating, ReviewCount, DiscountPercent, UnitsSoldCode}

// Product is one row of the dataset.
// Categorical fields are empty when missing; numeric fields are NaN when
// missing or not parseable.
type Product struct {
	ID       string // optional source identifier
	Brand    string
	Material string
	Gender   string
	Season   string

	Price           float64 // currency units
	Rating          float64 // 0..5
	ReviewCount     float64
	DiscountPercent float64
	UnitsSoldCode   float64 // proxy for sold volume
}

// Missing returns a Product with every numeric field marked missing.
func Missing() Product {
	nan := math.NaN()
	return Product{
		Price:           nan,
		Rating:          nan,
		ReviewCount:     nan,
		DiscountPercent: nan,
		UnitsSoldCode:   nan,
	}
}

// Dimension returns the value of dimension d. Unknown dimensions read as "".
func (p Product) Dimension(d Dimension) string {
	switch d {
	case Brand:
		return p.Brand
	case Material:
		return p.Material
	case Gender:
		return p.Gender
	case Season:
		return p.Season
	}
	return ""
}

// Measure returns the value of measure m. Unknown measures read as NaN.
func (p Product) Measure(m Measure) float64 {
	switch m {
	case Price:
		return p.Price
	case Rating:
		return p.Rating
	case ReviewCount:
		return p.ReviewCount
	case DiscountPercent:
		return p.DiscountPercent
	case UnitsSoldCode:
		return p.UnitsSoldCode
	}
	return math.NaN()
}
