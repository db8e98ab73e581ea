package service_test

import (
	"math"

	"github.com/okian/vitrine/internal/domain/model"
)

func product(brand, material, gender, season string, price, rating, reviews, discount, units float64) model.Product {
	return model.Product{
		Brand:           brand,
		Material:        material,
		Gender:          gender,
		Season:          season,
		Price:           price,
		Rating:          rating,
		ReviewCount:     reviews,
		DiscountPercent: discount,
		UnitsSoldCode:   units,
	}
}

func fixture() *model.Table {
	return model.NewTable([]model.Product{
		product("A", "Cotton", "M", "Summer", 100, 4.0, 10, 5, 100),
		product("A", "Cotton", "F", "Winter", 200, 5.0, 20, 10, 200),
		product("B", "Linen", "M", "Summer", 300, 3.0, 30, 0, 300),
		product("A", "Linen", "F", "Summer", 150, 4.5, 40, 15, 400),
		product("C", "Cotton", "M", "Winter", math.NaN(), 2.0, 5, 0, 50),
	})
}
