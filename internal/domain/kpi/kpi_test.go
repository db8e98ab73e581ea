package kpi_test

import (
	"math"
	"testing"

	"github.com/okian/vitrine/internal/domain/kpi"
	"github.com/okian/vitrine/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompute(t *testing.T) {
	Convey("Given an empty table", t, func() {
		s := kpi.Compute(model.Empty())

		Convey("Then the literal placeholders are returned", func() {
			So(s.UnitsSold, ShouldEqual, "0")
			So(s.MeanPrice, ShouldEqual, "R$ 0,00")
			So(s.MeanRating, ShouldEqual, "0.0")
			So(s.Reviews, ShouldEqual, "0")
			So(s, ShouldResemble, kpi.Empty())
		})
	})

	Convey("Given a populated table", t, func() {
		tbl := model.NewTable([]model.Product{
			{Price: 1000000, Rating: 4.0, ReviewCount: 600000, UnitsSoldCode: 1000000},
			{Price: 2000000.5, Rating: 4.5, ReviewCount: 900000, UnitsSoldCode: 1500000},
			{Price: math.NaN(), Rating: math.NaN(), ReviewCount: math.NaN(), UnitsSoldCode: math.NaN()},
		})
		s := kpi.Compute(tbl)

		Convey("Then sums and means skip missing values", func() {
			So(s.UnitsSold, ShouldEqual, "2.500.000")
			So(s.MeanPrice, ShouldEqual, "R$ 1.500.000,25")
			So(s.MeanRating, ShouldEqual, "4.2/5.0")
			So(s.Reviews, ShouldEqual, "1.500.000")
		})
	})

	Convey("Given rows without any valid price", t, func() {
		s := kpi.Compute(model.NewTable([]model.Product{{Price: math.NaN(), Rating: 3, ReviewCount: 1, UnitsSoldCode: 1}}))

		Convey("Then the mean price reads as zero on the numeric path", func() {
			So(s.MeanPrice, ShouldEqual, "R$ 0,00")
			So(s.MeanRating, ShouldEqual, "3.0/5.0")
		})
	})
	Convey("Given rows without any valid rating", t, func() {
		s := kpi.Compute(model.NewTable([]model.Product{{Price: 10, Rating: math.NaN(), ReviewCount: 1, UnitsSoldCode: 1}}))

		Convey("Then the mean rating reads as zero and keeps its suffix", func() {
			So(s.MeanRating, ShouldEqual, "0.0/5.0")
			So(s.MeanPrice, ShouldEqual, "R$ 10,00")
		})
	})
}
