package datagen_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/okian/vitrine/internal/adapters/dataset"
	"github.com/okian/vitrine/internal/adapters/http/api"
	"github.com/okian/vitrine/internal/adapters/render"
	service "github.com/okian/vitrine/internal/app"
	"github.com/okian/vitrine/internal/datagen"
	"github.com/okian/vitrine/internal/domain/model"
	"github.com/okian/vitrine/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

func sameRows(a, b []model.Product) bool {
	if len(a) != len(b) {
		return false
	}
	eq := func(x, y float64) bool { return x == y || (math.IsNaN(x) && math.IsNaN(y)) }
	for i := range a {
		p, q := a[i], b[i]
		if p.ID != q.ID || p.Brand != q.Brand || p.Material != q.Material || p.Gender != q.Gender || p.Season != q.Season {
			return false
		}
		if !eq(p.Price, q.Price) || !eq(p.Rating, q.Rating) || !eq(p.ReviewCount, q.ReviewCount) ||
			!eq(p.DiscountPercent, q.DiscountPercent) || !eq(p.UnitsSoldCode, q.UnitsSoldCode) {
			return false
		}
	}
	return true
}

func TestGenerate(t *testing.T) {
	Convey("Given the default generator config", t, func() {
		cfg := datagen.DefaultConfig()
		cfg.Rows = 300

		Convey("The same seed yields the same rows", func() {
			So(sameRows(datagen.Generate(cfg), datagen.Generate(cfg)), ShouldBeTrue)
		})

		Convey("A different seed yields different rows", func() {
			other := cfg
			other.Seed = cfg.Seed + 1
			So(sameRows(datagen.Generate(cfg), datagen.Generate(other)), ShouldBeFalse)
		})

		Convey("Values stay in their domains", func() {
			ids := map[string]bool{}
			for _, p := range datagen.Generate(cfg) {
				ids[p.ID] = true
				So(p.Brand, ShouldNotBeEmpty)
				So(p.Gender, ShouldNotBeEmpty)
				if !math.IsNaN(p.Rating) {
					So(p.Rating, ShouldBeBetweenOrEqual, 0, 5)
				}
				if !math.IsNaN(p.Price) {
					So(p.Price, ShouldBeGreaterThan, 0)
				}
				if !math.IsNaN(p.ReviewCount) {
					So(p.ReviewCount, ShouldBeGreaterThanOrEqualTo, 0)
				}
			}
			So(len(ids), ShouldEqual, cfg.Rows)
		})

		Convey("A zero missing rate leaves every number present", func() {
			cfg.MissingRate = 0
			for _, p := range datagen.Generate(cfg) {
				So(math.IsNaN(p.Price) || math.IsNaN(p.UnitsSoldCode), ShouldBeFalse)
			}
		})

		Convey("Non-positive row counts produce nothing", func() {
			cfg.Rows = 0
			So(datagen.Generate(cfg), ShouldBeEmpty)
		})
	})
}

func TestWriteCSV(t *testing.T) {
	Convey("Given generated rows", t, func() {
		cfg := datagen.DefaultConfig()
		cfg.Rows = 50
		cfg.MissingRate = 0.2
		rows := datagen.Generate(cfg)

		for _, headers := range []string{datagen.HeadersEN, datagen.HeadersPT} {
			Convey("Written with "+headers+" headers, the loader reads them back", func() {
				var buf bytes.Buffer
				So(datagen.WriteCSV(&buf, rows, headers, 0), ShouldBeNil)

				table, err := dataset.NewLoader().Read(&buf, ',')
				So(err, ShouldBeNil)
				So(table.Len(), ShouldEqual, len(rows))
				So(sameRows(table.Rows(), rows), ShouldBeTrue)
			})
		}

		Convey("A custom delimiter is honoured", func() {
			var buf bytes.Buffer
			So(datagen.WriteCSV(&buf, rows[:1], datagen.HeadersPT, ';'), ShouldBeNil)
			So(strings.HasPrefix(buf.String(), "ID;Marca;Material;Gênero"), ShouldBeTrue)
		})

		Convey("An unknown header set is rejected", func() {
			err := datagen.WriteCSV(&bytes.Buffer{}, rows, "fr", 0)
			So(errors.Is(err, datagen.ErrUnknownHeaders), ShouldBeTrue)
		})
	})
}

func TestVerify(t *testing.T) {
	Convey("Given a dashboard serving generated rows", t, func() {
		ctx := context.Background()
		cfg := datagen.DefaultConfig()
		cfg.Rows = 120
		rows := datagen.Generate(cfg)

		svc := service.New(service.WithTable(model.NewTable(rows)))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		mux := http.NewServeMux()
		api.NewServer(svc, svc, render.New(render.WithSize(320, 200))).Register(ctx, mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("Every check passes", func() {
			report, err := datagen.Verify(ctx, datagen.VerifyConfig{BaseURL: srv.URL + "/", ExpectRows: len(rows)})
			So(err, ShouldBeNil)
			So(report.Failed(), ShouldBeEmpty)
			So(len(report.Checks), ShouldEqual, 7)
		})

		Convey("A row count mismatch fails the dashboard check", func() {
			report, err := datagen.Verify(ctx, datagen.VerifyConfig{BaseURL: srv.URL, ExpectRows: len(rows) + 1})
			So(errors.Is(err, datagen.ErrVerify), ShouldBeTrue)
			So(len(report.Failed()), ShouldEqual, 1)
			So(report.Failed()[0].Name, ShouldEqual, "dashboard")
		})
	})

	Convey("Given a server that does not host the dashboard", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		report, err := datagen.Verify(context.Background(), datagen.VerifyConfig{BaseURL: srv.URL})
		So(errors.Is(err, datagen.ErrVerify), ShouldBeTrue)
		So(len(report.Failed()), ShouldEqual, 7)
	})
}
