package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/vitrine/internal/adapters/http/api"
	"github.com/okian/vitrine/internal/adapters/render"
	service "github.com/okian/vitrine/internal/app"
	"github.com/okian/vitrine/internal/domain/model"
	"github.com/okian/vitrine/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func fixture() *model.Table {
	return model.NewTable([]model.Product{
		{Brand: "A", Material: "Cotton", Gender: "M", Season: "Summer", Price: 100, Rating: 4, ReviewCount: 10, DiscountPercent: 5, UnitsSoldCode: 100},
		{Brand: "A", Material: "Cotton", Gender: "F", Season: "Winter", Price: 200, Rating: 5, ReviewCount: 20, DiscountPercent: 10, UnitsSoldCode: 200},
		{Brand: "B", Material: "Linen", Gender: "M", Season: "Summer", Price: 300, Rating: 3, ReviewCount: 30, DiscountPercent: 0, UnitsSoldCode: 300},
		{Brand: "A", Material: "Linen", Gender: "F", Season: "Summer", Price: 150, Rating: 4.5, ReviewCount: 40, DiscountPercent: 15, UnitsSoldCode: 400},
		{Brand: "C", Material: "Cotton", Gender: "M", Season: "Winter", Price: math.NaN(), Rating: 2, ReviewCount: 5, DiscountPercent: 0, UnitsSoldCode: 50},
	})
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

// failingDeps returns the same error from every call.
type failingDeps struct{ err error }

func (f failingDeps) Recompute(context.Context, service.Filters) (service.Bundle, error) {
	return service.Bundle{}, f.err
}

func (f failingDeps) Options(context.Context) (map[model.Dimension][]string, error) {
	return nil, f.err
}

// brokenRenderer fails every render with a non-sentinel error.
type brokenRenderer struct{}

func (brokenRenderer) Render(io.Writer, string, service.Bundle) error {
	return errors.New("boom")
}

func newMux(deps api.Dependencies, renderer api.ChartRenderer) *http.ServeMux {
	mux := http.NewServeMux()
	stats := &mockStatsProvider{stats: map[string]interface{}{"started": true, "rows": 5}}
	api.NewServer(deps, stats, renderer).Register(context.Background(), mux)
	return mux
}

func startedService() *service.Service {
	svc := service.New(service.WithTable(fixture()))
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

func do(mux *http.ServeMux, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		svc := startedService()
		defer svc.Stop()
		mux := newMux(svc, render.New())

		Convey("Then the health endpoint reports readiness", func() {
			w := do(mux, "GET", "/healthz", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			var h map[string]interface{}
			So(json.Unmarshal(w.Body.Bytes(), &h), ShouldBeNil)
			So(h["status"], ShouldEqual, "ok")
			So(h["rows"], ShouldEqual, 5.0)

			So(do(mux, "DELETE", "/healthz", nil).Code, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("Then the metrics endpoint exposes Prometheus metrics", func() {
			w := do(mux, "GET", "/metrics", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "vitrine_dashboard_")
		})

		Convey("Then stats rejects writes", func() {
			w := do(mux, "POST", "/stats", nil)
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(w.Header().Get("Allow"), ShouldEqual, "GET, HEAD")
		})

		Convey("Then the stats endpoint returns JSON", func() {
			w := do(mux, "GET", "/stats", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			var stats map[string]interface{}
			So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
			So(stats["rows"], ShouldEqual, 5.0)
		})

		Convey("Then unknown paths are not found", func() {
			w := do(mux, "GET", "/unknown", nil)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given a service that has not loaded its dataset", t, func() {
		mux := http.NewServeMux()
		stats := &mockStatsProvider{stats: map[string]interface{}{"started": false}}
		api.NewServer(service.New(), stats, render.New()).Register(context.Background(), mux)

		Convey("Then health is unavailable", func() {
			w := do(mux, "GET", "/healthz", nil)
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			So(w.Body.String(), ShouldContainSubstring, `"status":"starting"`)
		})
	})
}

func TestDashboardHandler(t *testing.T) {
	Convey("Given the dashboard endpoint", t, func() {
		svc := startedService()
		defer svc.Stop()
		mux := newMux(svc, render.New())

		Convey("When requested without filters", func() {
			w := do(mux, "GET", "/api/dashboard", nil)

			Convey("Then the full bundle is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
				So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)
				var b service.Bundle
				So(json.Unmarshal(w.Body.Bytes(), &b), ShouldBeNil)
				So(b.Rows.Global, ShouldEqual, 5)
				So(b.KPIs.UnitsSold, ShouldEqual, "1.050")
			})
		})

		Convey("When filters repeat and use commas", func() {
			w := do(mux, "GET", "/api/dashboard?brand=A&brand=B&material=Cotton,Linen&scatter_gender=F", nil)

			Convey("Then both forms are combined", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var b service.Bundle
				So(json.Unmarshal(w.Body.Bytes(), &b), ShouldBeNil)
				So(b.Rows.Global, ShouldEqual, 4)
				So(b.Rows.Scatter, ShouldEqual, 2)
			})
		})

		Convey("When the brand filter is A", func() {
			w := do(mux, "GET", "/api/dashboard?brand=A", nil)
			var b service.Bundle
			So(json.Unmarshal(w.Body.Bytes(), &b), ShouldBeNil)

			Convey("Then the scatter holds brand A rows by gender", func() {
				So(len(b.Scatter.Series), ShouldEqual, 2)
				So(b.Scatter.Series[0].Gender, ShouldEqual, "M")
				So(len(b.Scatter.Series[0].Points), ShouldEqual, 1)
				So(b.Scatter.Series[1].Gender, ShouldEqual, "F")
				So(len(b.Scatter.Series[1].Points), ShouldEqual, 2)
			})
		})

		Convey("When nothing matches", func() {
			w := do(mux, "GET", "/api/dashboard?brand=Z", nil)

			Convey("Then sentinels and empty flags are returned with 200", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				body := w.Body.String()
				So(body, ShouldContainSubstring, `"units_sold":"0"`)
				So(body, ShouldContainSubstring, `"mean_price":"R$ 0,00"`)
				So(body, ShouldContainSubstring, `"mean_rating":"0.0"`)
				So(body, ShouldContainSubstring, `"heatmap":{"empty":true}`)
			})
		})

		Convey("When an unknown filter is passed", func() {
			w := do(mux, "GET", "/api/dashboard?colour=red", nil)

			Convey("Then it is a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, "bad_request")
				So(w.Body.String(), ShouldContainSubstring, "colour")
			})
		})

		Convey("When filters are posted as JSON", func() {
			w := do(mux, "POST", "/api/dashboard", strings.NewReader(`{"brand":["A"],"season_gender":["F"]}`))

			Convey("Then they are applied", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var b service.Bundle
				So(json.Unmarshal(w.Body.Bytes(), &b), ShouldBeNil)
				So(b.Rows.Global, ShouldEqual, 3)
				So(b.Rows.Season, ShouldEqual, 2)
			})
		})

		Convey("When the posted body is empty", func() {
			w := do(mux, "POST", "/api/dashboard", http.NoBody)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("When the posted JSON is malformed or has unknown fields", func() {
			So(do(mux, "POST", "/api/dashboard", strings.NewReader(`{"brand":`)).Code, ShouldEqual, http.StatusBadRequest)
			So(do(mux, "POST", "/api/dashboard", strings.NewReader(`{"colour":["red"]}`)).Code, ShouldEqual, http.StatusBadRequest)
			So(do(mux, "POST", "/api/dashboard", strings.NewReader(`{"brand":"A"}`)).Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When another method is used", func() {
			w := do(mux, "DELETE", "/api/dashboard", nil)
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(w.Header().Get("Allow"), ShouldEqual, "GET, POST")
		})

		Convey("When a request id is supplied", func() {
			req := httptest.NewRequest("GET", "/api/dashboard", nil)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
		})
	})

	Convey("Given a service that is not started", t, func() {
		mux := newMux(service.New(service.WithTable(fixture())), nil)

		Convey("Then the dashboard is unavailable", func() {
			w := do(mux, "GET", "/api/dashboard", nil)
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
		})
	})

	Convey("Given a failing controller", t, func() {
		mux := newMux(failingDeps{err: errors.New("disk on fire")}, nil)

		Convey("Then errors surface as 500", func() {
			w := do(mux, "GET", "/api/dashboard", nil)
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(w.Body.String(), ShouldContainSubstring, "internal_error")
		})
	})
}

func TestOptionsHandler(t *testing.T) {
	Convey("Given the options endpoint", t, func() {
		svc := startedService()
		defer svc.Stop()
		mux := newMux(svc, nil)

		Convey("When all dimensions are requested", func() {
			w := do(mux, "GET", "/api/options", nil)
			var out map[string][]string
			So(json.Unmarshal(w.Body.Bytes(), &out), ShouldBeNil)

			Convey("Then each lists sorted distinct values", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(out["brand"], ShouldResemble, []string{"A", "B", "C"})
				So(out["material"], ShouldResemble, []string{"Cotton", "Linen"})
				So(out["gender"], ShouldResemble, []string{"F", "M"})
				So(out["season"], ShouldResemble, []string{"Summer", "Winter"})
			})
		})

		Convey("When a subset is requested", func() {
			w := do(mux, "GET", "/api/options?dimension=Brand,season", nil)
			var out map[string][]string
			So(json.Unmarshal(w.Body.Bytes(), &out), ShouldBeNil)
			So(len(out), ShouldEqual, 2)
			So(out, ShouldContainKey, "brand")
			So(out, ShouldContainKey, "season")
		})

		Convey("When an unknown dimension is requested", func() {
			w := do(mux, "GET", "/api/options?dimension=colour", nil)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When posted to", func() {
			So(do(mux, "POST", "/api/options", nil).Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}

func TestChartsHandler(t *testing.T) {
	Convey("Given the charts endpoint with a real renderer", t, func() {
		svc := startedService()
		defer svc.Stop()
		mux := newMux(svc, render.New(render.WithSize(400, 300)))

		for _, name := range []string{"scatter", "histogram", "brands", "gender", "season"} {
			Convey("When "+name+" is requested", func() {
				w := do(mux, "GET", "/charts/"+name+".png?brand=A,B", nil)

				Convey("Then a PNG is returned", func() {
					So(w.Code, ShouldEqual, http.StatusOK)
					So(w.Header().Get("Content-Type"), ShouldEqual, "image/png")
					So(strings.HasPrefix(w.Body.String(), "\x89PNG"), ShouldBeTrue)
				})
			})
		}

		Convey("When a chart without a raster form is requested", func() {
			So(do(mux, "GET", "/charts/density.png", nil).Code, ShouldEqual, http.StatusNotImplemented)
			So(do(mux, "GET", "/charts/heatmap.png", nil).Code, ShouldEqual, http.StatusNotImplemented)
		})

		Convey("When an unknown chart is requested", func() {
			So(do(mux, "GET", "/charts/pie.png", nil).Code, ShouldEqual, http.StatusNotFound)
			So(do(mux, "GET", "/charts/scatter", nil).Code, ShouldEqual, http.StatusNotFound)
			So(do(mux, "GET", "/charts/a/scatter.png", nil).Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the filters leave nothing to draw", func() {
			So(do(mux, "GET", "/charts/scatter.png?brand=Z", nil).Code, ShouldEqual, http.StatusNoContent)
		})

		Convey("When the filters are invalid", func() {
			So(do(mux, "GET", "/charts/scatter.png?colour=red", nil).Code, ShouldEqual, http.StatusBadRequest)
		})
	})

	Convey("Given a renderer that fails", t, func() {
		svc := startedService()
		defer svc.Stop()
		mux := newMux(svc, brokenRenderer{})

		Convey("Then the failure is a 500", func() {
			w := do(mux, "GET", "/charts/scatter.png", nil)
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(w.Body.String(), ShouldContainSubstring, "render_error")
		})
	})

	Convey("Given no renderer", t, func() {
		svc := startedService()
		defer svc.Stop()
		mux := newMux(svc, nil)

		Convey("Then charts are not implemented", func() {
			So(do(mux, "GET", "/charts/scatter.png", nil).Code, ShouldEqual, http.StatusNotImplemented)
		})
	})
}
