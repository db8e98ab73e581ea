package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func serve(mux *http.ServeMux, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestSiteAssets(t *testing.T) {
	Convey("Given the dashboard site mounted at /", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux)

		Convey("The page carries every KPI and filter control", func() {
			w := serve(mux, "GET", "/")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
			for _, id := range []string{"kpi-units", "kpi-price", "kpi-rating", "kpi-reviews"} {
				So(w.Body.String(), ShouldContainSubstring, `id="`+id+`"`)
			}
			for _, param := range []string{"brand", "material", "scatter_gender", "gender_season", "season_gender"} {
				So(w.Body.String(), ShouldContainSubstring, `data-param="`+param+`"`)
			}
		})

		Convey("The script talks to the JSON API and the chart images", func() {
			w := serve(mux, "GET", "/app.js")
			So(w.Code, ShouldEqual, http.StatusOK)
			body := w.Body.String()
			So(strings.Contains(body, "/api/dashboard") && strings.Contains(body, "/api/options"), ShouldBeTrue)
			So(body, ShouldContainSubstring, "/charts/")
			So(body, ShouldContainSubstring, "q.append(s.dataset.param")
			So(body, ShouldNotContainSubstring, "join(',')")
		})

		Convey("The stylesheet is served as CSS", func() {
			w := serve(mux, "GET", "/style.css")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/css")
		})

		Convey("HEAD is allowed and has no body", func() {
			w := serve(mux, "HEAD", "/")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.Len(), ShouldEqual, 0)
		})

		Convey("Unknown assets are not found", func() {
			So(serve(mux, "GET", "/favicon.svg").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Writes are refused with an Allow header", func() {
			w := serve(mux, "POST", "/")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(w.Header().Get("Allow"), ShouldEqual, "GET, HEAD")
		})
	})

	Convey("Registering on a nil mux panics", t, func() {
		So(func() { Register(context.Background(), nil) }, ShouldPanic)
	})
}
