package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestOpErrors(t *testing.T) {
	Convey("Given operation-tagged errors", t, func() {
		cause := errors.New("eof")

		Convey("Then WrapKind matches both kind and cause", func() {
			err := WrapKind("api.dashboard", ErrBadRequest, cause)
			So(errors.Is(err, ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.dashboard: bad request: eof")
		})

		Convey("Then NewKind carries only the kind", func() {
			err := NewKind("api.chart", ErrNotFound)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.chart: not found")
		})

		Convey("Then Wrap keeps nil as nil", func() {
			So(Wrap("op", nil), ShouldBeNil)
			So(Wrap("op", cause).Error(), ShouldEqual, "op: eof")
		})
	})
}

func TestFiltersFromQuery(t *testing.T) {
	Convey("Given query strings", t, func() {
		Convey("When values repeat, use commas and carry blanks", func() {
			q, _ := url.ParseQuery("brand=A&brand=B,%20C&material=&gender_season=Summer,,Winter")
			f, err := filtersFromQuery(q)

			Convey("Then they are split, trimmed and cleaned", func() {
				So(err, ShouldBeNil)
				So(f.Brands, ShouldResemble, []string{"A", "B", "C"})
				So(f.Materials, ShouldBeEmpty)
				So(f.GenderSeasons, ShouldResemble, []string{"Summer", "Winter"})
			})
		})

		Convey("When a value escapes its commas", func() {
			q := url.Values{"brand": {`Silva\, Filhos`, `A\\B,C`}}
			f, err := filtersFromQuery(q)

			Convey("Then the escaped comma stays inside the value", func() {
				So(err, ShouldBeNil)
				So(f.Brands, ShouldResemble, []string{"Silva, Filhos", `A\B`, "C"})
			})
		})

		Convey("When a parameter is unknown", func() {
			q, _ := url.ParseQuery("brand=A&size=M")
			_, err := filtersFromQuery(q)
			So(errors.Is(err, ErrUnknownFilter), ShouldBeTrue)
		})
	})
}

func TestWriteJSON(t *testing.T) {
	Convey("Given a value JSON cannot encode", t, func() {
		w := httptest.NewRecorder()
		writeJSON(w, http.StatusOK, map[string]float64{"price": math.Inf(1)})

		Convey("Then a 500 error body is sent instead of an empty 200", func() {
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			var body errorResponse
			So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
			So(body.Code, ShouldEqual, "encode_failed")
		})
	})

	Convey("Given an encodable value", t, func() {
		w := httptest.NewRecorder()
		writeJSON(w, http.StatusAccepted, map[string]int{"rows": 2})
		So(w.Code, ShouldEqual, http.StatusAccepted)
		So(w.Body.String(), ShouldEqual, "{\"rows\":2}\n")
	})
}
