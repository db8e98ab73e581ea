// Package render draws dashboard charts as PNG images.
package render

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	service "github.com/okian/vitrine/internal/app"
	"github.com/okian/vitrine/internal/domain/charts"
)

// Chart names accepted by Render.
const (
	Scatter   = "scatter"
	Density   = "density"
	Histogram = "histogram"
	Heatmap   = "heatmap"
	Brands    = "brands"
	Gender    = "gender"
	Season    = "season"
)

const (
	defaultWidth  = 1024
	defaultHeight = 512
)

// palette is cycled through series, bars and slices.
var palette = []drawing.Color{
	drawing.ColorFromHex("00BFA5"),
	drawing.ColorFromHex("FF4081"),
	drawing.ColorFromHex("FFC107"),
	drawing.ColorFromHex("2979FF"),
}

func colorAt(i int) drawing.Color { return palette[i%len(palette)] }

// Renderer turns computed chart structures into PNG images.
type Renderer struct {
	width  int
	height int
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{width: defaultWidth, height: defaultHeight}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Known reports whether name is a chart of the dashboard, drawable or not.
func Known(name string) bool {
	switch name {
	case Scatter, Density, Histogram, Heatmap, Brands, Gender, Season:
		return true
	}
	return false
}

// Render writes the PNG of chart name from b to w.
func (r *Renderer) Render(w io.Writer, name string, b service.Bundle) error {
	var err error
	switch name {
	case Scatter:
		err = r.scatter(w, b.Scatter)
	case Histogram:
		err = r.histogram(w, b.Histogram)
	case Brands:
		err = r.brands(w, b.TopBrands)
	case Gender:
		err = r.gender(w, b.Gender)
	case Season:
		err = r.season(w, b.Season)
	case Density, Heatmap:
		return fmt.Errorf("%w: %s", ErrNoRaster, name)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
	return err
}

func (r *Renderer) scatter(w io.Writer, s charts.Scatter) error {
	if s.Empty {
		return ErrEmptyChart
	}
	xr, yr := newExtent(), newExtent()
	series := make([]chart.Series, 0, 2*len(s.Series))
	for i, g := range s.Series {
		xs := make([]float64, len(g.Points))
		ys := make([]float64, len(g.Points))
		for j, p := range g.Points {
			xs[j], ys[j] = p.X, p.Y
			xr.add(p.X)
			yr.add(p.Y)
		}
		col := colorAt(i)
		series = append(series, chart.ContinuousSeries{
			Name:    g.Gender,
			Style:   chart.Style{StrokeWidth: chart.Disabled, DotWidth: 4, DotColor: col},
			XValues: xs,
			YValues: ys,
		})
		if g.Trend != nil {
			series = append(series, chart.ContinuousSeries{
				Name:    g.Gender + " (tendência)",
				Style:   chart.Style{StrokeWidth: 2, StrokeColor: col},
				XValues: []float64{g.Trend.From.X, g.Trend.To.X},
				YValues: []float64{g.Trend.From.Y, g.Trend.To.Y},
			})
			yr.add(g.Trend.From.Y)
			yr.add(g.Trend.To.Y)
		}
	}

	graph := chart.Chart{
		Title:  "Preço x Nota",
		Width:  r.width,
		Height: r.height,
		XAxis:  chart.XAxis{Name: "Preço", Range: xr.rng()},
		YAxis:  chart.YAxis{Name: "Nota", Range: yr.rng()},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return wrap(graph.Render(chart.PNG, w))
}

func (r *Renderer) histogram(w io.Writer, h charts.Histogram) error {
	if h.Empty {
		return ErrEmptyChart
	}
	bars := make([]chart.Value, len(h.Bins))
	most := 0
	for i, b := range h.Bins {
		bars[i] = chart.Value{
			Value: float64(b.Count),
			Label: fmt.Sprintf("%.0f", b.Start),
			Style: chart.Style{FillColor: colorAt(0), StrokeColor: colorAt(0)},
		}
		most = max(most, b.Count)
	}
	return r.bars(w, "Distribuição de Preços", bars, float64(most)*charts.HeadroomFactor)
}

func (r *Renderer) brands(w io.Writer, t charts.TopBrands) error {
	if t.Empty {
		return ErrEmptyChart
	}
	bars := make([]chart.Value, len(t.Brands))
	for i, b := range t.Brands {
		bars[i] = chart.Value{
			Value: b.MeanPrice,
			Label: b.Brand,
			Style: chart.Style{FillColor: colorAt(i), StrokeColor: colorAt(i)},
		}
	}
	return r.bars(w, "Top 10 Marcas por Preço Médio", bars, t.YMax)
}

func (r *Renderer) gender(w io.Writer, g charts.GenderDistribution) error {
	if g.Empty {
		return ErrEmptyChart
	}
	bars := make([]chart.Value, len(g.Bars))
	for i, b := range g.Bars {
		bars[i] = chart.Value{
			Value: float64(b.Count),
			Label: b.Gender,
			Style: chart.Style{FillColor: colorAt(i), StrokeColor: colorAt(i)},
		}
	}
	return r.bars(w, "Produtos por Gênero", bars, g.YMax)
}

func (r *Renderer) season(w io.Writer, s charts.SeasonDistribution) error {
	if s.Empty || s.Total <= 0 {
		return ErrEmptyChart
	}
	values := make([]chart.Value, 0, len(s.Slices))
	for i, sl := range s.Slices {
		if sl.Units <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: sl.Units,
			Label: fmt.Sprintf("%s (%.0f%%)", sl.Season, sl.Share*100),
			Style: chart.Style{FillColor: colorAt(i), StrokeColor: drawing.ColorWhite},
		})
	}
	if len(values) == 0 {
		return ErrEmptyChart
	}
	pie := chart.PieChart{
		Title:  "Vendas por Temporada",
		Width:  r.height,
		Height: r.height,
		Values: values,
	}
	return wrap(pie.Render(chart.PNG, w))
}

func (r *Renderer) bars(w io.Writer, title string, bars []chart.Value, ymax float64) error {
	if ymax <= 0 {
		ymax = 1
	}
	width := 40
	if n := len(bars); n > 0 {
		width = max(4, min(60, r.width/(2*n)))
	}
	bc := chart.BarChart{
		Title:    title,
		Width:    r.width,
		Height:   r.height,
		BarWidth: width,
		YAxis:    chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: ymax}},
		Bars:     bars,
	}
	return wrap(bc.Render(chart.PNG, w))
}

// extent tracks the min and max of an axis.
type extent struct{ lo, hi float64 }

func newExtent() *extent { return &extent{lo: math.Inf(1), hi: math.Inf(-1)} }

func (e *extent) add(v float64) {
	e.lo = math.Min(e.lo, v)
	e.hi = math.Max(e.hi, v)
}

// rng pads the extent by 5% and widens a degenerate one so the chart
// never sees a zero-width range.
func (e *extent) rng() *chart.ContinuousRange {
	lo, hi := e.lo, e.hi
	if lo > hi {
		lo, hi = 0, 1
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 0.5
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrRender, err)
}
