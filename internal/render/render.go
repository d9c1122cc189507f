// Package render draws scenario charts as PNG images with go-chart.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Default canvas size, matching a 10x6 inch figure at 100 dpi.
const (
	DefaultWidth  = 1000
	DefaultHeight = 600
)

var (
	// ErrNoSeries is returned for a chart without lines.
	ErrNoSeries = errors.New("render: chart has no series")
	// ErrBadSeries is returned for a line whose x and y differ in length or are empty.
	ErrBadSeries = errors.New("render: series x and y must be non-empty and of equal length")
	// ErrNoPositiveValues is returned when a log-scale chart has nothing above zero.
	ErrNoPositiveValues = errors.New("render: log scale needs positive values")
)

// Style selects how a line is drawn.
type Style string

const (
	StyleLine    Style = "line"
	StyleMarkers Style = "markers"
	StyleStem    Style = "stem"
	StyleStep    Style = "step"
)

// Line is one named series.
type Line struct {
	Name  string
	X     []float64
	Y     []float64
	Style Style
}

// Range fixes an axis to [Min, Max].
type Range struct {
	Min float64
	Max float64
}

// Chart describes a figure independently of the drawing library.
type Chart struct {
	Title    string
	XLabel   string
	YLabel   string
	Series   []Line
	XRange   *Range
	YRange   *Range
	ReverseX bool
	LogY     bool
	Width    int
	Height   int
}

var palette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorRed,
	chart.ColorGreen,
	chart.ColorAlternateGray,
	{R: 255, G: 127, B: 14, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
}

// Render writes c as a PNG to w.
func Render(w io.Writer, c Chart) error {
	ch, err := build(c)
	if err != nil {
		return err
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart %q: %w", c.Title, err)
	}
	return nil
}

func build(c Chart) (*chart.Chart, error) {
	if len(c.Series) == 0 {
		return nil, ErrNoSeries
	}

	var (
		series     []chart.Series
		xMin, xMax = math.Inf(1), math.Inf(-1)
		yMin, yMax = math.Inf(1), math.Inf(-1)
	)
	for i, l := range c.Series {
		if len(l.X) == 0 || len(l.X) != len(l.Y) {
			return nil, fmt.Errorf("%w: %q has %d x and %d y values", ErrBadSeries, l.Name, len(l.X), len(l.Y))
		}
		x, y := l.X, l.Y
		if c.LogY {
			x, y = logValues(x, y)
			if len(x) == 0 {
				continue
			}
		}
		switch l.Style {
		case StyleStem:
			x, y = stemPath(x, y)
		case StyleStep:
			x, y = stepPath(x, y)
		}
		for j := range x {
			xMin, xMax = math.Min(xMin, x[j]), math.Max(xMax, x[j])
			yMin, yMax = math.Min(yMin, y[j]), math.Max(yMax, y[j])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    l.Name,
			XValues: x,
			YValues: y,
			Style:   lineStyle(l.Style, palette[i%len(palette)]),
		})
	}
	if len(series) == 0 {
		return nil, ErrNoPositiveValues
	}

	xr := &chart.ContinuousRange{Min: xMin, Max: xMax, Descending: c.ReverseX}
	if c.XRange != nil {
		xr.Min, xr.Max = c.XRange.Min, c.XRange.Max
	}
	if xr.Min == xr.Max {
		xr.Min, xr.Max = xr.Min-1, xr.Max+1
	}

	yAxis := chart.YAxis{Name: c.YLabel}
	if c.LogY {
		lo, hi := math.Floor(yMin), math.Ceil(yMax)
		if lo == hi {
			hi++
		}
		yAxis.Range = &chart.ContinuousRange{Min: lo, Max: hi}
		yAxis.Ticks = decadeTicks(lo, hi)
	} else {
		yr := &chart.ContinuousRange{Min: yMin, Max: yMax}
		if c.YRange != nil {
			yr.Min, yr.Max = c.YRange.Min, c.YRange.Max
		}
		if yr.Min == yr.Max {
			yr.Min, yr.Max = yr.Min-1, yr.Max+1
		}
		yAxis.Range = yr
	}

	ch := &chart.Chart{
		Title:      c.Title,
		Width:      orDefault(c.Width, DefaultWidth),
		Height:     orDefault(c.Height, DefaultHeight),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: c.XLabel, Range: xr},
		YAxis:      yAxis,
		Series:     series,
	}
	if len(series) > 1 || series[0].GetName() != "" {
		ch.Elements = []chart.Renderable{chart.Legend(ch)}
	}
	return ch, nil
}

func lineStyle(s Style, col drawing.Color) chart.Style {
	switch s {
	case StyleMarkers:
		return chart.Style{
			StrokeWidth: 0,
			StrokeColor: drawing.Color{},
			DotWidth:    4,
			DotColor:    col,
		}
	default:
		return chart.Style{StrokeWidth: 2, StrokeColor: col}
	}
}

// stemPath turns points into vertical sticks from zero joined along the
// baseline: (x0,0) (x0,y0) (x0,0) (x1,0) ...
func stemPath(x, y []float64) ([]float64, []float64) {
	px := make([]float64, 0, 3*len(x))
	py := make([]float64, 0, 3*len(y))
	for i := range x {
		px = append(px, x[i], x[i], x[i])
		py = append(py, 0, y[i], 0)
	}
	return px, py
}

// stepPath holds each y until the next x.
func stepPath(x, y []float64) ([]float64, []float64) {
	px := make([]float64, 0, 2*len(x))
	py := make([]float64, 0, 2*len(y))
	for i := range x {
		if i > 0 {
			px = append(px, x[i])
			py = append(py, y[i-1])
		}
		px = append(px, x[i])
		py = append(py, y[i])
	}
	return px, py
}

// logValues drops non-positive y and returns log10 of the rest.
func logValues(x, y []float64) ([]float64, []float64) {
	var lx, ly []float64
	for i := range y {
		if y[i] > 0 {
			lx = append(lx, x[i])
			ly = append(ly, math.Log10(y[i]))
		}
	}
	return lx, ly
}

func decadeTicks(lo, hi float64) []chart.Tick {
	var ticks []chart.Tick
	for k := lo; k <= hi; k++ {
		ticks = append(ticks, chart.Tick{Value: k, Label: "10^" + strconv.Itoa(int(k))})
	}
	return ticks
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
