package render

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"slices"
	"testing"

	chart "github.com/wcharczuk/go-chart/v2"
)

func TestRender_PNG(t *testing.T) {
	var buf bytes.Buffer
	c := Chart{
		Title:  "y = x^2",
		XLabel: "x",
		YLabel: "y",
		Width:  400,
		Height: 300,
		Series: []Line{{Name: "square", X: []float64{0, 1, 2, 3}, Y: []float64{0, 1, 4, 9}}},
	}
	if err := Render(&buf, c); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Errorf("unexpected size %v", b)
	}
}

func TestRender_Styles(t *testing.T) {
	x := []float64{10, 20, 30}
	y := []float64{5, 100, 40}
	for _, s := range []Style{StyleLine, StyleMarkers, StyleStem, StyleStep} {
		t.Run(string(s), func(t *testing.T) {
			var buf bytes.Buffer
			err := Render(&buf, Chart{Title: "styles", Series: []Line{{Name: "a", X: x, Y: y, Style: s}}})
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if buf.Len() == 0 {
				t.Error("empty output")
			}
		})
	}
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name string
		c    Chart
		want error
	}{
		{"no series", Chart{}, ErrNoSeries},
		{"length mismatch", Chart{Series: []Line{{X: []float64{1, 2}, Y: []float64{1}}}}, ErrBadSeries},
		{"empty", Chart{Series: []Line{{}}}, ErrBadSeries},
		{"log without positives", Chart{LogY: true, Series: []Line{{X: []float64{1, 2}, Y: []float64{0, -1}}}}, ErrNoPositiveValues},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Render(&buf, tt.c); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestBuild_ReverseX(t *testing.T) {
	ch, err := build(Chart{ReverseX: true, Series: []Line{{X: []float64{4000, 400}, Y: []float64{0.1, 0.2}}}})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	r, ok := ch.XAxis.Range.(*chart.ContinuousRange)
	if !ok {
		t.Fatalf("unexpected range type %T", ch.XAxis.Range)
	}
	if !r.Descending || r.Min != 400 || r.Max != 4000 {
		t.Errorf("unexpected x range %+v", r)
	}
}

func TestBuild_LogY(t *testing.T) {
	ch, err := build(Chart{LogY: true, Series: []Line{{X: []float64{0, 1, 2}, Y: []float64{0, 0.5, 40}}}})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	s := ch.Series[0].(chart.ContinuousSeries)
	if len(s.YValues) != 2 {
		t.Fatalf("zero should be dropped, got %v", s.YValues)
	}
	if math.Abs(s.YValues[1]-math.Log10(40)) > 1e-12 {
		t.Errorf("expected log10 values, got %v", s.YValues)
	}
	var labels []string
	for _, tk := range ch.YAxis.Ticks {
		labels = append(labels, tk.Label)
	}
	if !slices.Equal(labels, []string{"10^-1", "10^0", "10^1", "10^2"}) {
		t.Errorf("unexpected ticks %v", labels)
	}
}

func TestStemPath(t *testing.T) {
	x, y := stemPath([]float64{1, 2}, []float64{5, 7})
	if !slices.Equal(x, []float64{1, 1, 1, 2, 2, 2}) || !slices.Equal(y, []float64{0, 5, 0, 0, 7, 0}) {
		t.Errorf("unexpected stem path %v %v", x, y)
	}
}

func TestStepPath(t *testing.T) {
	x, y := stepPath([]float64{0, 1, 2}, []float64{3, 4, 5})
	if !slices.Equal(x, []float64{0, 1, 1, 2, 2}) || !slices.Equal(y, []float64{3, 3, 4, 4, 5}) {
		t.Errorf("unexpected step path %v %v", x, y)
	}
}
