package scenario

import (
	"context"
	"math"

	"github.com/deepceutix/datagen/internal/numeric"
	"github.com/deepceutix/datagen/internal/render"
	"github.com/deepceutix/datagen/internal/series"
)

func squareScenario() Scenario {
	return funcScenario{
		name: "square",
		desc: "y = x^2 for x in 0..10",
		run: func(_ context.Context, p Params) (*Result, error) {
			x := numeric.Linspace(0, 10, p.points(11))
			y := make([]float64, len(x))
			for i, v := range x {
				y[i] = v * v
			}
			return &Result{
				Chart: render.Chart{
					Title:  "Plot of y=x^2 from 0 to 10",
					XLabel: "x",
					YLabel: "y",
					Series: []render.Line{{Name: "y=x^2", X: x, Y: y}},
				},
				Data: series.New("y=x^2", x, y),
			}, nil
		},
	}
}

func sineScenario() Scenario {
	return funcScenario{
		name: "sine",
		desc: "sin(x) over one period",
		run: func(_ context.Context, p Params) (*Result, error) {
			x := numeric.Linspace(0, 2*math.Pi, p.points(100))
			y := make([]float64, len(x))
			for i, v := range x {
				y[i] = math.Sin(v)
			}
			return &Result{
				Chart: render.Chart{
					Title:  "Sine Wave",
					XLabel: "x (radians)",
					YLabel: "sin(x)",
					Series: []render.Line{{Name: "sin(x)", X: x, Y: y}},
				},
				Data: series.New("sin(x)", x, y),
			}, nil
		},
	}
}
