package scenario

import (
	"context"
	"fmt"

	"github.com/deepceutix/datagen/internal/render"
	"github.com/deepceutix/datagen/internal/series"
	"github.com/deepceutix/datagen/internal/table"
	"github.com/deepceutix/datagen/internal/thermal"
)

func dscScenario() Scenario {
	return funcScenario{
		name: "dsc",
		desc: "DSC thermogram of PLGA and paracetamol with glass transition and melt",
		run: func(_ context.Context, p Params) (*Result, error) {
			return runThermal(p, "DSC Thermogram", "Heat Flow (W/g)",
				thermal.PLGAHeatFlow(), thermal.ParacetamolHeatFlow())
		},
	}
}

func tgaScenario() Scenario {
	return funcScenario{
		name: "tga",
		desc: "TGA weight-loss steps of paracetamol and PLGA",
		run: func(_ context.Context, p Params) (*Result, error) {
			return runThermal(p, "TGA Thermogram", "Weight Loss (fraction)",
				thermal.ParacetamolWeightLoss(), thermal.PLGAWeightLoss())
		},
	}
}

// runThermal plots curves on a shared temperature grid. The first curve is
// the declared data series.
func runThermal(p Params, title, ylabel string, curves ...thermal.Curve) (*Result, error) {
	grid := thermal.Grid(p.points(400))

	lines := make([]render.Line, len(curves))
	profiles := make([][]float64, len(curves))
	tbl := table.New("Sample", "Transition", "Onset (°C)", "Level")
	var summary []string
	for i, c := range curves {
		profiles[i] = c.Profile(grid)
		lines[i] = render.Line{Name: c.Name, X: grid, Y: profiles[i], Style: render.StyleStep}
		for _, tr := range c.Transitions {
			label := tr.Label
			if label == "" {
				label = "step"
			}
			tbl.Append(c.Name, label, table.FormatFloat(tr.Onset), table.FormatFloat(tr.Level))
			summary = append(summary, fmt.Sprintf("%s %s at %.1f °C", c.Name, label, tr.Onset))
		}
	}
	tmax := grid[len(grid)-1]
	for _, c := range curves {
		summary = append(summary, fmt.Sprintf("%s level at %.0f °C: %.2f", c.Name, tmax, c.At(tmax)))
	}

	return &Result{
		Chart: render.Chart{
			Title:  title,
			XLabel: "Temperature (°C)",
			YLabel: ylabel,
			Series: lines,
		},
		Data:    series.New(curves[0].Name, grid, profiles[0]),
		Tables:  []table.Table{*tbl},
		Summary: summary,
	}, nil
}
