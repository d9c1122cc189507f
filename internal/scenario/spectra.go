package scenario

import (
	"context"
	"fmt"

	"github.com/deepceutix/datagen/internal/render"
	"github.com/deepceutix/datagen/internal/series"
	"github.com/deepceutix/datagen/internal/spectra"
	"github.com/deepceutix/datagen/internal/table"
)

func ftirScenario() Scenario {
	return funcScenario{
		name: "ftir",
		desc: "Simulated mid-IR absorbance spectrum of ibuprofen with band assignments",
		run:  runFTIR,
	}
}

func runFTIR(_ context.Context, p Params) (*Result, error) {
	opts := spectra.DefaultFTIROptions()
	opts.Points = p.points(opts.Points)
	if !p.Noise {
		opts.NoiseLevel = 0
	}
	sp := spectra.FTIR(spectra.IbuprofenFTIR(), opts, p.rng())

	detected := spectra.DetectPeaks(sp.Y, 0.25)
	summary := []string{fmt.Sprintf("Detected %d bands above 0.25 absorbance", len(detected))}
	for _, i := range detected {
		summary = append(summary, fmt.Sprintf("  band at %.0f cm^-1 (A=%.2f)", sp.X[i], sp.Y[i]))
	}

	return &Result{
		Chart: render.Chart{
			Title:    "Simulated FTIR Spectrum of Ibuprofen",
			XLabel:   "Wavenumber (cm^-1)",
			YLabel:   "Absorbance",
			ReverseX: true,
			YRange:   &render.Range{Min: 0, Max: opts.MaxAbs},
			Series:   []render.Line{{Name: "Ibuprofen", X: sp.X, Y: sp.Y}},
		},
		Data:    series.New("absorbance", sp.X, sp.Y),
		Tables:  []table.Table{*spectra.PeakTable(sp.Peaks)},
		Summary: summary,
	}, nil
}

func xrdScenario() Scenario {
	return funcScenario{
		name: "xrd",
		desc: "Simulated powder XRD stick pattern of paracetamol",
		run:  runXRD,
	}
}

func runXRD(_ context.Context, _ Params) (*Result, error) {
	peaks := spectra.ParacetamolXRD()
	x, y := spectra.Sticks(peaks)

	tbl := table.New("2θ (degrees)", "Relative Intensity (a.u.)")
	for i := range x {
		tbl.Append(table.FormatFloat(x[i]), table.FormatFloat(y[i]))
	}

	return &Result{
		Chart: render.Chart{
			Title:  "Simulated XRD Pattern of Paracetamol",
			XLabel: "2θ (degrees)",
			YLabel: "Relative Intensity (a.u.)",
			XRange: &render.Range{Min: 5, Max: 25},
			YRange: &render.Range{Min: 0, Max: 4},
			Series: []render.Line{{Name: "Paracetamol", X: x, Y: y, Style: render.StyleStem}},
		},
		Data:    series.New("intensity", x, y),
		Tables:  []table.Table{*tbl},
		Summary: []string{fmt.Sprintf("%d reflections between 2θ = %.0f° and %.0f°", len(x), x[0], x[len(x)-1])},
	}, nil
}
