package scenario

import (
	"context"
	"fmt"

	"github.com/deepceutix/datagen/internal/numeric"
	"github.com/deepceutix/datagen/internal/particle"
	"github.com/deepceutix/datagen/internal/render"
	"github.com/deepceutix/datagen/internal/series"
	"github.com/deepceutix/datagen/internal/table"
)

const (
	particleMinSize = 1.0   // µm
	particleMaxSize = 100.0 // µm
	particleBins    = 30
	respirableSize  = 5.0 // µm
)

func particleScenario() Scenario {
	return funcScenario{
		name: "particle-size",
		desc: "Log-normal particle-size distribution with D10/D50/D90 and span",
		run:  runParticle,
	}
}

func runParticle(_ context.Context, p Params) (*Result, error) {
	dist := particle.LogNormal{Sigma: 0.8, Median: 10}
	sample := particle.Draw(dist, p.points(1000), particleMinSize, particleMaxSize, p.rng())

	var summary []string
	if sample.Sparse() {
		summary = append(summary, fmt.Sprintf("Warning: only %d of %d particles within %.0f-%.0f µm",
			sample.Kept(), sample.Requested, particleMinSize, particleMaxSize))
	}

	d, err := particle.Percentiles(sample.Sizes)
	if err != nil {
		return nil, fmt.Errorf("failed to compute percentiles: %w", err)
	}
	hist, err := particle.NewHistogram(sample.Sizes, particleBins, true)
	if err != nil {
		return nil, fmt.Errorf("failed to bin sizes: %w", err)
	}
	stats, err := numeric.Summary(sample.Sizes)
	if err != nil {
		return nil, err
	}

	summary = append(summary,
		fmt.Sprintf("D10: %.2f µm", d.D10),
		fmt.Sprintf("D50 (Median): %.2f µm", d.D50),
		fmt.Sprintf("D90: %.2f µm", d.D90),
		fmt.Sprintf("Span: %.2f", d.Span()),
	)

	tbl := table.New("Statistic", "Value (µm)")
	tbl.Append("Count", fmt.Sprint(stats.N))
	tbl.Append("Mean", table.FormatFloat(stats.Mean))
	tbl.Append("Std Dev", table.FormatFloat(stats.StdDev))
	tbl.Append("D10", table.FormatFloat(d.D10))
	tbl.Append("D50", table.FormatFloat(d.D50))
	tbl.Append("D90", table.FormatFloat(d.D90))

	summary = append(summary, fmt.Sprintf("Respirable fraction (<= %.0f µm): %.1f %%", respirableSize, 100*fractionBelow(sample.Sizes, respirableSize)))

	centers := hist.Centers()
	return &Result{
		Chart: render.Chart{
			Title:  "Particle Size Distribution Histogram",
			XLabel: "Particle Size (µm)",
			YLabel: "Frequency",
			Series: []render.Line{{Name: "Density", X: centers, Y: hist.Counts, Style: render.StyleStem}},
		},
		Data:    series.New("density", centers, hist.Counts),
		Tables:  []table.Table{*tbl},
		Summary: summary,
	}, nil
}

// fractionBelow reads the empirical CDF at size.
func fractionBelow(sizes []float64, size float64) float64 {
	x, p := particle.CDF(sizes)
	frac := 0.0
	for i := range x {
		if x[i] > size {
			break
		}
		frac = p[i]
	}
	return frac
}
