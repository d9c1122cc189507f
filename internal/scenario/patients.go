package scenario

import (
	"context"
	"fmt"
	"strconv"

	"github.com/deepceutix/datagen/internal/numeric"
	"github.com/deepceutix/datagen/internal/render"
	"github.com/deepceutix/datagen/internal/synth"
	"github.com/deepceutix/datagen/internal/table"
)

func patientsScenario() Scenario {
	return funcScenario{
		name: "patients",
		desc: "Synthetic patients, drug catalog and prescriptions with an age histogram",
		run:  runPatients,
	}
}

// runPatients has no natural x/y series, so Data stays nil and no sidecar is
// written.
func runPatients(_ context.Context, p Params) (*Result, error) {
	n := p.points(20)
	g := synth.New(p.Seed)
	patients := g.Patients(n)
	drugs := g.Drugs(5)
	rx := g.Prescriptions(2*n, n, len(drugs.Rows))

	ages := make([]float64, 0, len(patients.Rows))
	for _, r := range patients.Rows {
		a, err := strconv.ParseFloat(r[3], 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse age %q: %w", r[3], err)
		}
		ages = append(ages, a)
	}
	stats, err := numeric.Summary(ages)
	if err != nil {
		return nil, err
	}

	decades := make([]float64, 6)
	for _, a := range ages {
		i := min(max(int(a)/10-1, 0), len(decades)-1)
		decades[i]++
	}
	x := []float64{15, 25, 35, 45, 55, 65}

	return &Result{
		Chart: render.Chart{
			Title:  "Patient Age Distribution",
			XLabel: "Age (years)",
			YLabel: "Patients",
			XRange: &render.Range{Min: 10, Max: 70},
			Series: []render.Line{{Name: "Patients", X: x, Y: decades, Style: render.StyleStem}},
		},
		Tables: []table.Table{*patients, *drugs, *rx},
		Summary: []string{
			fmt.Sprintf("%d patients, %d drugs, %d prescriptions", len(patients.Rows), len(drugs.Rows), len(rx.Rows)),
			fmt.Sprintf("Age: mean %.1f, median %.1f, range %.0f-%.0f", stats.Mean, stats.Median, stats.Min, stats.Max),
		},
	}, nil
}
