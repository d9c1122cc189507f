package scenario

import (
	"context"
	"fmt"

	"github.com/deepceutix/datagen/internal/numeric"
	"github.com/deepceutix/datagen/internal/pk"
	"github.com/deepceutix/datagen/internal/render"
	"github.com/deepceutix/datagen/internal/series"
	"github.com/deepceutix/datagen/internal/table"
)

// pkNoiseSD is the assay noise in mg/L.
const pkNoiseSD = 0.5

func pkScenario() Scenario {
	return funcScenario{
		name: "pk",
		desc: "One-compartment oral PK curve over 24 h with Cmax, Tmax, AUC and a two-point half-life",
		run:  runPK,
	}
}

func runPK(_ context.Context, p Params) (*Result, error) {
	m := pk.DefaultModel()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	times := pk.TimeGrid(24, p.points(25))
	conc := m.Sample(times)
	if p.Noise {
		conc = pk.AddNoise(conc, pkNoiseSD, p.rng())
	}
	conc = numeric.ClampNonNegative(conc)

	s, err := pk.Analyze(times, conc)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze curve: %w", err)
	}

	halfLife := "Insufficient data after Tmax"
	if s.HalfLifeOK() {
		halfLife = fmt.Sprintf("Using points %.2fh, %.2fh : %.2f", s.HalfLifeT1, s.HalfLifeT2, s.HalfLife)
	} else if s.HalfLifeT2 > 0 {
		halfLife = "Undefined for the samples after Tmax"
	}

	tbl := table.New("Time (h)", "Concentration (mg/L)", "Half-life Calculation (h)")
	for i := range times {
		note := "N/A"
		if i == 0 {
			note = halfLife
		}
		tbl.Append(table.FormatFloat(times[i]), table.FormatFloat(conc[i]), note)
	}

	summary := []string{
		fmt.Sprintf("Cmax: %.2f mg/L", s.Cmax),
		fmt.Sprintf("Tmax: %.2f hours", s.Tmax),
		fmt.Sprintf("AUC: %.2f mg*h/L", s.AUC),
	}
	if s.HalfLifeOK() {
		summary = append(summary, fmt.Sprintf("Half-life: %.2f hours (true %.2f)", s.HalfLife, m.EliminationHalfLife()))
	} else {
		summary = append(summary, "Half-life: "+s.HalfLifeErr.Error())
	}

	return &Result{
		Chart: render.Chart{
			Title:  "Plasma Concentration vs. Time (Semi-Log Scale)",
			XLabel: "Time (hours)",
			YLabel: "Concentration (mg/L) - Log Scale",
			LogY:   true,
			Series: []render.Line{{Name: "Concentration", X: times, Y: conc}},
		},
		Data:    series.New("concentration", times, conc),
		Tables:  []table.Table{*tbl},
		Summary: summary,
	}, nil
}
