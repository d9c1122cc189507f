package scenario

import (
	"context"
	"errors"
	"fmt"

	"github.com/deepceutix/datagen/internal/dissolution"
	"github.com/deepceutix/datagen/internal/render"
	"github.com/deepceutix/datagen/internal/series"
	"github.com/deepceutix/datagen/internal/table"
)

func dissolutionScenario() Scenario {
	return funcScenario{
		name: "dissolution",
		desc: "Cumulative release and release rate of a sustained-release tablet",
		run:  runDissolution,
	}
}

func runDissolution(_ context.Context, _ Params) (*Result, error) {
	prof := dissolution.SustainedRelease()
	if err := prof.Validate(); err != nil {
		return nil, err
	}
	rate, err := prof.ReleaseRate()
	if err != nil {
		return nil, fmt.Errorf("failed to compute release rate: %w", err)
	}
	eff, err := prof.Efficiency()
	if err != nil {
		return nil, fmt.Errorf("failed to compute dissolution efficiency: %w", err)
	}

	tbl := table.New("Time (h)", "Cumulative Release (%)", "Release Rate (%/h)")
	for i, t := range prof.Times {
		r := "-"
		if i > 0 {
			r = table.FormatFloat(rate[i-1])
		}
		tbl.Append(table.FormatFloat(t), table.FormatFloat(prof.Release[i]), r)
	}

	fine := dissolution.SustainedReleaseFine()
	fineEff, err := fine.Efficiency()
	if err != nil {
		return nil, fmt.Errorf("failed to compute dissolution efficiency: %w", err)
	}

	summary := []string{
		fmt.Sprintf("Dissolution efficiency: %.2f %%", eff),
		fmt.Sprintf("Dissolution efficiency (hourly sampling): %.2f %%", fineEff),
	}
	for _, pct := range []float64{50, 80} {
		t, err := prof.TimeToRelease(pct)
		switch {
		case errors.Is(err, dissolution.ErrNotReached):
			summary = append(summary, fmt.Sprintf("T%.0f: not reached", pct))
		case err != nil:
			return nil, err
		default:
			summary = append(summary, fmt.Sprintf("T%.0f: %.2f h", pct, t))
		}
	}

	return &Result{
		Chart: render.Chart{
			Title:  "Dissolution Profile of Sustained-Release Tablet",
			XLabel: "Time (hours)",
			YLabel: "Cumulative Drug Release (%) / Release Rate (%/hour)",
			Series: []render.Line{
				{Name: "Cumulative Release", X: prof.Times, Y: prof.Release},
				{Name: "Release Rate (%/hour)", X: prof.Times[1:], Y: rate, Style: render.StyleMarkers},
				{Name: "Hourly Sampling", X: fine.Times, Y: fine.Release, Style: render.StyleMarkers},
			},
		},
		Data:    series.New("cumulative_release", prof.Times, prof.Release),
		Tables:  []table.Table{*tbl},
		Summary: summary,
	}, nil
}
