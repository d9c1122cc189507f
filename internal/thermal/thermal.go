// Package thermal produces piecewise-constant DSC and TGA thermograms.
//
// Each curve is a baseline plus a list of transitions; past a transition's
// onset temperature the signal jumps to that transition's level.
package thermal

import (
	"slices"

	"github.com/deepceutix/datagen/internal/numeric"
)

// Transition sets the signal to Level from Onset (°C) upwards.
type Transition struct {
	Onset float64
	Level float64
	Label string
}

// Curve is a named step profile.
type Curve struct {
	Name        string
	Baseline    float64
	Transitions []Transition
}

// At evaluates the curve at temperature T: the level of the last transition
// whose onset is ≤ T, or the baseline below every onset.
func (c Curve) At(T float64) float64 {
	return levelAt(c.Baseline, c.sorted(), T)
}

// Profile evaluates the curve over grid.
func (c Curve) Profile(grid []float64) []float64 {
	ts := c.sorted()
	out := make([]float64, len(grid))
	for i, T := range grid {
		out[i] = levelAt(c.Baseline, ts, T)
	}
	return out
}

// levelAt walks transitions sorted by onset.
func levelAt(baseline float64, ts []Transition, T float64) float64 {
	v := baseline
	for _, tr := range ts {
		if T < tr.Onset {
			break
		}
		v = tr.Level
	}
	return v
}

func (c Curve) sorted() []Transition {
	ts := slices.Clone(c.Transitions)
	slices.SortStableFunc(ts, func(a, b Transition) int {
		switch {
		case a.Onset < b.Onset:
			return -1
		case a.Onset > b.Onset:
			return 1
		}
		return 0
	})
	return ts
}

// Grid returns the default 0–400 °C temperature axis with n points.
func Grid(n int) []float64 {
	return numeric.Linspace(0, 400, n)
}

// Reference temperatures in °C.
const (
	TgPLGA                      = 50
	TmParacetamol               = 169.5
	DegradationOnsetParacetamol = 210
	FullDegradationParacetamol  = 290
	DegradationOnsetPLGA        = 260
	FullDegradationPLGA         = 360
)

// PLGAHeatFlow steps up at the glass transition and back at the drug melt.
func PLGAHeatFlow() Curve {
	return Curve{Name: "PLGA", Transitions: []Transition{
		{Onset: TgPLGA, Level: 0.1, Label: "Tg"},
		{Onset: TmParacetamol, Level: 0},
	}}
}

// ParacetamolHeatFlow steps at the melting point.
func ParacetamolHeatFlow() Curve {
	return Curve{Name: "Paracetamol", Transitions: []Transition{
		{Onset: TmParacetamol, Level: 1, Label: "Tm"},
	}}
}

// ParacetamolWeightLoss is the TGA mass-loss fraction of the drug.
func ParacetamolWeightLoss() Curve {
	return Curve{Name: "Paracetamol", Transitions: []Transition{
		{Onset: DegradationOnsetParacetamol, Level: 0.5, Label: "onset"},
		{Onset: FullDegradationParacetamol, Level: 1, Label: "complete"},
	}}
}

// PLGAWeightLoss is the TGA mass-loss fraction of the polymer.
func PLGAWeightLoss() Curve {
	return Curve{Name: "PLGA", Transitions: []Transition{
		{Onset: DegradationOnsetPLGA, Level: 0.2, Label: "onset"},
		{Onset: FullDegradationPLGA, Level: 1, Label: "complete"},
	}}
}
