package pk

import (
	"math"
	"math/rand/v2"

	"github.com/deepceutix/datagen/internal/numeric"
)

// Model is a one-compartment oral dosing model.
type Model struct {
	Dose float64 // mg
	Vd   float64 // L
	Ka   float64 // absorption rate constant, 1/h
	Ke   float64 // elimination rate constant, 1/h
}

// DefaultModel is the rapid-absorption, six-hour half-life reference case.
func DefaultModel() Model {
	return Model{Dose: 100, Vd: 2, Ka: 1.0, Ke: math.Ln2 / 6}
}

// Validate reports whether the parameters are physically meaningful.
func (m Model) Validate() error {
	if m.Dose < 0 || m.Vd <= 0 || m.Ka <= 0 || m.Ke <= 0 {
		return ErrInvalidModel
	}
	if anyNaN(m.Dose, m.Vd, m.Ka, m.Ke) {
		return ErrInvalidModel
	}
	return nil
}

// Concentration evaluates C(t) in mg/L. Negative times yield 0.
// When ka == ke the closed form has a removable singularity and the limit
// (Dose·k/Vd)·t·e^(−k·t) is used instead.
func (m Model) Concentration(t float64) float64 {
	if t < 0 {
		return 0
	}
	scale := m.Dose * m.Ka / m.Vd
	if m.Ka == m.Ke {
		return scale * t * math.Exp(-m.Ke*t)
	}
	return scale * (math.Exp(-m.Ke*t) - math.Exp(-m.Ka*t)) / (m.Ka - m.Ke)
}

// Sample evaluates the model at each time point.
func (m Model) Sample(times []float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = m.Concentration(t)
	}
	return out
}

// EliminationHalfLife returns ln2 / ke, the model's true half-life in hours.
func (m Model) EliminationHalfLife() float64 {
	return math.Ln2 / m.Ke
}

// TimeGrid returns n evenly spaced sampling times over [0, hours].
func TimeGrid(hours float64, n int) []float64 {
	return numeric.Linspace(0, hours, n)
}

// AddNoise perturbs conc with N(0, sd) noise and clamps at zero, simulating
// assay error. The input slice is not modified.
func AddNoise(conc []float64, sd float64, rng *rand.Rand) []float64 {
	out := make([]float64, len(conc))
	for i, c := range conc {
		out[i] = math.Max(0, c+rng.NormFloat64()*sd)
	}
	return out
}

func anyNaN(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}
