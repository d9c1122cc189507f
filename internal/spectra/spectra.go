// Package spectra builds simulated analytical spectra from hand-authored
// peak lists: FTIR absorbance as a sum of Gaussians and XRD as a stick
// pattern. None of this is measured signal.
package spectra

import (
	"math"
	"math/rand/v2"

	"github.com/deepceutix/datagen/internal/numeric"
	"github.com/deepceutix/datagen/internal/table"
)

// Peak is a Gaussian band. Width is the standard deviation in x units.
type Peak struct {
	Center     float64
	Width      float64
	Height     float64
	Assignment string
}

// Gaussian evaluates a single peak at x.
func Gaussian(x float64, p Peak) float64 {
	if p.Width == 0 {
		if x == p.Center {
			return p.Height
		}
		return 0
	}
	d := x - p.Center
	return p.Height * math.Exp(-(d*d)/(2*p.Width*p.Width))
}

// Synthesize sums all peaks over grid.
func Synthesize(grid []float64, peaks []Peak) []float64 {
	out := make([]float64, len(grid))
	for i, x := range grid {
		for _, p := range peaks {
			out[i] += Gaussian(x, p)
		}
	}
	return out
}

// AddBaselineNoise adds N(0, level) noise to y in a new slice.
func AddBaselineNoise(y []float64, level float64, rng *rand.Rand) []float64 {
	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = v + rng.NormFloat64()*level
	}
	return out
}

// Spectrum is an x/y trace with the peaks that generated it.
type Spectrum struct {
	X     []float64
	Y     []float64
	Peaks []Peak
}

// FTIROptions controls spectrum synthesis.
type FTIROptions struct {
	From, To   float64 // wavenumber range, cm^-1, usually descending
	Points     int
	NoiseLevel float64 // 0 disables noise
	MaxAbs     float64 // clip ceiling
}

// DefaultFTIROptions covers the mid-IR region at 1000 points.
func DefaultFTIROptions() FTIROptions {
	return FTIROptions{From: 4000, To: 400, Points: 1000, NoiseLevel: 0.02, MaxAbs: 1.2}
}

// FTIR synthesizes an absorbance spectrum from peaks. Absorbance is clipped to
// [0, MaxAbs] after noise is applied. rng may be nil when NoiseLevel is 0.
func FTIR(peaks []Peak, opts FTIROptions, rng *rand.Rand) Spectrum {
	x := numeric.Linspace(opts.From, opts.To, opts.Points)
	y := Synthesize(x, peaks)
	if opts.NoiseLevel > 0 && rng != nil {
		y = AddBaselineNoise(y, opts.NoiseLevel, rng)
	}
	ceiling := opts.MaxAbs
	if ceiling <= 0 {
		ceiling = math.Inf(1)
	}
	return Spectrum{X: x, Y: numeric.Clip(y, 0, ceiling), Peaks: peaks}
}

// IbuprofenFTIR lists the characteristic ibuprofen bands.
func IbuprofenFTIR() []Peak {
	return []Peak{
		{Center: 3300, Width: 50, Height: 0.8, Assignment: "O-H stretch"},
		{Center: 1720, Width: 15, Height: 1.0, Assignment: "C=O stretch"},
		{Center: 3000, Width: 20, Height: 0.3, Assignment: "C-H aromatic stretch"},
		{Center: 1600, Width: 15, Height: 0.5, Assignment: "C=C aromatic stretch"},
	}
}

// ParacetamolXRD lists relative intensities at 2θ positions in degrees.
func ParacetamolXRD() []Peak {
	theta := []float64{7, 8, 11, 12, 14, 15, 20}
	intens := []float64{1.2, 2.4, 1.8, 2.1, 2.9, 1.7, 3.5}
	out := make([]Peak, len(theta))
	for i := range theta {
		out[i] = Peak{Center: theta[i], Height: intens[i]}
	}
	return out
}

// Sticks returns the x positions and heights of peaks, for stem plots.
func Sticks(peaks []Peak) (x, y []float64) {
	x = make([]float64, len(peaks))
	y = make([]float64, len(peaks))
	for i, p := range peaks {
		x[i], y[i] = p.Center, p.Height
	}
	return x, y
}

// DetectPeaks returns the indices of strict local maxima whose value is at
// least minHeight. Endpoints are never reported.
func DetectPeaks(y []float64, minHeight float64) []int {
	var idx []int
	for i := 1; i+1 < len(y); i++ {
		if y[i] >= minHeight && y[i] > y[i-1] && y[i] >= y[i+1] {
			idx = append(idx, i)
		}
	}
	return idx
}

// PeakTable renders the band assignments as a table.
func PeakTable(peaks []Peak) *table.Table {
	t := table.New("Wavenumber (cm^-1)", "Assignment")
	for _, p := range peaks {
		t.Append("~"+table.FormatFloat(p.Center), p.Assignment)
	}
	return t
}
