// Package particle simulates particle-size distributions and reports the
// D10/D50/D90 percentiles used to specify pharmaceutical powders.
package particle

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/deepceutix/datagen/internal/numeric"
)

// ErrBadBins indicates a histogram with no bins or an empty range.
var ErrBadBins = errors.New("particle: histogram needs at least one bin and a non-empty range")

// LogNormal describes sizes whose logarithm is normally distributed.
// Median is the scale (e^μ) in µm, Sigma the shape.
type LogNormal struct {
	Sigma  float64
	Median float64
}

// Draw returns one size.
func (d LogNormal) Draw(rng *rand.Rand) float64 {
	return d.Median * math.Exp(d.Sigma*rng.NormFloat64())
}

// Sample is a filtered draw from a distribution.
type Sample struct {
	Sizes     []float64
	Requested int
}

// Kept returns how many sizes survived the range filter.
func (s Sample) Kept() int { return len(s.Sizes) }

// Sparse reports whether fewer than half of the requested particles survived
// filtering, a sign the distribution parameters do not suit the range.
func (s Sample) Sparse() bool { return float64(len(s.Sizes)) < float64(s.Requested)*0.5 }

// Draw generates n sizes from d and keeps those within [lo, hi].
func Draw(d LogNormal, n int, lo, hi float64, rng *rand.Rand) Sample {
	sizes := make([]float64, 0, n)
	for range n {
		v := d.Draw(rng)
		if v >= lo && v <= hi {
			sizes = append(sizes, v)
		}
	}
	return Sample{Sizes: sizes, Requested: n}
}

// Distribution holds the standard size percentiles in µm.
type Distribution struct {
	D10 float64
	D50 float64
	D90 float64
}

// Span is (D90 − D10) / D50, the usual width measure of a distribution.
func (d Distribution) Span() float64 {
	if d.D50 == 0 {
		return 0
	}
	return (d.D90 - d.D10) / d.D50
}

// Percentiles computes D10, D50 and D90. D10 ≤ D50 ≤ D90 holds for any
// non-empty input because percentiles are monotone in p.
func Percentiles(sizes []float64) (Distribution, error) {
	var d Distribution
	var err error
	if d.D10, err = numeric.Percentile(sizes, 10); err != nil {
		return Distribution{}, err
	}
	if d.D50, err = numeric.Percentile(sizes, 50); err != nil {
		return Distribution{}, err
	}
	if d.D90, err = numeric.Percentile(sizes, 90); err != nil {
		return Distribution{}, err
	}
	return d, nil
}

// Histogram buckets sizes into equal-width bins over [min, max].
type Histogram struct {
	Edges  []float64 // len(Counts)+1
	Counts []float64 // raw counts, or densities when normalized
}

// Centers returns the midpoint of every bin.
func (h Histogram) Centers() []float64 {
	out := make([]float64, len(h.Counts))
	for i := range out {
		out[i] = (h.Edges[i] + h.Edges[i+1]) / 2
	}
	return out
}

// NewHistogram bins sizes. With density set, counts are scaled so the
// histogram integrates to one.
func NewHistogram(sizes []float64, bins int, density bool) (Histogram, error) {
	if bins < 1 || len(sizes) == 0 {
		return Histogram{}, ErrBadBins
	}
	lo, hi := slices.Min(sizes), slices.Max(sizes)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	edges := numeric.Linspace(lo, hi, bins+1)
	counts := make([]float64, bins)
	width := (hi - lo) / float64(bins)
	for _, v := range sizes {
		i := int((v - lo) / width)
		if i >= bins {
			i = bins - 1 // right edge is inclusive
		}
		counts[i]++
	}
	if density {
		total := float64(len(sizes)) * width
		for i := range counts {
			counts[i] /= total
		}
	}
	return Histogram{Edges: edges, Counts: counts}, nil
}

// CDF returns sorted sizes and the cumulative fraction i/n at each.
func CDF(sizes []float64) (x, p []float64) {
	x = slices.Clone(sizes)
	slices.Sort(x)
	p = make([]float64, len(x))
	for i := range x {
		p[i] = float64(i+1) / float64(len(x))
	}
	return x, p
}
