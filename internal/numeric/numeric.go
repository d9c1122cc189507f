package numeric

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// Linspace returns n evenly spaced values over [start, stop], both included.
// n == 1 yields []float64{start}; n <= 0 yields an empty slice.
func Linspace(start, stop float64, n int) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, stop)
}

// Trapezoid integrates y over x with the trapezoidal rule:
//
//	Σ (x[i+1] − x[i]) · (y[i] + y[i+1]) / 2
func Trapezoid(y, x []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, ErrLengthMismatch
	}
	if len(x) < 2 {
		return 0, ErrTooShort
	}
	if !slices.IsSorted(x) {
		return 0, ErrUnsorted
	}
	return integrate.Trapezoidal(x, y), nil
}

// Diff returns the first differences v[i+1] − v[i].
func Diff(v []float64) []float64 {
	if len(v) < 2 {
		return []float64{}
	}
	out := make([]float64, len(v)-1)
	for i := range out {
		out[i] = v[i+1] - v[i]
	}
	return out
}

// Rate returns Diff(y) / Diff(x), the slope between consecutive samples.
// The result has len(x)−1 entries aligned with x[1:].
func Rate(y, x []float64) ([]float64, error) {
	if len(x) != len(y) {
		return nil, ErrLengthMismatch
	}
	if len(x) < 2 {
		return nil, ErrTooShort
	}
	dy, dx := Diff(y), Diff(x)
	out := make([]float64, len(dx))
	for i := range dx {
		if dx[i] == 0 {
			return nil, ErrZeroStep
		}
		out[i] = dy[i] / dx[i]
	}
	return out, nil
}

// Percentile returns the p-th percentile of v using linear interpolation
// between the two closest ranks, rank = (n − 1) · p / 100. v is not modified.
func Percentile(v []float64, p float64) (float64, error) {
	if len(v) == 0 {
		return 0, ErrEmpty
	}
	if p < 0 || p > 100 || math.IsNaN(p) {
		return 0, ErrPercentileRange
	}
	sorted := slices.Clone(v)
	slices.Sort(sorted)

	rank := float64(len(sorted)-1) * p / 100
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo], nil
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac, nil
}

// ArgMax returns the index of the largest value. Ties resolve to the earliest
// index. It returns -1 for an empty slice.
func ArgMax(v []float64) int {
	if len(v) == 0 {
		return -1
	}
	return floats.MaxIdx(v)
}

// Clip bounds every value of v to [lo, hi] in a new slice.
func Clip(v []float64, lo, hi float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = math.Min(math.Max(x, lo), hi)
	}
	return out
}

// ClampNonNegative replaces negative values with zero in a new slice.
func ClampNonNegative(v []float64) []float64 {
	return Clip(v, 0, math.Inf(1))
}

// Stats summarizes a sample.
type Stats struct {
	N      int
	Mean   float64
	Median float64
	StdDev float64 // population standard deviation
	Min    float64
	Max    float64
}

// Summary computes descriptive statistics for v.
func Summary(v []float64) (Stats, error) {
	if len(v) == 0 {
		return Stats{}, ErrEmpty
	}
	median, err := Percentile(v, 50)
	if err != nil {
		return Stats{}, err
	}
	mean, std := stat.PopMeanStdDev(v, nil)
	return Stats{
		N:      len(v),
		Mean:   mean,
		Median: median,
		StdDev: std,
		Min:    floats.Min(v),
		Max:    floats.Max(v),
	}, nil
}
