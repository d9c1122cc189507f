// Package series defines the declared x/y output of a scenario.
//
// A producer states which two arrays are its plot data by returning an XY;
// nothing downstream guesses from variable names.
package series

import (
	"errors"
	"math"
	"slices"
)

var (
	// ErrEmpty indicates a series with no points.
	ErrEmpty = errors.New("series: x and y must contain at least one point")
	// ErrLengthMismatch indicates x and y of differing length.
	ErrLengthMismatch = errors.New("series: x and y must have equal length")
	// ErrNonFinite indicates a NaN or infinite value, which JSON cannot carry.
	ErrNonFinite = errors.New("series: values must be finite")
)

// XY is a paired numeric series. The JSON shape is {"x": [...], "y": [...]},
// with an optional label used by API payloads.
type XY struct {
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
	Label string    `json:"label,omitempty"`
}

// New copies x and y into a labelled series.
func New(label string, x, y []float64) *XY {
	return &XY{X: slices.Clone(x), Y: slices.Clone(y), Label: label}
}

// Validate checks the pairing invariant.
func (s *XY) Validate() error {
	if len(s.X) != len(s.Y) {
		return ErrLengthMismatch
	}
	if len(s.X) == 0 {
		return ErrEmpty
	}
	for i := range s.X {
		if !finite(s.X[i]) || !finite(s.Y[i]) {
			return ErrNonFinite
		}
	}
	return nil
}

// Len returns the number of points.
func (s *XY) Len() int { return len(s.X) }

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
