// Package dissolution analyses cumulative drug-release profiles from
// dissolution testing.
package dissolution

import (
	"errors"

	"github.com/deepceutix/datagen/internal/numeric"
)

var (
	// ErrInvalidProfile indicates mismatched, unsorted or out-of-range data.
	ErrInvalidProfile = errors.New("dissolution: times must strictly increase and release must be within 0..100%")
	// ErrNotReached indicates the profile never reaches the requested release.
	ErrNotReached = errors.New("dissolution: release level not reached")
)

// Profile is cumulative percent released at each sampling time (hours).
type Profile struct {
	Name    string
	Times   []float64
	Release []float64
}

// Validate checks pairing, ordering and the 0–100 % range.
func (p Profile) Validate() error {
	if len(p.Times) < 2 || len(p.Times) != len(p.Release) {
		return ErrInvalidProfile
	}
	for i := range p.Times {
		if i > 0 && p.Times[i] <= p.Times[i-1] {
			return ErrInvalidProfile
		}
		if p.Release[i] < 0 || p.Release[i] > 100 {
			return ErrInvalidProfile
		}
	}
	return nil
}

// ReleaseRate returns %/h between consecutive samples, aligned with Times[1:].
func (p Profile) ReleaseRate() ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return numeric.Rate(p.Release, p.Times)
}

// TimeToRelease interpolates the time at which release first reaches pct,
// e.g. 50 for T50.
func (p Profile) TimeToRelease(pct float64) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if p.Release[0] >= pct {
		return p.Times[0], nil
	}
	for i := 1; i < len(p.Times); i++ {
		r0, r1 := p.Release[i-1], p.Release[i]
		if r1 >= pct && r1 > r0 {
			t0, t1 := p.Times[i-1], p.Times[i]
			return t0 + (pct-r0)*(t1-t0)/(r1-r0), nil
		}
	}
	return 0, ErrNotReached
}

// Efficiency is the dissolution efficiency in percent: the area under the
// release curve relative to the rectangle of 100 % release over the run.
func (p Profile) Efficiency() (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	auc, err := numeric.Trapezoid(p.Release, p.Times)
	if err != nil {
		return 0, err
	}
	span := p.Times[len(p.Times)-1] - p.Times[0]
	return auc / (100 * span) * 100, nil
}

// SustainedRelease is the 12-hour tablet profile.
func SustainedRelease() Profile {
	return Profile{
		Name:    "Sustained-Release Tablet",
		Times:   []float64{0, 1, 2, 4, 6, 8, 10, 12},
		Release: []float64{0, 15, 28, 45, 62, 75, 85, 92},
	}
}

// SustainedReleaseFine is the same formulation sampled hourly early on.
func SustainedReleaseFine() Profile {
	return Profile{
		Name:    "Sustained-Release Tablet Formulation",
		Times:   []float64{0, 1, 2, 3, 4, 6, 8, 10, 12},
		Release: []float64{0, 12, 22, 34, 47, 61, 73, 84, 92},
	}
}
