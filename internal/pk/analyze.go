package pk

import (
	"math"

	"github.com/deepceutix/datagen/internal/numeric"
)

// Summary holds the exposure metrics of a sampled curve.
type Summary struct {
	Cmax      float64
	Tmax      float64
	TmaxIndex int
	AUC       float64

	// HalfLife is only meaningful when HalfLifeErr is nil.
	HalfLife    float64
	HalfLifeT1  float64
	HalfLifeT2  float64
	HalfLifeErr error
}

// HalfLifeOK reports whether a two-point half-life could be estimated.
func (s Summary) HalfLifeOK() bool { return s.HalfLifeErr == nil }

// Analyze reduces a sampled curve to Cmax, Tmax, AUC and a two-point
// half-life. A missing half-life is not an error: it is reported through
// Summary.HalfLifeErr and the remaining metrics are still returned.
func Analyze(times, conc []float64) (Summary, error) {
	if len(times) == 0 || len(times) != len(conc) {
		return Summary{}, ErrNoSamples
	}

	idx := numeric.ArgMax(conc)
	s := Summary{
		Cmax:      conc[idx],
		Tmax:      times[idx],
		TmaxIndex: idx,
	}

	if len(times) >= 2 {
		auc, err := numeric.Trapezoid(conc, times)
		if err != nil {
			return Summary{}, err
		}
		s.AUC = auc
	}

	s.HalfLife, s.HalfLifeT1, s.HalfLifeT2, s.HalfLifeErr = twoPointHalfLife(times, conc, s.Tmax)
	return s, nil
}

// twoPointHalfLife uses the first two samples strictly after tmax.
func twoPointHalfLife(times, conc []float64, tmax float64) (hl, t1, t2 float64, err error) {
	var ts, cs []float64
	for i, t := range times {
		if t > tmax {
			ts = append(ts, t)
			cs = append(cs, conc[i])
			if len(ts) == 2 {
				break
			}
		}
	}
	if len(ts) < 2 {
		return 0, 0, 0, ErrInsufficientPostPeak
	}
	c1, c2 := cs[0], cs[1]
	t1, t2 = ts[0], ts[1]
	if c1 <= 0 || c2 <= 0 || c1 <= c2 {
		return 0, t1, t2, ErrUndefinedHalfLife
	}
	return (t2 - t1) * math.Ln2 / math.Log(c1/c2), t1, t2, nil
}
