// Package pk models plasma concentration after a single oral dose with the
// one-compartment, first-order absorption / first-order elimination model:
//
//	C(t) = (Dose·ka / Vd) · (e^(−ke·t) − e^(−ka·t)) / (ka − ke)
//
// and reduces a sampled curve to the usual exposure metrics:
//
//   - Cmax / Tmax: the largest sampled concentration and its time. These are
//     sample maxima, not the continuous-time peak.
//   - AUC: trapezoidal area under the sampled curve.
//   - t½: a two-point estimate from the first two samples after Tmax,
//     (t2 − t1)·ln2 / ln(c1/c2).
//
// Usage:
//
//	m := pk.Model{Dose: 100, Vd: 2, Ka: 1.0, Ke: math.Ln2 / 6}
//	times := pk.TimeGrid(24, 25)
//	conc := m.Sample(times)
//	s, err := pk.Analyze(times, conc)
package pk
