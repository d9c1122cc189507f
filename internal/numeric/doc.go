// Package numeric holds the handful of array helpers every scenario leans on:
// evenly spaced grids, trapezoidal quadrature, first differences, percentiles
// and simple summary statistics.
//
// Semantics follow the conventions chemists expect from their notebooks:
//
//	Linspace(0, 24, 25)  → 0, 1, 2, … 24 (both endpoints included)
//	Percentile(v, 50)    → linear interpolation between closest ranks
//	Summary(v).StdDev    → population standard deviation (divide by n)
//
// Heavy lifting is delegated to gonum (floats, integrate, stat); this package
// adds input validation and returns sentinel errors instead of panicking.
package numeric
