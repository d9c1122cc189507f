package pk

import "errors"

var (
	// ErrInvalidModel indicates a non-physical parameter set.
	ErrInvalidModel = errors.New("pk: dose must be >= 0 and Vd, ka, ke must be > 0")
	// ErrNoSamples indicates an empty or mismatched time/concentration pair.
	ErrNoSamples = errors.New("pk: times and concentrations must be non-empty and equal length")
	// ErrInsufficientPostPeak indicates fewer than two samples after Tmax.
	ErrInsufficientPostPeak = errors.New("pk: insufficient data after Tmax")
	// ErrUndefinedHalfLife indicates the two post-peak samples do not decline.
	ErrUndefinedHalfLife = errors.New("pk: post-peak concentrations must be positive and declining")
)
