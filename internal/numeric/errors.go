package numeric

import "errors"

var (
	// ErrEmpty indicates an operation received no samples.
	ErrEmpty = errors.New("numeric: input must contain at least one value")
	// ErrTooShort indicates fewer than two samples where an interval is needed.
	ErrTooShort = errors.New("numeric: input must contain at least two values")
	// ErrLengthMismatch indicates paired slices of differing length.
	ErrLengthMismatch = errors.New("numeric: paired inputs must have equal length")
	// ErrUnsorted indicates the abscissa is not in ascending order.
	ErrUnsorted = errors.New("numeric: x values must be ascending")
	// ErrZeroStep indicates two consecutive x values are equal where a rate is required.
	ErrZeroStep = errors.New("numeric: consecutive x values must differ")
	// ErrPercentileRange indicates a percentile outside [0, 100].
	ErrPercentileRange = errors.New("numeric: percentile must be within [0, 100]")
)
