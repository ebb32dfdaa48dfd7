package window

import "errors"

// ErrMismatchedLength is returned when samples and coefficients differ in length.
var ErrMismatchedLength = errors.New("samples and coefficients must have same length")

// ErrUnknownType is returned by ParseType for unrecognized names.
var ErrUnknownType = errors.New("unknown window type")

var (
	errEmptyCoeffs      = errors.New("window coefficients must not be empty")
	errZeroCoherentGain = errors.New("window coherent gain is zero")
)
