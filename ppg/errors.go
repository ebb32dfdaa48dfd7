package ppg

import "errors"

var (
	// ErrSegmentLength is returned when a segment does not hold exactly the
	// configured number of samples.
	ErrSegmentLength = errors.New("ppg: segment length mismatch")
	// ErrWorkspace is returned when a workspace is missing or was built for
	// a different segment size.
	ErrWorkspace = errors.New("ppg: workspace does not match estimator")
	// ErrConfig is returned for an unusable estimator configuration.
	ErrConfig = errors.New("ppg: invalid estimator config")
)
