package ppg

import "math"

// Status classifies an estimate.
type Status int

const (
	// StatusOK means a peak was found inside the passband.
	StatusOK Status = iota
	// StatusNoPeak means the passband held no positive power (flat or
	// absent signal).
	StatusNoPeak
	// StatusEmptyBand means the passband maps to no FFT bins at the
	// configured resolution.
	StatusEmptyBand
	// StatusInvalidInput means the segment was rejected before analysis.
	StatusInvalidInput
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoPeak:
		return "no-peak"
	case StatusEmptyBand:
		return "empty-band"
	case StatusInvalidInput:
		return "invalid-input"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the outcome of one estimate.
type Result struct {
	// HeartRateHz is the dominant frequency, or 0 when Status is not OK.
	HeartRateHz float64 `json:"heart_rate_hz" yaml:"heart_rate_hz"`
	// SpO2 is reserved for an oxygen saturation estimate. It is always NaN
	// because no computation path exists for it.
	SpO2      float64 `json:"-" yaml:"-"`
	Status    Status  `json:"status" yaml:"status"`
	PeakBin   int     `json:"peak_bin" yaml:"peak_bin"`
	PeakPower float64 `json:"peak_power" yaml:"peak_power"`
}

func failed(status Status) Result {
	return Result{SpO2: math.NaN(), Status: status}
}

// Valid reports whether the result carries a usable heart rate.
func (r Result) Valid() bool {
	return r.Status == StatusOK && r.HeartRateHz > 0
}

// BPM returns the heart rate in beats per minute.
func (r Result) BPM() float64 {
	return r.HeartRateHz * 60
}
