package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ppg/dsp/core"
)

// BinHz returns the frequency resolution fs/N of an N-point transform.
func BinHz(sampleRate float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return sampleRate / float64(n)
}

// BinFrequency returns the centre frequency of bin k.
func BinFrequency(k int, sampleRate float64, n int) float64 {
	return float64(k) * BinHz(sampleRate, n)
}

// Band is a closed frequency interval in Hz.
type Band struct {
	MinHz float64
	MaxHz float64
}

// Validate reports whether the band edges are usable.
func (b Band) Validate() error {
	if math.IsNaN(b.MinHz) || math.IsNaN(b.MaxHz) || b.MinHz < 0 {
		return fmt.Errorf("band edges must be non-negative numbers: [%v, %v]", b.MinHz, b.MaxHz)
	}
	if b.MaxHz < b.MinHz {
		return fmt.Errorf("band max must be >= min: [%v, %v]", b.MinHz, b.MaxHz)
	}
	return nil
}

// Bins maps the band onto one-sided bin indices of an N-point transform
// sampled at sampleRate:
//
//	lo = ceil(MinHz / binHz), at least 1
//	hi = floor(MaxHz / binHz), at most N/2
//
// Bin 0 (DC) is never part of the range. ok is false when the clamped range
// is empty.
func (b Band) Bins(sampleRate float64, n int) (lo, hi int, ok bool) {
	binHz := BinHz(sampleRate, n)
	if binHz <= 0 || math.IsInf(binHz, 0) || math.IsNaN(b.MinHz) || math.IsNaN(b.MaxHz) {
		return 0, 0, false
	}

	// Clamp before converting: edges far above Nyquist overflow int.
	lo = int(core.Clamp(math.Ceil(b.MinHz/binHz), 1, float64(n/2+1)))
	hi = int(core.Clamp(math.Floor(b.MaxHz/binHz), 0, float64(n/2)))

	if lo > hi {
		return lo, hi, false
	}

	return lo, hi, true
}

// PeakInRange returns the bin with the strictly greatest power in
// power[lo..hi] (inclusive). Scanning upward with a strict comparison makes
// the lowest index win ties. It returns (0, 0) when no bin in range has
// positive power or the range is out of bounds.
func PeakInRange(power []float64, lo, hi int) (bin int, value float64) {
	lo = core.ClampInt(lo, 0, len(power))
	hi = core.ClampInt(hi, -1, len(power)-1)

	for k := lo; k <= hi; k++ {
		if power[k] > value {
			value = power[k]
			bin = k
		}
	}

	if value <= 0 {
		return 0, 0
	}

	return bin, value
}
