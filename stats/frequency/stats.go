// Package frequency computes shape statistics of a one-sided power spectrum
// restricted to a band of bins.
package frequency

import "math"

// DefaultGuardBins is the half-width, in bins, of the region around the
// peak counted as signal by [PeakSNR]. It covers the Hann main lobe.
const DefaultGuardBins = 2

// Stats describes the power spectrum between LoBin and HiBin inclusive.
type Stats struct {
	LoBin int `json:"lo_bin" yaml:"lo_bin"`
	HiBin int `json:"hi_bin" yaml:"hi_bin"`
	// Total is the summed power in the band.
	Total   float64 `json:"total" yaml:"total"`
	PeakBin int     `json:"peak_bin" yaml:"peak_bin"`
	Peak    float64 `json:"peak" yaml:"peak"`
	// PeakRatio is Peak/Total, 1 for a single-bin tone.
	PeakRatio float64 `json:"peak_ratio" yaml:"peak_ratio"`
	Centroid  float64 `json:"centroid_hz" yaml:"centroid_hz"`
	Spread    float64 `json:"spread_hz" yaml:"spread_hz"`
	// Flatness is the Wiener entropy of the band, 0 (tonal) .. 1 (white).
	Flatness  float64 `json:"flatness" yaml:"flatness"`
	Bandwidth float64 `json:"bandwidth_hz" yaml:"bandwidth_hz"`
	SNRdB     float64 `json:"snr_db" yaml:"snr_db"`
}

// clampBand limits [lo, hi] to the spectrum and reports whether any bin is
// left.
func clampBand(power []float64, lo, hi int) (int, int, bool) {
	lo = max(lo, 0)
	hi = min(hi, len(power)-1)
	return lo, hi, lo <= hi
}

// Calculate computes all statistics for power[lo..hi]. binHz converts bin
// indices to Hz. An empty band yields the zero Stats.
func Calculate(power []float64, lo, hi int, binHz float64) Stats {
	lo, hi, ok := clampBand(power, lo, hi)
	if !ok {
		return Stats{}
	}

	s := Stats{LoBin: lo, HiBin: hi, PeakBin: lo, Peak: power[lo]}
	for k := lo; k <= hi; k++ {
		v := power[k]
		s.Total += v
		if v > s.Peak {
			s.Peak = v
			s.PeakBin = k
		}
	}
	if s.Total <= 0 {
		return Stats{LoBin: lo, HiBin: hi}
	}

	s.PeakRatio = s.Peak / s.Total
	s.Centroid = centroid(power, lo, hi, binHz, s.Total)
	s.Spread = spread(power, lo, hi, binHz, s.Centroid, s.Total)
	s.Flatness = Flatness(power, lo, hi)
	s.Bandwidth = bandwidth(power, lo, hi, s.PeakBin, binHz)
	s.SNRdB = PeakSNR(power, lo, hi, s.PeakBin, DefaultGuardBins)

	return s
}

// Centroid returns the power-weighted mean frequency of the band in Hz.
func Centroid(power []float64, lo, hi int, binHz float64) float64 {
	lo, hi, ok := clampBand(power, lo, hi)
	if !ok {
		return 0
	}
	total := 0.0
	for k := lo; k <= hi; k++ {
		total += power[k]
	}
	return centroid(power, lo, hi, binHz, total)
}

func centroid(power []float64, lo, hi int, binHz, total float64) float64 {
	if total == 0 {
		return 0
	}
	weighted := 0.0
	for k := lo; k <= hi; k++ {
		weighted += float64(k) * binHz * power[k]
	}
	return weighted / total
}

func spread(power []float64, lo, hi int, binHz, cent, total float64) float64 {
	if total == 0 {
		return 0
	}
	acc := 0.0
	for k := lo; k <= hi; k++ {
		d := float64(k)*binHz - cent
		acc += d * d * power[k]
	}
	return math.Sqrt(acc / total)
}

// Flatness returns exp(mean(log p)) / mean(p) over the band. A band holding
// any zero bin has flatness 0.
func Flatness(power []float64, lo, hi int) float64 {
	lo, hi, ok := clampBand(power, lo, hi)
	if !ok {
		return 0
	}

	n := float64(hi - lo + 1)
	sumLin, sumLog := 0.0, 0.0
	for k := lo; k <= hi; k++ {
		v := power[k]
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	return math.Exp(sumLog/n) / (sumLin / n)
}

// PeakSNR compares the power within guard bins of peak to the rest of the
// band, in dB. It is +Inf when all band power sits next to the peak and
// -Inf when the band is silent.
func PeakSNR(power []float64, lo, hi, peak, guard int) float64 {
	lo, hi, ok := clampBand(power, lo, hi)
	if !ok || peak < lo || peak > hi {
		return math.Inf(-1)
	}
	guard = max(guard, 0)

	var signal, rest float64
	for k := lo; k <= hi; k++ {
		if k >= peak-guard && k <= peak+guard {
			signal += power[k]
		} else {
			rest += power[k]
		}
	}

	switch {
	case signal <= 0:
		return math.Inf(-1)
	case rest <= 0:
		return math.Inf(1)
	default:
		return 10 * math.Log10(signal/rest)
	}
}

// Bandwidth returns the half-power width of the band's strongest peak in Hz,
// interpolating linearly between bins.
func Bandwidth(power []float64, lo, hi int, binHz float64) float64 {
	lo, hi, ok := clampBand(power, lo, hi)
	if !ok {
		return 0
	}
	peak := lo
	for k := lo; k <= hi; k++ {
		if power[k] > power[peak] {
			peak = k
		}
	}
	return bandwidth(power, lo, hi, peak, binHz)
}

func bandwidth(power []float64, lo, hi, peak int, binHz float64) float64 {
	if power[peak] <= 0 {
		return 0
	}
	half := power[peak] / 2

	lower := float64(lo)
	for k := peak; k > lo; k-- {
		if power[k-1] <= half && power[k] > half {
			lower = crossing(k-1, power[k-1], power[k], half)
			break
		}
	}

	upper := float64(hi)
	for k := peak; k < hi; k++ {
		if power[k+1] <= half && power[k] > half {
			upper = crossing(k, power[k], power[k+1], half)
			break
		}
	}

	return math.Max(upper-lower, 0) * binHz
}

// crossing returns the fractional bin between k and k+1 where the line
// through (k, a) and (k+1, b) reaches level.
func crossing(k int, a, b, level float64) float64 {
	if a == b {
		return float64(k) + 0.5
	}
	return float64(k) + (level-a)/(b-a)
}
