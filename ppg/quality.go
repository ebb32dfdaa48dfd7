package ppg

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-ppg/stats/frequency"
)

// ChannelQuality summarizes one optical channel of a segment.
type ChannelQuality struct {
	DC     float64 `json:"dc" yaml:"dc"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
	// PeakToPeak is the pulsatile swing max-min.
	PeakToPeak float64 `json:"peak_to_peak" yaml:"peak_to_peak"`
	// PerfusionIndex is PeakToPeak/DC in percent; 0 when DC is not positive.
	PerfusionIndex float64 `json:"perfusion_index" yaml:"perfusion_index"`
}

// Quality holds signal diagnostics for both channels. It does not feed into
// the heart-rate estimate.
type Quality struct {
	IR  ChannelQuality `json:"ir" yaml:"ir"`
	Red ChannelQuality `json:"red" yaml:"red"`
}

// Assess computes per-channel signal diagnostics for seg.
func Assess(seg Segment) Quality {
	if len(seg) == 0 {
		return Quality{}
	}
	return Quality{
		IR:  channelQuality(seg.IR()),
		Red: channelQuality(seg.Red()),
	}
}

func channelQuality(x []float64) ChannelQuality {
	q := ChannelQuality{
		PeakToPeak: floats.Max(x) - floats.Min(x),
	}

	if len(x) > 1 {
		q.DC, q.StdDev = stat.MeanStdDev(x, nil)
	} else {
		q.DC = x[0]
	}

	if q.DC > 0 {
		q.PerfusionIndex = 100 * q.PeakToPeak / q.DC
	}

	return q
}

// Spectrum describes the passband of the power spectrum left in ws by the
// last Estimate: how concentrated the power is around the reported peak.
// It returns the zero Stats when the band holds no bins.
func (e *Estimator) Spectrum(ws *Workspace) frequency.Stats {
	if ws == nil || ws.n != e.cfg.SegmentSamples || !e.bandOK {
		return frequency.Stats{}
	}
	return frequency.Calculate(ws.power, e.lo, e.hi, e.binHz)
}
