package ppg

import "fmt"

const (
	// SamplesPerSecond is the sensor acquisition rate in Hz.
	SamplesPerSecond = 100
	// SegmentSamples is the number of samples analyzed as one block.
	SegmentSamples = 1024
	// MinFreqHz is the lower passband edge (30 bpm).
	MinFreqHz = 0.5
	// MaxFreqHz is the upper passband edge (180 bpm).
	MaxFreqHz = 3.0
	// HannAmplitudeCorrection compensates the Hann window's coherent gain.
	HannAmplitudeCorrection = 2.0
)

// Sample is one acquisition tick of the optical sensor.
type Sample struct {
	IR  int `json:"ir" yaml:"ir"`
	Red int `json:"red" yaml:"red"`
}

// Segment is an ordered block of consecutive samples.
type Segment []Sample

// NewSegment pairs infrared and red readings into a Segment.
func NewSegment(ir, red []int) (Segment, error) {
	if red != nil && len(red) != len(ir) {
		return nil, fmt.Errorf("ir and red channels differ in length: %d != %d", len(ir), len(red))
	}

	seg := make(Segment, len(ir))
	for i, v := range ir {
		seg[i].IR = v
		if red != nil {
			seg[i].Red = red[i]
		}
	}

	return seg, nil
}

// IR returns the infrared channel as float64 values.
func (s Segment) IR() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v.IR)
	}
	return out
}

// Red returns the red channel as float64 values.
func (s Segment) Red() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v.Red)
	}
	return out
}

// Clone returns a copy that does not share storage with s.
func (s Segment) Clone() Segment {
	return append(Segment(nil), s...)
}
