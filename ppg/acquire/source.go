package acquire

import (
	"context"
	"errors"
	"io"

	"github.com/cwbudde/algo-ppg/ppg"
)

// ErrMalformedLine is returned for input lines that do not hold a sample.
var ErrMalformedLine = errors.New("acquire: malformed sample line")

// Source produces consecutive samples. Next returns io.EOF after the last
// sample.
type Source interface {
	Next(ctx context.Context) (ppg.Sample, error)
}

// SegmentSource produces complete segments. NextSegment returns io.EOF once
// no further segment will arrive.
type SegmentSource interface {
	NextSegment(ctx context.Context) (ppg.Segment, error)
}

// SliceSource replays a fixed list of samples.
type SliceSource struct {
	samples []ppg.Sample
	pos     int
}

// NewSliceSource returns a Source over samples.
func NewSliceSource(samples []ppg.Sample) *SliceSource {
	return &SliceSource{samples: samples}
}

// Next returns the next sample.
func (s *SliceSource) Next(ctx context.Context) (ppg.Sample, error) {
	if err := ctx.Err(); err != nil {
		return ppg.Sample{}, err
	}
	if s.pos >= len(s.samples) {
		return ppg.Sample{}, io.EOF
	}
	v := s.samples[s.pos]
	s.pos++
	return v, nil
}
