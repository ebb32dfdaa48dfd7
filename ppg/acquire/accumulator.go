package acquire

import (
	"fmt"

	"github.com/cwbudde/algo-ppg/ppg"
)

// Accumulator groups samples into segments of a fixed size. With hop equal
// to the size segments do not overlap; a smaller hop emits a sliding window
// every hop samples once the first segment is complete.
type Accumulator struct {
	size int
	hop  int
	buf  []ppg.Sample
}

// NewAccumulator returns an Accumulator for segments of size samples.
// hop <= 0 selects hop = size.
func NewAccumulator(size, hop int) (*Accumulator, error) {
	if size <= 0 {
		return nil, fmt.Errorf("segment size must be > 0: %d", size)
	}
	if hop <= 0 {
		hop = size
	}
	if hop > size {
		return nil, fmt.Errorf("hop must be <= segment size: %d > %d", hop, size)
	}

	return &Accumulator{
		size: size,
		hop:  hop,
		buf:  make([]ppg.Sample, 0, size),
	}, nil
}

// Size returns the segment length.
func (a *Accumulator) Size() int { return a.size }

// Hop returns the number of new samples between segments.
func (a *Accumulator) Hop() int { return a.hop }

// Buffered returns the number of samples held toward the next segment.
func (a *Accumulator) Buffered() int { return len(a.buf) }

// Push adds a sample. When it completes a segment, the segment is returned
// with ok set; the returned segment does not share storage with the
// accumulator.
func (a *Accumulator) Push(s ppg.Sample) (seg ppg.Segment, ok bool) {
	a.buf = append(a.buf, s)
	if len(a.buf) < a.size {
		return nil, false
	}

	seg = make(ppg.Segment, a.size)
	copy(seg, a.buf)

	a.buf = append(a.buf[:0], a.buf[a.hop:]...)

	return seg, true
}

// Reset discards buffered samples.
func (a *Accumulator) Reset() {
	a.buf = a.buf[:0]
}
