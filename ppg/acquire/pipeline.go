package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-ppg/ppg"
)

// OverflowPolicy decides what happens when the consumer falls behind and the
// segment queue is full.
type OverflowPolicy int

const (
	// OverflowBlock stalls acquisition until the consumer takes a segment.
	OverflowBlock OverflowPolicy = iota
	// OverflowDropOldest discards the oldest queued segment so the newest
	// one is always delivered.
	OverflowDropOldest
)

func (p OverflowPolicy) String() string {
	switch p {
	case OverflowBlock:
		return "block"
	case OverflowDropOldest:
		return "drop-oldest"
	default:
		return "unknown"
	}
}

// ParseOverflowPolicy maps "block" or "drop-oldest" to a policy.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch s {
	case "", "block":
		return OverflowBlock, nil
	case "drop-oldest", "drop_oldest":
		return OverflowDropOldest, nil
	default:
		return 0, fmt.Errorf("unknown overflow policy %q", s)
	}
}

// PipelineConfig configures a Pipeline.
type PipelineConfig struct {
	SegmentSamples int
	Hop            int
	QueueSize      int
	Overflow       OverflowPolicy
	Logger         *zap.Logger
}

// DefaultPipelineConfig returns non-overlapping segments of the sensor
// segment length, a double-buffered queue and blocking overflow.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		SegmentSamples: ppg.SegmentSamples,
		QueueSize:      2,
		Overflow:       OverflowBlock,
	}
}

// Pipeline pulls samples from a Source on its own goroutine and queues the
// completed segments.
type Pipeline struct {
	src    Source
	acc    *Accumulator
	cfg    PipelineConfig
	logger *zap.Logger
	out    chan ppg.Segment

	dropped  atomic.Uint64
	produced atomic.Uint64

	startOnce sync.Once
	mu        sync.Mutex
	err       error
}

// NewPipeline returns a Pipeline reading from src.
func NewPipeline(src Source, cfg PipelineConfig) (*Pipeline, error) {
	if src == nil {
		return nil, errors.New("acquire: nil source")
	}

	acc, err := NewAccumulator(cfg.SegmentSamples, cfg.Hop)
	if err != nil {
		return nil, err
	}

	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pipeline{
		src:    src,
		acc:    acc,
		cfg:    cfg,
		logger: logger,
		out:    make(chan ppg.Segment, cfg.QueueSize),
	}, nil
}

// Start runs the acquisition loop in a new goroutine. Later calls are no-ops.
func (p *Pipeline) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		go func() {
			_ = p.run(ctx)
		}()
	})
}

// Run runs the acquisition loop on the calling goroutine until the source is
// exhausted, fails or ctx is done. The segment channel is closed on return.
// A source ending with io.EOF is not an error.
func (p *Pipeline) Run(ctx context.Context) error {
	err := errors.New("acquire: pipeline already started")
	p.startOnce.Do(func() {
		err = p.run(ctx)
	})
	return err
}

func (p *Pipeline) run(ctx context.Context) error {
	defer close(p.out)

	p.logger.Debug("acquisition started",
		zap.Int("segment_samples", p.acc.Size()),
		zap.Int("hop", p.acc.Hop()),
		zap.Stringer("overflow", p.cfg.Overflow))

	for {
		s, err := p.src.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				p.logger.Debug("source exhausted",
					zap.Int("discarded_partial", p.acc.Buffered()),
					zap.Uint64("segments", p.produced.Load()))
				return nil
			}
			p.setErr(err)
			return err
		}

		seg, ok := p.acc.Push(s)
		if !ok {
			continue
		}

		if err := p.deliver(ctx, seg); err != nil {
			p.setErr(err)
			return err
		}
		p.produced.Add(1)
	}
}

func (p *Pipeline) deliver(ctx context.Context, seg ppg.Segment) error {
	if p.cfg.Overflow == OverflowBlock {
		select {
		case p.out <- seg:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	for {
		select {
		case p.out <- seg:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		select {
		case <-p.out:
			n := p.dropped.Add(1)
			p.logger.Warn("segment queue full, dropped oldest segment", zap.Uint64("dropped_total", n))
		default:
		}
	}
}

func (p *Pipeline) setErr(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}

// Err returns the error that stopped the pipeline, if any.
func (p *Pipeline) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Segments returns the channel of completed segments. It is closed when the
// pipeline stops.
func (p *Pipeline) Segments() <-chan ppg.Segment {
	return p.out
}

// NextSegment waits for the next segment. After the pipeline stops it
// returns the stopping error, or io.EOF when the source simply ended.
func (p *Pipeline) NextSegment(ctx context.Context) (ppg.Segment, error) {
	select {
	case seg, ok := <-p.out:
		if ok {
			return seg, nil
		}
		if err := p.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Dropped returns the number of segments discarded by OverflowDropOldest.
func (p *Pipeline) Dropped() uint64 {
	return p.dropped.Load()
}

// Produced returns the number of segments delivered to the queue.
func (p *Pipeline) Produced() uint64 {
	return p.produced.Load()
}
