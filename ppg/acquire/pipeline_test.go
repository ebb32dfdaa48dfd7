package acquire

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cwbudde/algo-ppg/ppg"
)

type failingSource struct {
	n   int
	err error
}

func (f *failingSource) Next(context.Context) (ppg.Sample, error) {
	if f.n == 0 {
		return ppg.Sample{}, f.err
	}
	f.n--
	return ppg.Sample{IR: f.n}, nil
}

func testPipelineConfig(size, queue int, policy OverflowPolicy) PipelineConfig {
	cfg := DefaultPipelineConfig()
	cfg.SegmentSamples = size
	cfg.QueueSize = queue
	cfg.Overflow = policy
	return cfg
}

func TestParseOverflowPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    OverflowPolicy
		wantErr bool
	}{
		{in: "", want: OverflowBlock},
		{in: "block", want: OverflowBlock},
		{in: "drop-oldest", want: OverflowDropOldest},
		{in: "drop_oldest", want: OverflowDropOldest},
		{in: "newest", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseOverflowPolicy(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%q: got %v, %v; want %v", tc.in, got, err, tc.want)
		}
		if got.String() == "unknown" {
			t.Fatalf("%q: policy has no name", tc.in)
		}
	}
}

func TestNewPipelineValidation(t *testing.T) {
	if _, err := NewPipeline(nil, DefaultPipelineConfig()); err == nil {
		t.Fatal("expected error for nil source")
	}

	cfg := DefaultPipelineConfig()
	cfg.Hop = cfg.SegmentSamples + 1
	if _, err := NewPipeline(NewSliceSource(nil), cfg); err == nil {
		t.Fatal("expected error for hop > segment length")
	}
}

func TestPipelineBlockDeliversEverySegment(t *testing.T) {
	p, err := NewPipeline(NewSliceSource(ramp(26)), testPipelineConfig(4, 1, OverflowBlock))
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	p.Start(ctx)

	var starts []int
	for {
		seg, err := p.NextSegment(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("NextSegment: %v", err)
		}
		if len(seg) != 4 {
			t.Fatalf("segment len=%d", len(seg))
		}
		starts = append(starts, seg[0].IR)
	}

	if len(starts) != 6 {
		t.Fatalf("got %d segments, want 6 (partial tail dropped)", len(starts))
	}
	for i, s := range starts {
		if s != 4*i {
			t.Fatalf("segment %d starts at %d, want %d", i, s, 4*i)
		}
	}
	if p.Dropped() != 0 || p.Produced() != 6 {
		t.Fatalf("dropped=%d produced=%d", p.Dropped(), p.Produced())
	}
	if p.Err() != nil {
		t.Fatalf("Err()=%v after clean EOF", p.Err())
	}
}

func TestPipelineDropOldestKeepsNewest(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	cfg := testPipelineConfig(4, 1, OverflowDropOldest)
	cfg.Logger = zap.New(core)

	p, err := NewPipeline(NewSliceSource(ramp(20)), cfg)
	if err != nil {
		t.Fatal(err)
	}

	// No consumer while running: every segment but the last is displaced.
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	seg, err := p.NextSegment(context.Background())
	if err != nil {
		t.Fatalf("NextSegment: %v", err)
	}
	if seg[0].IR != 16 {
		t.Fatalf("kept segment starts at %d, want 16", seg[0].IR)
	}
	if _, err := p.NextSegment(context.Background()); !errors.Is(err, io.EOF) {
		t.Fatalf("err=%v, want io.EOF", err)
	}

	if p.Dropped() != 4 {
		t.Fatalf("dropped=%d, want 4", p.Dropped())
	}
	if logs.Len() != 4 {
		t.Fatalf("warn logs=%d, want 4", logs.Len())
	}
}

func TestPipelineSourceError(t *testing.T) {
	boom := errors.New("sensor unplugged")
	p, err := NewPipeline(&failingSource{n: 9, err: boom}, testPipelineConfig(4, 4, OverflowBlock))
	if err != nil {
		t.Fatal(err)
	}

	if err := p.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Run err=%v, want %v", err, boom)
	}

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := p.NextSegment(ctx); err != nil {
			t.Fatalf("segment %d: %v", i, err)
		}
	}
	if _, err := p.NextSegment(ctx); !errors.Is(err, boom) {
		t.Fatalf("err=%v, want %v", err, boom)
	}
}

func TestPipelineBlockHonorsCancel(t *testing.T) {
	cfg := DefaultSimulatorConfig()
	sim, err := NewSimulator(cfg)
	if err != nil {
		t.Fatal(err)
	}

	p, err := NewPipeline(sim, testPipelineConfig(8, 1, OverflowBlock))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := p.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run err=%v, want deadline exceeded", err)
	}
	if p.Produced() != 1 {
		t.Fatalf("produced=%d, want 1 (queue of one, no consumer)", p.Produced())
	}
}

func TestPipelineRunTwice(t *testing.T) {
	p, err := NewPipeline(NewSliceSource(ramp(4)), testPipelineConfig(4, 1, OverflowBlock))
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := p.Run(context.Background()); err == nil {
		t.Fatal("second Run should fail")
	}
}
