package acquire

import (
	"testing"

	"github.com/cwbudde/algo-ppg/ppg"
)

func ramp(n int) []ppg.Sample {
	out := make([]ppg.Sample, n)
	for i := range out {
		out[i] = ppg.Sample{IR: i, Red: -i}
	}
	return out
}

func TestNewAccumulatorValidation(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		hop     int
		wantHop int
		wantErr bool
	}{
		{name: "default hop", size: 8, hop: 0, wantHop: 8},
		{name: "negative hop", size: 8, hop: -3, wantHop: 8},
		{name: "half hop", size: 8, hop: 4, wantHop: 4},
		{name: "zero size", size: 0, wantErr: true},
		{name: "hop too large", size: 8, hop: 9, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			acc, err := NewAccumulator(tc.size, tc.hop)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewAccumulator: %v", err)
			}
			if acc.Hop() != tc.wantHop || acc.Size() != tc.size {
				t.Fatalf("size=%d hop=%d, want %d/%d", acc.Size(), acc.Hop(), tc.size, tc.wantHop)
			}
		})
	}
}

func TestAccumulatorNonOverlapping(t *testing.T) {
	acc, err := NewAccumulator(4, 0)
	if err != nil {
		t.Fatal(err)
	}

	var segs []ppg.Segment
	for _, s := range ramp(10) {
		if seg, ok := acc.Push(s); ok {
			segs = append(segs, seg)
		}
	}

	if len(segs) != 2 {
		t.Fatalf("segments=%d, want 2", len(segs))
	}
	for i, seg := range segs {
		if len(seg) != 4 {
			t.Fatalf("segment %d len=%d", i, len(seg))
		}
		if seg[0].IR != 4*i || seg[3].IR != 4*i+3 {
			t.Fatalf("segment %d = %v", i, seg)
		}
	}
	if acc.Buffered() != 2 {
		t.Fatalf("buffered=%d, want 2 (partial segment held back)", acc.Buffered())
	}
}

func TestAccumulatorSlidingHop(t *testing.T) {
	acc, err := NewAccumulator(4, 2)
	if err != nil {
		t.Fatal(err)
	}

	var starts []int
	for _, s := range ramp(9) {
		if seg, ok := acc.Push(s); ok {
			starts = append(starts, seg[0].IR)
		}
	}

	want := []int{0, 2, 4}
	if len(starts) != len(want) {
		t.Fatalf("starts=%v, want %v", starts, want)
	}
	for i := range want {
		if starts[i] != want[i] {
			t.Fatalf("starts=%v, want %v", starts, want)
		}
	}
}

func TestAccumulatorSegmentsAreIndependent(t *testing.T) {
	acc, err := NewAccumulator(2, 1)
	if err != nil {
		t.Fatal(err)
	}

	acc.Push(ppg.Sample{IR: 1})
	first, ok := acc.Push(ppg.Sample{IR: 2})
	if !ok {
		t.Fatal("expected first segment")
	}
	if _, ok := acc.Push(ppg.Sample{IR: 3}); !ok {
		t.Fatal("expected second segment")
	}

	if first[0].IR != 1 || first[1].IR != 2 {
		t.Fatalf("first segment changed: %v", first)
	}
}

func TestAccumulatorReset(t *testing.T) {
	acc, err := NewAccumulator(3, 0)
	if err != nil {
		t.Fatal(err)
	}
	acc.Push(ppg.Sample{IR: 1})
	acc.Push(ppg.Sample{IR: 2})
	acc.Reset()

	if acc.Buffered() != 0 {
		t.Fatalf("buffered=%d after reset", acc.Buffered())
	}
	for i := 0; i < 2; i++ {
		if _, ok := acc.Push(ppg.Sample{IR: 9}); ok {
			t.Fatal("segment emitted before size samples after reset")
		}
	}
}
