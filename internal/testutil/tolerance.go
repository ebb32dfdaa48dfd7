package testutil

import (
	"math"
	"testing"
)

// RequireNear fails t if got differs from want by more than eps.
func RequireNear(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if d := math.Abs(got - want); d > eps || math.IsNaN(got) {
		t.Fatalf("%s = %v, want %v ± %v (diff %v)", name, got, want, eps, d)
	}
}

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireBinAligned fails t unless hz equals k*binHz for an integer k in
// [lo, hi]. It returns k.
func RequireBinAligned(t *testing.T, hz, binHz float64, lo, hi int) int {
	t.Helper()
	k := int(math.Round(hz / binHz))
	if math.Abs(float64(k)*binHz-hz) > 1e-9 {
		t.Fatalf("%v Hz is not a multiple of bin width %v", hz, binHz)
	}
	if k < lo || k > hi {
		t.Fatalf("bin %d (%v Hz) outside [%d, %d]", k, hz, lo, hi)
	}
	return k
}
