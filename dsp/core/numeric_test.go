package core

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(0, 1, 512); got != 1 {
		t.Fatalf("ClampInt(0,1,512) = %d, want 1", got)
	}
	if got := ClampInt(600, 1, 512); got != 512 {
		t.Fatalf("ClampInt(600,1,512) = %d, want 512", got)
	}
	if got := ClampInt(7, 9, 3); got != 7 {
		t.Fatalf("ClampInt swapped = %d, want 7", got)
	}
}

func TestPowerOfTwo(t *testing.T) {
	tests := []struct {
		n    int
		pow  bool
		log2 int
	}{
		{n: 0, pow: false, log2: -1},
		{n: 1, pow: true, log2: 0},
		{n: 2, pow: true, log2: 1},
		{n: 3, pow: false, log2: -1},
		{n: 1000, pow: false, log2: -1},
		{n: 1024, pow: true, log2: 10},
		{n: -4, pow: false, log2: -1},
	}

	for _, tt := range tests {
		if got := IsPowerOfTwo(tt.n); got != tt.pow {
			t.Fatalf("IsPowerOfTwo(%d) = %v, want %v", tt.n, got, tt.pow)
		}
		if got := Log2(tt.n); got != tt.log2 {
			t.Fatalf("Log2(%d) = %d, want %d", tt.n, got, tt.log2)
		}
	}
}
