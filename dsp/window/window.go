package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
)

// Metadata holds spectral properties of a window type.
type Metadata struct {
	Name         string
	ENBW         float64
	CoherentGain float64
	// AmplitudeCorrection rescales a windowed tone back to its true
	// amplitude; it is the reciprocal of the coherent gain.
	AmplitudeCorrection float64
}

var (
	hannCoeffs     = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

var metadataByType = map[Type]Metadata{
	TypeRectangular: {Name: "Rectangular", ENBW: 1, CoherentGain: 1, AmplitudeCorrection: 1},
	TypeHann:        {Name: "Hann", ENBW: 1.5, CoherentGain: 0.5, AmplitudeCorrection: 2},
	TypeHamming:     {Name: "Hamming", ENBW: 1.3628, CoherentGain: 0.54, AmplitudeCorrection: 1 / 0.54},
	TypeBlackman:    {Name: "Blackman", ENBW: 1.7268, CoherentGain: 0.42, AmplitudeCorrection: 1 / 0.42},
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
//
// The default symmetric form evaluates the window at i/(N-1), so a Hann
// window is 0.5*(1 - cos(2*pi*i/(N-1))) and is zero at both ends.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	out := make([]float64, length)
	Fill(t, out, opts...)

	return out
}

// Fill writes window coefficients into dst, sized by len(dst).
// It does not allocate.
func Fill(t Type, dst []float64, opts ...Option) {
	cfg := config{}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	for i := range dst {
		x := samplePosition(i, len(dst), cfg.periodic)
		dst[i] = evalWindow(t, x)
	}
}

// Info returns static metadata for a window type.
func Info(t Type) Metadata {
	if m, ok := metadataByType[t]; ok {
		return m
	}

	return Metadata{}
}

// String returns the lower-case window name.
func (t Type) String() string {
	if m, ok := metadataByType[t]; ok {
		return strings.ToLower(m.Name)
	}
	return "unknown"
}

// Types lists the supported window types.
func Types() []Type {
	return []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman}
}

// ParseType maps a window name such as "hann" to its Type.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range Types() {
		if t.String() == name {
			return t, nil
		}
	}
	if name == "rect" || name == "none" {
		return TypeRectangular, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// CoherentGain returns sum(w[n]) / N for the given coefficients.
func CoherentGain(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	return sum / float64(len(coeffs)), nil
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return ErrMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

// RemoveMean subtracts the arithmetic mean from buf in place and returns it.
func RemoveMean(buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range buf {
		sum += v
	}

	mean := sum / float64(len(buf))
	for i := range buf {
		buf[i] -= mean
	}

	return mean
}

func evalWindow(t Type, x float64) float64 {
	if x < 0 {
		x = 0
	}

	if x > 1 {
		x = 1
	}

	switch t {
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
