package fft

import (
	"errors"
	"fmt"
)

var (
	// ErrNotPowerOfTwo is returned for transform sizes that are not a
	// positive power of two.
	ErrNotPowerOfTwo = errors.New("fft size must be a power of two")
	// ErrLengthMismatch is returned when the buffer does not match the plan size.
	ErrLengthMismatch = errors.New("fft buffer length does not match plan size")
)

func validateSize(n int) error {
	if n <= 0 || n&(n-1) != 0 {
		return fmt.Errorf("%w: %d", ErrNotPowerOfTwo, n)
	}
	return nil
}
