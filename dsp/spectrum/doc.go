// Package spectrum turns FFT output into power spectra and locates the
// dominant bin inside a frequency band.
//
// The package does not implement the FFT itself. It operates on complex
// bins produced by any transform (see package fft) and works on the
// one-sided spectrum, bins 0..N/2, where bin k sits at k*fs/N Hz.
package spectrum
