// Package fft implements an in-place radix-2 decimation-in-time FFT for
// power-of-two block sizes.
//
// The transform is analysis-only: there is no inverse. A [Plan] precomputes
// the bit-reversal table and twiddle factors once so that [Plan.Forward]
// neither allocates nor depends on accumulated rotation error. The
// [WithIncrementalTwiddles] option instead rotates the twiddle factor by a
// fixed step inside each butterfly group, which trades a small phase drift
// across a stage for not storing a table.
//
// [AlgoFFT] adapts the algo-fft library to the same [Backend] interface so
// callers can swap implementations without touching the analysis pipeline.
package fft
