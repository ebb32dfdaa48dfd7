// Package ppg estimates heart rate from photoplethysmography (PPG) samples.
//
// A [Segment] holds exactly [SegmentSamples] infrared/red readings taken at
// [SamplesPerSecond]. The [Estimator] removes the DC level of the infrared
// channel, applies a Hann window, transforms the block with a radix-2 FFT
// and returns the strongest bin inside the 0.5–3.0 Hz passband (30–180
// beats per minute) as a frequency in Hz.
//
// Estimation is a pure function of one segment. All scratch memory lives in
// a caller-owned [Workspace]; give every goroutine its own workspace, or use
// [Estimator.DominantFrequency], which serializes access to a private one.
//
// A heart rate of 0 Hz is the "no detectable peak" sentinel. [Result.Status]
// tells an empty passband apart from a flat signal. [Result.SpO2] is
// reserved and never computed here.
package ppg
