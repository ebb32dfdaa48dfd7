// Package acquire assembles sensor samples into fixed-length segments.
//
// A [Source] yields one [ppg.Sample] at a time: text lines from a file or a
// serial port ([LineSource], [OpenSerial]) or a synthetic pulse
// ([Simulator]). An [Accumulator] groups samples into segments of exactly
// the configured length and never emits a partial one. A [Pipeline] runs a
// source in its own goroutine and hands finished segments to the consumer
// through a bounded queue whose overflow behaviour is selected by
// [OverflowPolicy].
package acquire
