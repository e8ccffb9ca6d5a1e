// SPDX-License-Identifier: EPL-2.0

// Package dsp holds the signal-processing primitives shared by the separation,
// diarization and mixing engines: Butterworth filter design, zero-phase
// filtering, and sample-rate conversion.
//
// # Zero-Phase Filtering
//
// Filters are designed as cascades of biquad sections and applied forward and
// backward so the output has no phase shift relative to the input:
//
//	vocals := dsp.BandPass(samples, 44100, 80, 8000, 4)
//	rumble := dsp.LowPass(samples, 44100, 80, 4)
//	hiss := dsp.HighPass(samples, 44100, 8000, 4)
//
// Corner frequencies are clamped below Nyquist, so a band designed for high
// sample rates degrades gracefully on low-rate material instead of producing
// an unstable filter.
//
// # Resampling
//
// Two strategies are provided. Resample works in the frequency domain (FFT,
// spectrum resize, inverse FFT) and is the quality path used when mixing
// tracks to a common rate:
//
//	out := dsp.Resample(samples, 48000, 44100)
//
// ResampleCubic interpolates in the time domain with a Catmull-Rom spline and
// is the cheap path used to decimate audio to an analysis rate before feature
// extraction.
package dsp
