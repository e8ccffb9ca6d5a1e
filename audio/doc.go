// SPDX-License-Identifier: EPL-2.0

// Package audio provides the shared sample buffer abstraction used by every
// engine in this module, plus the decoder registry that maps format keys to
// decoders.
//
// # Buffer
//
// A Buffer holds fully-decoded audio as channel-planar float64 samples in
// [-1, 1] together with its sample rate:
//
//	buf := audio.New(44100, 2, 44100) // one second of stereo silence
//	buf.Duration()                    // 1.0
//
// Transforms never mutate the receiver; they return fresh buffers:
//
//	norm := buf.Normalize(0.95)
//	mono := buf.Mono()
//	clip := buf.Slice(0, 22050)
//
// This copy discipline is what lets the separation, diarization and mixing
// engines run concurrently over disjoint inputs without locking.
//
// # Decoder Registry
//
// Decoders for concrete container formats live in the formats subpackages and
// are looked up by key:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//
//	d, ok := registry.Get("wav")
//	buf, err := d.Decode(file)
//
// # Waveform Data
//
// Waveform produces a normalized peak envelope for UI display:
//
//	peaks := audio.Waveform(buf, 200) // 200 values in [0, 1]
package audio
