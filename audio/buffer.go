// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// Buffer holds fully-decoded PCM audio as channel-planar float64 samples in
// [-1, 1] plus the sample rate. All transforms return a new Buffer; a Buffer
// handed to an engine is never mutated in place.
type Buffer struct {
	rate int
	data [][]float64
}

// New allocates a silent buffer of the given shape.
func New(rate, channels, frames int) *Buffer {
	if rate <= 0 || channels <= 0 || frames < 0 {
		return &Buffer{rate: rate, data: nil}
	}
	data := make([][]float64, channels)
	for ch := range data {
		data[ch] = make([]float64, frames)
	}
	return &Buffer{rate: rate, data: data}
}

// FromInterleaved builds a buffer from interleaved samples. Trailing samples
// that do not complete a frame are dropped.
func FromInterleaved(rate, channels int, samples []float64) *Buffer {
	if channels <= 0 {
		return &Buffer{rate: rate}
	}
	frames := len(samples) / channels
	b := New(rate, channels, frames)
	for f := 0; f < frames; f++ {
		for ch := 0; ch < channels; ch++ {
			b.data[ch][f] = samples[f*channels+ch]
		}
	}
	return b
}

func (b *Buffer) SampleRate() int { return b.rate }
func (b *Buffer) Channels() int   { return len(b.data) }

func (b *Buffer) Frames() int {
	if len(b.data) == 0 {
		return 0
	}
	return len(b.data[0])
}

// Duration of the buffer in seconds.
func (b *Buffer) Duration() float64 {
	if b.rate <= 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.rate)
}

// Samples returns the sample slice for one channel. The slice is shared with
// the buffer; callers that need to write must Clone first.
func (b *Buffer) Samples(ch int) []float64 {
	if ch < 0 || ch >= len(b.data) {
		return nil
	}
	return b.data[ch]
}

// Interleaved flattens the buffer to interleaved frame order.
func (b *Buffer) Interleaved() []float64 {
	frames := b.Frames()
	channels := b.Channels()
	out := make([]float64, frames*channels)
	for f := 0; f < frames; f++ {
		for ch := 0; ch < channels; ch++ {
			out[f*channels+ch] = b.data[ch][f]
		}
	}
	return out
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	out := New(b.rate, b.Channels(), b.Frames())
	for ch := range b.data {
		copy(out.data[ch], b.data[ch])
	}
	return out
}

// Peak returns the largest absolute sample value across all channels.
func (b *Buffer) Peak() float64 {
	peak := 0.0
	for _, ch := range b.data {
		for _, s := range ch {
			if a := math.Abs(s); a > peak {
				peak = a
			}
		}
	}
	return peak
}

// Gain returns a copy scaled by mul.
func (b *Buffer) Gain(mul float64) *Buffer {
	out := b.Clone()
	for _, ch := range out.data {
		for i := range ch {
			ch[i] *= mul
		}
	}
	return out
}

// Normalize returns a copy scaled so the peak magnitude equals target.
// A silent buffer is returned unchanged; there is no divide by zero.
func (b *Buffer) Normalize(target float64) *Buffer {
	peak := b.Peak()
	if peak == 0 {
		return b.Clone()
	}
	return b.Gain(target / peak)
}

// Mono mixes all channels down to one by averaging.
func (b *Buffer) Mono() *Buffer {
	channels := b.Channels()
	if channels == 1 {
		return b.Clone()
	}
	frames := b.Frames()
	out := New(b.rate, 1, frames)
	inv := 1.0 / float64(channels)
	for f := 0; f < frames; f++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += b.data[ch][f]
		}
		out.data[0][f] = sum * inv
	}
	return out
}

// Stereo forces the buffer to two channels: mono is duplicated, anything
// beyond two channels is truncated.
func (b *Buffer) Stereo() *Buffer {
	frames := b.Frames()
	out := New(b.rate, 2, frames)
	switch b.Channels() {
	case 0:
	case 1:
		copy(out.data[0], b.data[0])
		copy(out.data[1], b.data[0])
	default:
		copy(out.data[0], b.data[0])
		copy(out.data[1], b.data[1])
	}
	return out
}

// Slice copies the frame range [start, end). The range is clamped to the
// buffer bounds; a start beyond the end yields an empty buffer.
func (b *Buffer) Slice(start, end int) *Buffer {
	frames := b.Frames()
	if start < 0 {
		start = 0
	}
	if end > frames {
		end = frames
	}
	if start > end {
		start = end
	}
	out := New(b.rate, b.Channels(), end-start)
	for ch := range b.data {
		copy(out.data[ch], b.data[ch][start:end])
	}
	return out
}

// PadTo returns a copy extended with trailing silence to at least frames.
// A buffer already long enough is returned as a plain copy.
func (b *Buffer) PadTo(frames int) *Buffer {
	if frames <= b.Frames() {
		return b.Clone()
	}
	out := New(b.rate, b.Channels(), frames)
	for ch := range b.data {
		copy(out.data[ch], b.data[ch])
	}
	return out
}
