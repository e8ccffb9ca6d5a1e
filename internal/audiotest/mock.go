// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"

	"github.com/voxsplit/voxsplit/audio"
)

// Generate fills a buffer of the given shape from a per-sample waveform
// function, so tests can build arbitrary deterministic fixtures.
func Generate(rate, channels, frames int, waveform func(frame, channel int) float64) *audio.Buffer {
	b := audio.New(rate, channels, frames)
	for ch := 0; ch < channels; ch++ {
		samples := b.Samples(ch)
		for f := 0; f < frames; f++ {
			samples[f] = waveform(f, ch)
		}
	}
	return b
}

// Silence returns an all-zero buffer.
func Silence(rate, channels, frames int) *audio.Buffer {
	return audio.New(rate, channels, frames)
}

// Sine returns a buffer holding a sine tone at the given frequency and
// amplitude on every channel.
func Sine(rate, channels, frames int, frequency, amplitude float64) *audio.Buffer {
	return Generate(rate, channels, frames, func(frame, channel int) float64 {
		t := float64(frame) / float64(rate)
		return amplitude * math.Sin(2*math.Pi*frequency*t)
	})
}

// Constant returns a buffer with every sample set to value.
func Constant(rate, channels, frames int, value float64) *audio.Buffer {
	return Generate(rate, channels, frames, func(frame, channel int) float64 {
		return value
	})
}

// Burst describes one energetic region inside an otherwise silent fixture.
type Burst struct {
	Start     float64 // seconds
	Duration  float64 // seconds
	Frequency float64 // Hz
	Amplitude float64
}

// Bursts builds a mono buffer that is silent except for the given tone
// bursts. Two bursts at distinct frequencies make a minimal two-speaker
// conversation stand-in for diarization tests.
func Bursts(rate, frames int, bursts ...Burst) *audio.Buffer {
	b := audio.New(rate, 1, frames)
	samples := b.Samples(0)
	for _, burst := range bursts {
		start := int(burst.Start * float64(rate))
		end := start + int(burst.Duration*float64(rate))
		if start < 0 {
			start = 0
		}
		if end > frames {
			end = frames
		}
		for f := start; f < end; f++ {
			t := float64(f) / float64(rate)
			samples[f] = burst.Amplitude * math.Sin(2*math.Pi*burst.Frequency*t)
		}
	}
	return b
}
