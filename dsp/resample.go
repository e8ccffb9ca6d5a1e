// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/voxsplit/voxsplit/audio"
	"github.com/voxsplit/voxsplit/utils"
)

// outputLen is the resampled length for n input samples.
func outputLen(n, srcRate, dstRate int) int {
	return int(math.Round(float64(n) * float64(dstRate) / float64(srcRate)))
}

// Resample converts x from srcRate to dstRate in the frequency domain:
// forward FFT, spectrum truncation or zero padding, inverse FFT at the new
// length. Band-limited, so no aliasing on downsampling.
func Resample(x []float64, srcRate, dstRate int) []float64 {
	if srcRate == dstRate {
		out := make([]float64, len(x))
		copy(out, x)
		return out
	}
	if len(x) == 0 {
		return nil
	}

	n := len(x)
	m := outputLen(n, srcRate, dstRate)
	if m <= 0 {
		return []float64{}
	}

	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, x)

	resized := make([]complex128, m/2+1)
	shared := len(resized)
	if len(coeff) < shared {
		shared = len(coeff)
	}
	copy(resized, coeff[:shared])

	inv := fourier.NewFFT(m)
	y := inv.Sequence(nil, resized)

	// Coefficients/Sequence are unnormalized; dividing by the forward
	// length restores unit gain.
	scale := 1 / float64(n)
	for i := range y {
		y[i] *= scale
	}
	return y
}

// ResampleCubic converts x from srcRate to dstRate with Catmull-Rom cubic
// interpolation. Cheaper than Resample on long inputs and good enough for
// analysis-rate decimation, where the consumer is a feature extractor rather
// than an ear.
func ResampleCubic(x []float64, srcRate, dstRate int) []float64 {
	if srcRate == dstRate {
		out := make([]float64, len(x))
		copy(out, x)
		return out
	}
	if len(x) == 0 {
		return nil
	}

	n := len(x)
	m := outputLen(n, srcRate, dstRate)
	if m <= 0 {
		return []float64{}
	}

	at := func(i int) float64 {
		if i < 0 {
			i = 0
		}
		if i >= n {
			i = n - 1
		}
		return x[i]
	}

	ratio := float64(srcRate) / float64(dstRate)
	y := make([]float64, m)
	for i := 0; i < m; i++ {
		pos := float64(i) * ratio
		i1 := int(pos)
		frac := pos - float64(i1)
		y[i] = utils.CubicInterpolate(at(i1-1), at(i1), at(i1+1), at(i1+2), frac)
	}
	return y
}

// ResampleBuffer resamples every channel of b to dstRate with Resample.
func ResampleBuffer(b *audio.Buffer, dstRate int) *audio.Buffer {
	if b.SampleRate() == dstRate {
		return b.Clone()
	}
	channels := b.Channels()
	frames := outputLen(b.Frames(), b.SampleRate(), dstRate)
	out := audio.New(dstRate, channels, frames)
	for ch := 0; ch < channels; ch++ {
		resampled := Resample(b.Samples(ch), b.SampleRate(), dstRate)
		copy(out.Samples(ch), resampled)
	}
	return out
}
