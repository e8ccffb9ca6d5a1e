// SPDX-License-Identifier: EPL-2.0

package diarize

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// numCepstra is the length of the per-frame spectral envelope
	// descriptor.
	numCepstra = 13
	// numBands is the mel filterbank size the cepstra are derived from.
	numBands = 26
)

// featureExtractor computes per-frame descriptors: RMS energy and a compact
// cepstral summary of the spectral envelope, the timbre fingerprint that
// clustering groups speakers by.
type featureExtractor struct {
	fft     *fourier.FFT
	fftSize int
	window  []float64
	padded  []float64
	coeff   []complex128
	power   []float64
	filters [][]float64
}

// newFeatureExtractor prepares the FFT, Hann window and mel filterbank for
// frames of winLen samples at the given rate.
func newFeatureExtractor(rate, winLen int) *featureExtractor {
	fftSize := 1
	for fftSize < winLen {
		fftSize <<= 1
	}

	window := make([]float64, winLen)
	for i := range window {
		window[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(winLen-1))
	}

	e := &featureExtractor{
		fft:     fourier.NewFFT(fftSize),
		fftSize: fftSize,
		window:  window,
		padded:  make([]float64, fftSize),
		coeff:   make([]complex128, fftSize/2+1),
		power:   make([]float64, fftSize/2+1),
	}
	e.filters = melFilterbank(rate, fftSize, numBands)
	return e
}

func hzToMel(hz float64) float64  { return 2595 * math.Log10(1+hz/700) }
func melToHz(mel float64) float64 { return 700 * (math.Pow(10, mel/2595) - 1) }

// melFilterbank builds numBands triangular filters over the power spectrum
// bins, spaced evenly on the mel scale from 0 Hz to Nyquist.
func melFilterbank(rate, fftSize, bands int) [][]float64 {
	bins := fftSize/2 + 1
	maxMel := hzToMel(float64(rate) / 2)

	// Band edge positions in bin space, bands+2 points.
	edges := make([]float64, bands+2)
	for i := range edges {
		hz := melToHz(maxMel * float64(i) / float64(bands+1))
		edges[i] = hz * float64(fftSize) / float64(rate)
	}

	filters := make([][]float64, bands)
	for b := 0; b < bands; b++ {
		filters[b] = make([]float64, bins)
		lo, mid, hi := edges[b], edges[b+1], edges[b+2]
		for bin := 0; bin < bins; bin++ {
			x := float64(bin)
			switch {
			case x > lo && x <= mid && mid > lo:
				filters[b][bin] = (x - lo) / (mid - lo)
			case x > mid && x < hi && hi > mid:
				filters[b][bin] = (hi - x) / (hi - mid)
			}
		}
	}
	return filters
}

// rms is the frame's root-mean-square energy over the raw samples.
func rms(frame []float64) float64 {
	if len(frame) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range frame {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(frame)))
}

// cepstra computes the 13-coefficient spectral envelope descriptor of one
// frame: Hann window, power spectrum, log mel energies, DCT-II.
func (e *featureExtractor) cepstra(frame []float64) []float64 {
	for i := range e.padded {
		e.padded[i] = 0
	}
	n := len(frame)
	if n > len(e.window) {
		n = len(e.window)
	}
	for i := 0; i < n; i++ {
		e.padded[i] = frame[i] * e.window[i]
	}

	e.fft.Coefficients(e.coeff, e.padded)
	for i, c := range e.coeff {
		re, im := real(c), imag(c)
		e.power[i] = re*re + im*im
	}

	logEnergy := make([]float64, numBands)
	for b, filter := range e.filters {
		sum := 0.0
		for bin, w := range filter {
			if w != 0 {
				sum += w * e.power[bin]
			}
		}
		logEnergy[b] = math.Log(sum + 1e-10)
	}

	out := make([]float64, numCepstra)
	for k := 0; k < numCepstra; k++ {
		sum := 0.0
		for j, le := range logEnergy {
			sum += le * math.Cos(math.Pi*float64(k)*(float64(j)+0.5)/float64(numBands))
		}
		out[k] = sum
	}
	return out
}

// segmentEmbedding concatenates the mean and standard deviation of the
// cepstra across a segment's frames into one 26-dim vector. A segment with
// no frames yields the zero vector.
func segmentEmbedding(cepstra [][]float64) []float64 {
	out := make([]float64, 2*numCepstra)
	if len(cepstra) == 0 {
		return out
	}

	n := float64(len(cepstra))
	for k := 0; k < numCepstra; k++ {
		mean := 0.0
		for _, c := range cepstra {
			mean += c[k]
		}
		mean /= n

		variance := 0.0
		for _, c := range cepstra {
			d := c[k] - mean
			variance += d * d
		}

		out[k] = mean
		out[numCepstra+k] = math.Sqrt(variance / n)
	}
	return out
}
