// SPDX-License-Identifier: EPL-2.0

package dsp

import "math"

// Biquad is one normalized second-order filter section (a0 == 1).
type Biquad struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// maxCutoffRatio keeps corner frequencies below Nyquist so the bilinear
// transform stays stable at low sample rates.
const maxCutoffRatio = 0.99

// clampCutoff bounds a corner frequency to (0, Nyquist*maxCutoffRatio].
func clampCutoff(cutoff float64, rate int) float64 {
	nyquist := float64(rate) / 2
	limit := nyquist * maxCutoffRatio
	if cutoff > limit {
		return limit
	}
	if cutoff <= 0 {
		return 1
	}
	return cutoff
}

// butterworthQ returns the section Q values for an even-order Butterworth
// filter. An odd order is rounded up to the next even order.
func butterworthQ(order int) []float64 {
	if order < 2 {
		order = 2
	}
	sections := (order + 1) / 2
	qs := make([]float64, sections)
	n := float64(sections * 2)
	for k := 0; k < sections; k++ {
		theta := math.Pi * (2*float64(k) + 1) / (2 * n)
		qs[k] = 1 / (2 * math.Cos(theta))
	}
	return qs
}

// lowPassSections designs an order-N Butterworth low-pass as biquad sections.
func lowPassSections(cutoff float64, rate, order int) []Biquad {
	cutoff = clampCutoff(cutoff, rate)
	w0 := 2 * math.Pi * cutoff / float64(rate)
	cosW := math.Cos(w0)
	sinW := math.Sin(w0)

	qs := butterworthQ(order)
	sections := make([]Biquad, len(qs))
	for i, q := range qs {
		alpha := sinW / (2 * q)
		a0 := 1 + alpha
		sections[i] = Biquad{
			B0: (1 - cosW) / 2 / a0,
			B1: (1 - cosW) / a0,
			B2: (1 - cosW) / 2 / a0,
			A1: -2 * cosW / a0,
			A2: (1 - alpha) / a0,
		}
	}
	return sections
}

// highPassSections designs an order-N Butterworth high-pass as biquad sections.
func highPassSections(cutoff float64, rate, order int) []Biquad {
	cutoff = clampCutoff(cutoff, rate)
	w0 := 2 * math.Pi * cutoff / float64(rate)
	cosW := math.Cos(w0)
	sinW := math.Sin(w0)

	qs := butterworthQ(order)
	sections := make([]Biquad, len(qs))
	for i, q := range qs {
		alpha := sinW / (2 * q)
		a0 := 1 + alpha
		sections[i] = Biquad{
			B0: (1 + cosW) / 2 / a0,
			B1: -(1 + cosW) / a0,
			B2: (1 + cosW) / 2 / a0,
			A1: -2 * cosW / a0,
			A2: (1 - alpha) / a0,
		}
	}
	return sections
}

// applyCascade runs x through the sections in direct form II transposed.
// The filter state starts at zero; FiltFilt's edge padding absorbs the
// start-up transient.
func applyCascade(sections []Biquad, x []float64) []float64 {
	y := make([]float64, len(x))
	copy(y, x)
	for _, s := range sections {
		var z1, z2 float64
		for i, in := range y {
			out := s.B0*in + z1
			z1 = s.B1*in - s.A1*out + z2
			z2 = s.B2*in - s.A2*out
			y[i] = out
		}
	}
	return y
}

// oddExtend pads x with pad mirrored samples on each side, reflected about
// the edge values so the extension is continuous in value and slope.
func oddExtend(x []float64, pad int) []float64 {
	n := len(x)
	ext := make([]float64, n+2*pad)
	for i := 0; i < pad; i++ {
		ext[i] = 2*x[0] - x[pad-i]
		ext[n+pad+i] = 2*x[n-1] - x[n-2-i]
	}
	copy(ext[pad:], x)
	return ext
}

// FiltFilt applies the section cascade forward and backward for zero phase
// distortion, with odd-extension edge padding. The result has the same
// length as x.
func FiltFilt(sections []Biquad, x []float64) []float64 {
	if len(x) == 0 {
		return nil
	}
	if len(x) == 1 {
		return []float64{x[0]}
	}

	pad := 6 * len(sections)
	if pad >= len(x) {
		pad = len(x) - 1
	}

	ext := oddExtend(x, pad)
	y := applyCascade(sections, ext)
	reverse(y)
	y = applyCascade(sections, y)
	reverse(y)

	out := make([]float64, len(x))
	copy(out, y[pad:len(y)-pad])
	return out
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}

// LowPass applies an order-N zero-phase Butterworth low-pass.
func LowPass(x []float64, rate int, cutoff float64, order int) []float64 {
	return FiltFilt(lowPassSections(cutoff, rate, order), x)
}

// HighPass applies an order-N zero-phase Butterworth high-pass.
func HighPass(x []float64, rate int, cutoff float64, order int) []float64 {
	return FiltFilt(highPassSections(cutoff, rate, order), x)
}

// BandPass applies an order-N zero-phase band-pass built as a cascade of a
// high-pass at low and a low-pass at high.
func BandPass(x []float64, rate int, low, high float64, order int) []float64 {
	sections := highPassSections(low, rate, order)
	sections = append(sections, lowPassSections(high, rate, order)...)
	return FiltFilt(sections, x)
}
