package utils

import "math"

// FloatToInt16 converts a float sample in [-1, 1] to a signed 16-bit PCM
// value. Input is clamped, then rounded to the nearest level at the same
// 1/32768 step size decoders divide by, so an encode/decode round trip
// stays within half a quantization step.
func FloatToInt16(x float64) int16 {
	v := math.Round(Clamp(x, -1, 1) * 32768.0)
	// Positive full scale saturates at 32767 to avoid overflow.
	if v > 32767 {
		v = 32767
	}
	return int16(v)
}

// Clamp limits x to the inclusive range [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
