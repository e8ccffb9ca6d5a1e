package audio

import "math"

// Waveform reduces a buffer to points peak values for display, normalized so
// the largest bucket is 1. Buckets past the end of the audio are zero.
func Waveform(b *Buffer, points int) []float64 {
	if points <= 0 {
		return nil
	}

	mono := b.Mono().Samples(0)
	perPoint := len(mono) / points
	if perPoint < 1 {
		perPoint = 1
	}

	out := make([]float64, points)
	maxPeak := 0.0
	for i := 0; i < points; i++ {
		start := i * perPoint
		if start >= len(mono) {
			out[i] = 0
			continue
		}
		end := start + perPoint
		if end > len(mono) {
			end = len(mono)
		}
		peak := 0.0
		for _, s := range mono[start:end] {
			if a := math.Abs(s); a > peak {
				peak = a
			}
		}
		out[i] = peak
		if peak > maxPeak {
			maxPeak = peak
		}
	}

	if maxPeak > 0 {
		for i := range out {
			out[i] /= maxPeak
		}
	}
	return out
}
