// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Preview mixes the tracks, cuts the window [start, start+duration) in
// seconds and writes it to path as wav with short linear fades at both
// edges. It returns the path written. The window is clamped to the mix
// length; a start beyond the end yields an empty clip.
func (m *Mixer) Preview(tracks []Track, s Settings, start, duration float64, path string) (string, error) {
	if start < 0 || duration < 0 {
		return "", fmt.Errorf("%w: preview window start %v duration %v", ErrInvalidConfig, start, duration)
	}

	mixed, rate, err := m.Mix(tracks, s)
	if err != nil {
		return "", err
	}

	from := int(start * float64(rate))
	to := int((start + duration) * float64(rate))
	clip := mixed.Slice(from, to)

	// The clip is a fresh copy, fading in place is safe.
	fade := int(previewFadeSec * float64(rate))
	if clip.Frames() > 2*fade && fade > 0 {
		frames := clip.Frames()
		for ch := 0; ch < clip.Channels(); ch++ {
			samples := clip.Samples(ch)
			for i := 0; i < fade; i++ {
				g := float64(i) / float64(fade)
				samples[i] *= g
				samples[frames-1-i] *= g
			}
		}
	}

	if err := writeWAV(clip, path); err != nil {
		return "", err
	}
	m.log.Info("preview written",
		zap.String("path", path),
		zap.Float64("start", start),
		zap.Float64("duration", clip.Duration()))
	return path, nil
}

// Export mixes the tracks and writes the result to path in the settings'
// format. It returns the path and the size of the written file in bytes.
func (m *Mixer) Export(tracks []Track, s Settings, path string) (string, int64, error) {
	mixed, _, err := m.Mix(tracks, s)
	if err != nil {
		return "", 0, err
	}

	if err := encode(mixed, path, s.Format); err != nil {
		return "", 0, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", 0, fmt.Errorf("stat exported file: %w", err)
	}
	m.log.Info("mix exported",
		zap.String("path", path),
		zap.String("format", string(s.Format)),
		zap.Int64("bytes", info.Size()))
	return path, info.Size(), nil
}
