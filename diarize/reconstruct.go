// SPDX-License-Identifier: EPL-2.0

package diarize

import "github.com/voxsplit/voxsplit/audio"

// extractSpeakerAudio builds one speaker's isolated track: a buffer shaped
// like src, silent everywhere except the speaker's segments, which are
// copied at their original offsets. Segment edges get a linear crossfade so
// the isolated track has no clicks where speech starts and stops.
func extractSpeakerAudio(src *audio.Buffer, segments []Segment, crossfade int) *audio.Buffer {
	rate := src.SampleRate()
	frames := src.Frames()
	out := audio.New(rate, src.Channels(), frames)

	for _, seg := range segments {
		start := int(seg.Start * float64(rate))
		end := int(seg.End * float64(rate))
		if start < 0 {
			start = 0
		}
		if end > frames {
			end = frames
		}
		if start >= end {
			continue
		}

		length := end - start
		// Fades only when the segment can hold both without overlap.
		fade := crossfade
		if length <= 2*crossfade {
			fade = 0
		}

		for ch := 0; ch < src.Channels(); ch++ {
			in := src.Samples(ch)
			dst := out.Samples(ch)
			copy(dst[start:end], in[start:end])

			for i := 0; i < fade; i++ {
				g := float64(i) / float64(fade)
				dst[start+i] *= g
				dst[end-1-i] *= g
			}
		}
	}
	return out
}
