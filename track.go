// SPDX-License-Identifier: EPL-2.0

package voxsplit

import (
	"github.com/voxsplit/voxsplit/audio"
	"github.com/voxsplit/voxsplit/diarize"
	"github.com/voxsplit/voxsplit/mix"
)

// speakerColors is the palette assigned to speaker tracks in order.
var speakerColors = []string{
	"#3B82F6", // blue
	"#EF4444", // red
	"#10B981", // green
	"#F59E0B", // amber
	"#8B5CF6", // purple
	"#EC4899", // pink
	"#06B6D4", // cyan
	"#F97316", // orange
	"#6366F1", // indigo
	"#84CC16", // lime
}

// NoiseColor marks the residual/background track in a UI.
const NoiseColor = "#6B7280"

// SpeakerColor returns a stable color for a speaker index; the palette
// wraps around.
func SpeakerColor(index int) string {
	if index < 0 {
		index = 0
	}
	return speakerColors[index%len(speakerColors)]
}

// TrackKind tells speaker tracks apart from the residual band.
type TrackKind string

const (
	TrackSpeaker  TrackKind = "speaker"
	TrackResidual TrackKind = "residual"
)

// Track is one separated stem plus its presentation metadata.
type Track struct {
	ID        string // unique per processing run
	SpeakerID string // diarization label, empty for the residual track
	Name      string
	Kind      TrackKind
	Color     string
	Buffer    *audio.Buffer
	Segments  []diarize.Segment
	Waveform  []float64
}

// Duration of the track's audio in seconds.
func (t *Track) Duration() float64 {
	if t.Buffer == nil {
		return 0
	}
	return t.Buffer.Duration()
}

// MixTrack converts the track to a mixer input at unity gain. The
// residual track gets the id the mixer's noise reduction recognizes.
func (t *Track) MixTrack() mix.Track {
	id := t.SpeakerID
	if t.Kind == TrackResidual {
		id = "noise"
	}
	return mix.Track{
		ID:     id,
		Buffer: t.Buffer,
		Volume: 1,
	}
}
