// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/voxsplit/voxsplit/audio"
	"github.com/voxsplit/voxsplit/dsp"
)

// Format selects the container written by Export.
type Format string

const (
	FormatWAV  Format = "wav"
	FormatMP3  Format = "mp3"
	FormatFLAC Format = "flac"
	FormatOGG  Format = "ogg"
)

// Track pairs one audio buffer with its per-mix controls.
type Track struct {
	ID     string
	Buffer *audio.Buffer
	Muted  bool
	Solo   bool
	Volume float64 // linear gain, 0 to 2
	IsMain bool
}

// Settings are the global controls of one mix request. Boost and noise
// reduction are applied once, multiplicatively, in the linear domain.
type Settings struct {
	MainSpeakerBoostDB  float64
	NoiseReductionLevel float64 // 0 to 1
	Normalize           bool
	Format              Format
	SampleRate          int
}

// DefaultSettings mirror the values a caller gets without any overrides.
func DefaultSettings() Settings {
	return Settings{
		MainSpeakerBoostDB: 3,
		Normalize:          true,
		Format:             FormatWAV,
		SampleRate:         44100,
	}
}

// normalizeTarget is -3 dBFS expressed as a linear peak.
var normalizeTarget = math.Pow(10, -3.0/20)

// previewFadeSec is the fade-in/out applied to preview clips.
const previewFadeSec = 0.1

// Validate rejects out-of-range settings before any sample math runs.
func (s Settings) Validate() error {
	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, s.SampleRate)
	}
	if s.NoiseReductionLevel < 0 || s.NoiseReductionLevel > 1 {
		return fmt.Errorf("%w: noise reduction level %v outside [0, 1]", ErrInvalidConfig, s.NoiseReductionLevel)
	}
	switch s.Format {
	case FormatWAV, FormatMP3, FormatFLAC, FormatOGG:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, s.Format)
	}
	return nil
}

// Mixer recombines separated tracks under mute/solo/gain/boost rules.
type Mixer struct {
	log *zap.Logger
}

// Option configures a Mixer.
type Option func(*Mixer)

// WithLogger sets the logger; the default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(m *Mixer) { m.log = log }
}

func New(opts ...Option) *Mixer {
	m := &Mixer{log: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mix combines the tracks into one stereo buffer at the settings' sample
// rate. The numeric path is deterministic: identical inputs produce
// identical output.
func (m *Mixer) Mix(tracks []Track, s Settings) (*audio.Buffer, int, error) {
	if len(tracks) == 0 {
		return nil, 0, ErrNoTracks
	}
	if err := s.Validate(); err != nil {
		return nil, 0, err
	}
	for _, t := range tracks {
		if t.Buffer == nil {
			return nil, 0, fmt.Errorf("%w: track %q has no audio", ErrInvalidConfig, t.ID)
		}
		if t.Volume < 0 || t.Volume > 2 {
			return nil, 0, fmt.Errorf("%w: track %q volume %v outside [0, 2]", ErrInvalidConfig, t.ID, t.Volume)
		}
	}

	active := activeTracks(tracks)
	if len(active) == 0 {
		// Everything muted: silence matching the first track's native
		// length.
		m.log.Info("all tracks muted, producing silence")
		return audio.New(s.SampleRate, 2, tracks[0].Buffer.Frames()), s.SampleRate, nil
	}

	var mixed *audio.Buffer
	for _, t := range active {
		conditioned := m.conditionTrack(t, s)
		if mixed == nil {
			mixed = conditioned
			continue
		}
		if conditioned.Frames() > mixed.Frames() {
			mixed = mixed.PadTo(conditioned.Frames())
		} else if mixed.Frames() > conditioned.Frames() {
			conditioned = conditioned.PadTo(mixed.Frames())
		}
		for ch := 0; ch < mixed.Channels(); ch++ {
			dst := mixed.Samples(ch)
			add := conditioned.Samples(ch)
			for i := range dst {
				dst[i] += add[i]
			}
		}
	}

	if s.Normalize {
		mixed = mixed.Normalize(normalizeTarget)
	} else if peak := mixed.Peak(); peak > 1 {
		m.log.Warn("clip guard engaged", zap.Float64("peak", peak))
		mixed = mixed.Gain(1 / peak)
	}

	return mixed, s.SampleRate, nil
}

// activeTracks applies the solo/mute rules: soloed-and-unmuted tracks win
// when present, otherwise every unmuted track plays.
func activeTracks(tracks []Track) []Track {
	var soloed []Track
	for _, t := range tracks {
		if t.Solo && !t.Muted {
			soloed = append(soloed, t)
		}
	}
	if len(soloed) > 0 {
		return soloed
	}

	var unmuted []Track
	for _, t := range tracks {
		if !t.Muted {
			unmuted = append(unmuted, t)
		}
	}
	return unmuted
}

// conditionTrack resamples, forces stereo and applies the track's combined
// linear gain in one pass.
func (m *Mixer) conditionTrack(t Track, s Settings) *audio.Buffer {
	buf := t.Buffer
	if buf.SampleRate() != s.SampleRate {
		buf = dsp.ResampleBuffer(buf, s.SampleRate)
	}
	buf = buf.Stereo()

	gain := t.Volume
	if t.IsMain && s.MainSpeakerBoostDB > 0 {
		gain *= math.Pow(10, s.MainSpeakerBoostDB/20)
		m.log.Info("applied main speaker boost",
			zap.String("track", t.ID),
			zap.Float64("boost_db", s.MainSpeakerBoostDB))
	}
	if isNoiseTrack(t.ID) && s.NoiseReductionLevel > 0 {
		gain *= 1 - s.NoiseReductionLevel
		m.log.Info("applied noise reduction",
			zap.String("track", t.ID),
			zap.Float64("level", s.NoiseReductionLevel))
	}

	if gain == 1 {
		return buf
	}
	return buf.Gain(gain)
}

// isNoiseTrack recognizes residual/background tracks by id.
func isNoiseTrack(id string) bool {
	lower := strings.ToLower(id)
	return strings.Contains(lower, "noise") || strings.Contains(lower, "other")
}
