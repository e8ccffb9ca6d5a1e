// SPDX-License-Identifier: EPL-2.0

package separate

import (
	"go.uber.org/zap"

	"github.com/voxsplit/voxsplit/audio"
	"github.com/voxsplit/voxsplit/dsp"
)

// Band identifies one output of the separator.
type Band string

const (
	// BandVocals is the speech band, 80 Hz to 8 kHz.
	BandVocals Band = "vocals"
	// BandOther is everything outside the speech band: low rumble plus
	// high-frequency content.
	BandOther Band = "other"
)

// Engine is the separation contract. Separator satisfies it with band-split
// filtering; a model-backed implementation can be swapped in behind the same
// signature.
type Engine interface {
	Separate(buf *audio.Buffer, bands []Band) (map[Band]*audio.Buffer, error)
}

// Separator splits a recording into a vocal band and a residual band with
// zero-phase Butterworth filters.
type Separator struct {
	log *zap.Logger

	order      int
	lowHz      float64
	highHz     float64
	outputPeak float64
}

// Option configures a Separator.
type Option func(*Separator)

// WithLogger sets the logger; the default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Separator) { s.log = log }
}

// WithBandEdges overrides the vocal band corner frequencies.
func WithBandEdges(lowHz, highHz float64) Option {
	return func(s *Separator) {
		s.lowHz = lowHz
		s.highHz = highHz
	}
}

func New(opts ...Option) *Separator {
	s := &Separator{
		log:        zap.NewNop(),
		order:      4,
		lowHz:      80,
		highHz:     8000,
		outputPeak: 0.95,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Separate splits buf into the requested bands. The input buffer is never
// modified; every returned band is freshly allocated and peak-normalized to
// 0.95 so a later encode cannot clip. An empty band set yields an empty map.
func (s *Separator) Separate(buf *audio.Buffer, bands []Band) (map[Band]*audio.Buffer, error) {
	if buf == nil || buf.Frames() == 0 {
		return nil, audio.ErrEmptyBuffer
	}

	out := make(map[Band]*audio.Buffer, len(bands))
	if len(bands) == 0 {
		return out, nil
	}

	// Work on a peak-normalized copy so filter levels are predictable.
	// A silent buffer passes through Normalize unchanged.
	norm := buf.Normalize(1.0)
	rate := norm.SampleRate()

	s.log.Info("separating bands",
		zap.Int("sample_rate", rate),
		zap.Int("frames", norm.Frames()),
		zap.Int("bands", len(bands)))

	for _, band := range bands {
		switch band {
		case BandVocals:
			out[band] = s.vocalBand(norm)
		case BandOther:
			out[band] = s.residualBand(norm)
		default:
			s.log.Warn("unknown band requested", zap.String("band", string(band)))
		}
	}

	return out, nil
}

// vocalBand band-passes the speech range on every channel.
func (s *Separator) vocalBand(norm *audio.Buffer) *audio.Buffer {
	rate := norm.SampleRate()
	out := audio.New(rate, norm.Channels(), norm.Frames())
	for ch := 0; ch < norm.Channels(); ch++ {
		filtered := dsp.BandPass(norm.Samples(ch), rate, s.lowHz, s.highHz, s.order)
		copy(out.Samples(ch), filtered)
	}
	return out.Normalize(s.outputPeak)
}

// residualBand keeps everything outside the speech range. It is computed
// from the normalized input directly, not as input minus vocals, so the two
// bands do not carry each other's filter artifacts. The trade-off is that
// vocals plus residual need not reconstruct the original exactly.
func (s *Separator) residualBand(norm *audio.Buffer) *audio.Buffer {
	rate := norm.SampleRate()
	out := audio.New(rate, norm.Channels(), norm.Frames())
	for ch := 0; ch < norm.Channels(); ch++ {
		low := dsp.LowPass(norm.Samples(ch), rate, s.lowHz, s.order)
		high := dsp.HighPass(norm.Samples(ch), rate, s.highHz, s.order)
		dst := out.Samples(ch)
		for i := range dst {
			dst[i] = low[i] + high[i]
		}
	}
	return out.Normalize(s.outputPeak)
}
