// SPDX-License-Identifier: EPL-2.0

package voxsplit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voxsplit/voxsplit/audio"
	"github.com/voxsplit/voxsplit/config"
	"github.com/voxsplit/voxsplit/diarize"
	"github.com/voxsplit/voxsplit/formats/aiff"
	"github.com/voxsplit/voxsplit/formats/mp3"
	"github.com/voxsplit/voxsplit/formats/vorbis"
	"github.com/voxsplit/voxsplit/formats/wav"
	"github.com/voxsplit/voxsplit/separate"
)

// ErrUnsupportedFormat is returned for file extensions no registered
// decoder handles.
var ErrUnsupportedFormat = errors.New("voxsplit: unsupported audio format")

// waveformPoints is the display resolution of per-track waveforms.
const waveformPoints = 800

// DefaultRegistry returns a registry with all built-in decoders.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	return r
}

// Result of one processing run: the separated tracks in presentation
// order, speakers first, residual last.
type Result struct {
	SpeakerCount int
	Tracks       []Track
}

// Pipeline chains decoding, band separation and diarization into the
// track list an editor works with.
type Pipeline struct {
	log       *zap.Logger
	registry  *audio.Registry
	separator *separate.Separator
	diarizer  *diarize.Diarizer

	diarizeOpts diarize.Options
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the logger; the default discards everything.
func WithLogger(log *zap.Logger) PipelineOption {
	return func(p *Pipeline) { p.log = log }
}

// WithRegistry replaces the decoder registry.
func WithRegistry(r *audio.Registry) PipelineOption {
	return func(p *Pipeline) { p.registry = r }
}

// NewPipeline builds a pipeline from the configuration. A nil cfg uses
// the defaults.
func NewPipeline(cfg *config.Config, opts ...PipelineOption) *Pipeline {
	if cfg == nil {
		cfg = config.Default()
	}
	p := &Pipeline{
		log:      zap.NewNop(),
		registry: DefaultRegistry(),
		diarizeOpts: diarize.Options{
			MaxSpeakers:        cfg.Diarizer.MaxSpeakers,
			MinSegmentDuration: cfg.Diarizer.MinSegmentDuration,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.separator = separate.New(
		separate.WithLogger(p.log),
		separate.WithBandEdges(cfg.Separator.VocalLowHz, cfg.Separator.VocalHighHz),
	)
	p.diarizer = diarize.New(diarize.WithLogger(p.log))
	return p
}

// DecodeFile opens path and decodes it with the decoder registered for
// its extension.
func (p *Pipeline) DecodeFile(path string) (*audio.Buffer, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	dec, ok := p.registry.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	buf, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return buf, nil
}

// Process separates the recording into vocal and residual bands,
// diarizes the vocal band and assembles the track list.
func (p *Pipeline) Process(buf *audio.Buffer) (*Result, error) {
	p.log.Info("separating bands", zap.Float64("duration", buf.Duration()))
	bands, err := p.separator.Separate(buf, []separate.Band{separate.BandVocals, separate.BandOther})
	if err != nil {
		return nil, fmt.Errorf("separate: %w", err)
	}

	p.log.Info("diarizing vocal band")
	dr, err := p.diarizer.Diarize(bands[separate.BandVocals], p.diarizeOpts)
	if err != nil {
		return nil, fmt.Errorf("diarize: %w", err)
	}

	speakerIDs := make([]string, 0, len(dr.Speakers))
	for id := range dr.Speakers {
		speakerIDs = append(speakerIDs, id)
	}
	sort.Strings(speakerIDs)

	tracks := make([]Track, 0, len(speakerIDs)+1)
	for i, speakerID := range speakerIDs {
		var segments []diarize.Segment
		for _, seg := range dr.Segments {
			if seg.SpeakerID == speakerID {
				segments = append(segments, seg)
			}
		}
		sbuf := dr.Speakers[speakerID]
		tracks = append(tracks, Track{
			ID:        uuid.NewString(),
			SpeakerID: speakerID,
			Name:      fmt.Sprintf("Speaker %d", i+1),
			Kind:      TrackSpeaker,
			Color:     SpeakerColor(i),
			Buffer:    sbuf,
			Segments:  segments,
			Waveform:  audio.Waveform(sbuf, waveformPoints),
		})
	}

	residual := bands[separate.BandOther]
	tracks = append(tracks, Track{
		ID:       uuid.NewString(),
		Name:     "Background / Noise",
		Kind:     TrackResidual,
		Color:    NoiseColor,
		Buffer:   residual,
		Waveform: audio.Waveform(residual, waveformPoints),
	})

	p.log.Info("processing complete",
		zap.Int("speakers", dr.SpeakerCount),
		zap.Int("tracks", len(tracks)))
	return &Result{SpeakerCount: dr.SpeakerCount, Tracks: tracks}, nil
}

// ProcessFile decodes path and runs Process on the result.
func (p *Pipeline) ProcessFile(path string) (*Result, error) {
	buf, err := p.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return p.Process(buf)
}

// EstimateProcessingTime is a conservative wall-clock estimate in seconds
// for processing a recording of the given duration.
func EstimateProcessingTime(durationSeconds float64) float64 {
	separation := durationSeconds * 3
	diarization := durationSeconds * 2
	return separation + diarization
}
