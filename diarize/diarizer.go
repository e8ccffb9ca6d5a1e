// SPDX-License-Identifier: EPL-2.0

package diarize

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/voxsplit/voxsplit/audio"
	"github.com/voxsplit/voxsplit/dsp"
)

// Segment is a span of audio attributed to one speaker.
type Segment struct {
	SpeakerID  string
	Start      float64 // seconds
	End        float64 // seconds
	Confidence float64
}

// Result of a diarization run.
type Result struct {
	SpeakerCount int
	Segments     []Segment
	// Speakers maps each speaker id to its isolated audio: the input with
	// everything outside that speaker's segments silenced.
	Speakers map[string]*audio.Buffer
}

// Options bound a diarization run.
type Options struct {
	// MinSpeakers is advisory; the energy-based estimator never returns
	// fewer than one speaker regardless.
	MinSpeakers int
	// MaxSpeakers caps the speaker count estimate. Zero means 10.
	MaxSpeakers int
	// MinSegmentDuration drops voiced runs shorter than this many
	// seconds. Zero means 0.3.
	MinSegmentDuration float64
}

// Engine is the diarization contract, satisfied by Diarizer and by any
// model-backed replacement.
type Engine interface {
	Diarize(buf *audio.Buffer, opts Options) (*Result, error)
}

// Diarizer finds who speaks when: voice-activity detection over energy,
// cepstral timbre features per voiced run, Ward clustering into speaker
// identities, and per-speaker audio reconstruction.
type Diarizer struct {
	log *zap.Logger

	analysisRate int
	hopSec       float64
	winSec       float64
	vadRatio     float64
	crossfadeSec float64
	confidence   float64
}

// Option configures a Diarizer.
type Option func(*Diarizer)

// WithLogger sets the logger; the default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(d *Diarizer) { d.log = log }
}

func New(opts ...Option) *Diarizer {
	d := &Diarizer{
		log:          zap.NewNop(),
		analysisRate: 16000,
		hopSec:       0.010,
		winSec:       0.025,
		vadRatio:     0.3,
		crossfadeSec: 0.010,
		confidence:   0.7,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// voicedRun is a span of consecutive voiced frames in analysis-frame units.
type voicedRun struct {
	start, end int // frame indices, end exclusive
}

// Diarize segments buf by speaker. No internal failure is fatal: clustering
// problems degrade to a single speaker, and numeric edge cases are clamped.
// Only an empty input returns an error.
func (d *Diarizer) Diarize(buf *audio.Buffer, opts Options) (*Result, error) {
	if buf == nil || buf.Frames() == 0 {
		return nil, audio.ErrEmptyBuffer
	}
	if opts.MaxSpeakers <= 0 {
		opts.MaxSpeakers = 10
	}
	if opts.MinSegmentDuration <= 0 {
		opts.MinSegmentDuration = 0.3
	}

	// Analyze a mono mixdown at a reduced rate; timbre lives well below
	// 8 kHz and the decimation keeps feature extraction cheap.
	mono := buf.Mono()
	rate := mono.SampleRate()
	samples := mono.Samples(0)
	analysisRate := d.analysisRate
	if rate > analysisRate {
		samples = dsp.ResampleCubic(samples, rate, analysisRate)
	} else {
		analysisRate = rate
	}

	hop := int(d.hopSec * float64(analysisRate))
	win := int(d.winSec * float64(analysisRate))
	if hop < 1 {
		hop = 1
	}

	energies, cepstra := d.frameFeatures(samples, analysisRate, hop, win)
	runs := d.detectVoicedRuns(energies, opts.MinSegmentDuration, hop, analysisRate)

	if len(runs) == 0 {
		d.log.Info("no voiced runs detected, returning whole buffer as one speaker")
		return d.wholeBufferResult(buf), nil
	}

	labels, speakerCount := d.clusterRuns(runs, cepstra, opts.MaxSpeakers)

	frameToTime := func(f int) float64 {
		return float64(f*hop) / float64(analysisRate)
	}

	segments := make([]Segment, len(runs))
	bySpeaker := make(map[string][]Segment)
	for i, run := range runs {
		id := fmt.Sprintf("SPEAKER_%02d", labels[i])
		seg := Segment{
			SpeakerID:  id,
			Start:      frameToTime(run.start),
			End:        frameToTime(run.end),
			Confidence: d.confidence,
		}
		segments[i] = seg
		bySpeaker[id] = append(bySpeaker[id], seg)
	}
	sort.Slice(segments, func(i, j int) bool { return segments[i].Start < segments[j].Start })

	speakers := make(map[string]*audio.Buffer, len(bySpeaker))
	crossfade := int(d.crossfadeSec * float64(rate))
	for id, segs := range bySpeaker {
		speakers[id] = extractSpeakerAudio(buf, segs, crossfade)
	}

	d.log.Info("diarization complete",
		zap.Int("speakers", speakerCount),
		zap.Int("segments", len(segments)))

	return &Result{
		SpeakerCount: speakerCount,
		Segments:     segments,
		Speakers:     speakers,
	}, nil
}

// frameFeatures slides the analysis window over the signal, computing RMS
// energy and cepstra per frame.
func (d *Diarizer) frameFeatures(samples []float64, rate, hop, win int) ([]float64, [][]float64) {
	if win > len(samples) {
		return nil, nil
	}

	extractor := newFeatureExtractor(rate, win)
	var energies []float64
	var cepstra [][]float64
	for start := 0; start+win <= len(samples); start += hop {
		frame := samples[start : start+win]
		energies = append(energies, rms(frame))
		cepstra = append(cepstra, extractor.cepstra(frame))
	}
	return energies, cepstra
}

// detectVoicedRuns thresholds frame energy at vadRatio times the mean and
// collects consecutive voiced frames. A run survives only if longer than
// minDuration; runs never merge across an unvoiced gap.
func (d *Diarizer) detectVoicedRuns(energies []float64, minDuration float64, hop, rate int) []voicedRun {
	if len(energies) == 0 {
		return nil
	}

	mean := 0.0
	for _, e := range energies {
		mean += e
	}
	mean /= float64(len(energies))
	threshold := d.vadRatio * mean

	minFrames := int(minDuration * float64(rate) / float64(hop))

	var runs []voicedRun
	inRun := false
	start := 0
	for i, e := range energies {
		voiced := e > threshold
		switch {
		case voiced && !inRun:
			start = i
			inRun = true
		case !voiced && inRun:
			if i-start > minFrames {
				runs = append(runs, voicedRun{start: start, end: i})
			}
			inRun = false
		}
	}
	if inRun && len(energies)-start > minFrames {
		runs = append(runs, voicedRun{start: start, end: len(energies)})
	}
	return runs
}

// clusterRuns groups voiced runs into speaker identities. Failures are
// logged and degrade to a single speaker rather than propagating.
func (d *Diarizer) clusterRuns(runs []voicedRun, cepstra [][]float64, maxSpeakers int) ([]int, int) {
	estimate := len(runs) / 5
	if estimate < 1 {
		estimate = 1
	}
	if estimate > maxSpeakers {
		estimate = maxSpeakers
	}

	labels := make([]int, len(runs))
	if len(runs) < 2 || estimate < 2 {
		return labels, 1
	}

	features := make([][]float64, len(runs))
	for i, run := range runs {
		features[i] = segmentEmbedding(cepstra[run.start:run.end])
	}

	clustered, err := wardCluster(pairwiseDistances(features), estimate)
	if err != nil {
		d.log.Warn("clustering failed, falling back to single speaker", zap.Error(err))
		return labels, 1
	}

	distinct := make(map[int]struct{}, estimate)
	for _, l := range clustered {
		distinct[l] = struct{}{}
	}
	return clustered, len(distinct)
}

// wholeBufferResult is the degenerate one-speaker answer: a single segment
// spanning the entire input, reconstructed audio identical to the input.
func (d *Diarizer) wholeBufferResult(buf *audio.Buffer) *Result {
	const id = "SPEAKER_00"
	return &Result{
		SpeakerCount: 1,
		Segments: []Segment{{
			SpeakerID:  id,
			Start:      0,
			End:        buf.Duration(),
			Confidence: 1.0,
		}},
		Speakers: map[string]*audio.Buffer{id: buf.Clone()},
	}
}
