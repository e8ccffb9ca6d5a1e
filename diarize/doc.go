// SPDX-License-Identifier: EPL-2.0

// Package diarize answers "who speaks when" for a single recording and
// rebuilds one isolated audio stream per speaker.
//
// The pipeline is energy-and-timbre based: frames of 25 ms at a 10 ms hop are
// scored for RMS energy and a 13-coefficient cepstral envelope; frames louder
// than 0.3 times the mean energy form voiced runs; each run's cepstral mean
// and deviation become its embedding; and Ward-linkage clustering over cosine
// distances groups runs into speakers.
//
//	dia := diarize.New()
//	res, err := dia.Diarize(vocals, diarize.Options{MaxSpeakers: 10})
//	for id, track := range res.Speakers {
//		// track is the input with everything but this speaker silenced
//	}
//
// Failure semantics: nothing past input validation is fatal. No detected
// speech returns the whole buffer as a single speaker; clustering failures
// degrade to one speaker; NaN distances and zero-length segments are clamped.
// The estimate of the speaker count (one per five voiced runs, capped by
// MaxSpeakers) is a heuristic, not a guarantee, and can miss on short
// recordings.
package diarize
