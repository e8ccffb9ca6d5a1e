// SPDX-License-Identifier: EPL-2.0

// Package voxsplit turns a mixed recording into editable per-speaker tracks.
//
// Processing has three stages, each usable on its own: the separate
// package splits a recording into a vocal band and a residual band, the
// diarize package finds who spoke when inside the vocal band, and the mix
// package recombines edited tracks into a final render.
//
// # Supported Formats
//
// The built-in decoder registry handles:
//   - WAV via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF via formats/aiff
//
// # Quick Start
//
// The Pipeline chains decoding, separation and diarization:
//
//	p := voxsplit.NewPipeline(nil)
//	result, err := p.ProcessFile("interview.wav")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, track := range result.Tracks {
//	    fmt.Println(track.Name, track.Duration())
//	}
//
// Each speaker becomes one Track carrying its isolated audio, speech
// segments and a display waveform; the residual band becomes a final
// background track.
//
// # Mixing
//
// Tracks convert directly to mixer inputs:
//
//	var inputs []mix.Track
//	for _, track := range result.Tracks {
//	    inputs = append(inputs, track.MixTrack())
//	}
//	m := mix.New()
//	path, size, err := m.Export(inputs, mix.DefaultSettings(), "out.wav")
//
// # Engines
//
// The underlying engines live in their own packages and accept options
// for logging and tuning:
//
//	sep := separate.New(separate.WithBandEdges(80, 8000))
//	dia := diarize.New()
//	bands, _ := sep.Separate(buf, []separate.Band{separate.BandVocals, separate.BandOther})
//	res, _ := dia.Diarize(bands[separate.BandVocals], diarize.Options{MaxSpeakers: 4})
package voxsplit
