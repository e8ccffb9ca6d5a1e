// SPDX-License-Identifier: EPL-2.0

// Package mix recombines separated tracks into a single stereo render.
//
// Each track carries its own mute, solo and volume controls; the mixer
// resolves the active set (soloed tracks win over merely unmuted ones),
// resamples everything to the target rate, applies per-track gain, main
// speaker boost and noise reduction, and sums with trailing silence so
// tracks of different lengths line up from zero.
//
//	m := mix.New()
//	out, rate, err := m.Mix([]mix.Track{
//		{ID: "SPEAKER_00", Buffer: voice, Volume: 1, IsMain: true},
//		{ID: "other", Buffer: background, Volume: 0.8},
//	}, mix.DefaultSettings())
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(out.Duration(), rate)
//
// Export writes wav directly; mp3, flac and ogg are produced by writing
// an intermediate wav and handing it to ffmpeg.
package mix
