// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams using github.com/hajimehoshi/go-mp3.
//
// The underlying library always produces 16-bit stereo PCM, so decoded
// buffers have two channels even for mono sources.
//
//	f, _ := os.Open("interview.mp3")
//	defer f.Close()
//	buf, err := mp3.Decoder{}.Decode(f)
package mp3
