// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes WAV files.
//
// Decoding is backed by github.com/go-audio/wav and accepts any PCM bit
// depth the library understands; samples come back as float64 in
// [-1.0, 1.0] at the file's own sample rate and channel count.
//
//	f, _ := os.Open("session.wav")
//	defer f.Close()
//	buf, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//	fmt.Println(buf.SampleRate(), buf.Channels(), buf.Duration())
//
// Non-seekable readers are buffered in memory before decoding, because
// go-audio needs to seek between chunks.
//
// Encoding always writes 16-bit PCM:
//
//	out, _ := os.Create("render.wav")
//	defer out.Close()
//	err := wav.Encode(out, buf)
//
// # Errors
//
//   - ErrNotWavFile: the input is not a RIFF/WAVE stream
//   - ErrUnsupportedWavLayout: the format chunk is unusable
package wav
