// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/voxsplit/voxsplit/audio"
)

// Decoder reads AIFF files into an audio.Buffer.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.Buffer, error) {
	// go-audio requires io.ReadSeeker; buffer non-seekable input.
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return bufferFromPCM(pcm, int(dec.BitDepth))
}

// bufferFromPCM converts a go-audio integer buffer to channel-planar
// float64 normalized by the source bit depth.
func bufferFromPCM(pcm *goaudio.IntBuffer, bitDepth int) (*audio.Buffer, error) {
	if pcm == nil || pcm.Format == nil || pcm.Format.NumChannels <= 0 || pcm.Format.SampleRate <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}
	scale := pcmScale(bitDepth)
	samples := make([]float64, len(pcm.Data))
	for i, v := range pcm.Data {
		samples[i] = float64(v) / scale
	}
	return audio.FromInterleaved(pcm.Format.SampleRate, pcm.Format.NumChannels, samples), nil
}

func pcmScale(bitDepth int) float64 {
	switch bitDepth {
	case 8:
		return 128
	case 16:
		return 32768
	case 24:
		return 8388608
	case 32:
		return 2147483648
	default:
		return 32768
	}
}
