// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/voxsplit/voxsplit/audio"
	"github.com/voxsplit/voxsplit/utils"
)

// Decoder reads wav files into an audio.Buffer.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.Buffer, error) {
	// go-audio requires io.ReadSeeker; buffer non-seekable input.
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return bufferFromPCM(pcm, int(dec.BitDepth))
}

// Encode writes the buffer to w as 16-bit PCM wav.
func Encode(w io.WriteSeeker, buf *audio.Buffer) error {
	enc := gowav.NewEncoder(w, buf.SampleRate(), 16, buf.Channels(), 1)

	interleaved := buf.Interleaved()
	data := make([]int, len(interleaved))
	for i, s := range interleaved {
		data[i] = int(utils.FloatToInt16(s))
	}
	intBuf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: buf.Channels(),
			SampleRate:  buf.SampleRate(),
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(intBuf); err != nil {
		return fmt.Errorf("write samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav: %w", err)
	}
	return nil
}

// bufferFromPCM converts a go-audio integer buffer to channel-planar
// float64 normalized by the source bit depth.
func bufferFromPCM(pcm *goaudio.IntBuffer, bitDepth int) (*audio.Buffer, error) {
	if pcm == nil || pcm.Format == nil || pcm.Format.NumChannels <= 0 || pcm.Format.SampleRate <= 0 {
		return nil, ErrUnsupportedWavLayout
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
