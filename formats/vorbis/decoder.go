// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/voxsplit/voxsplit/audio"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

// Decoder reads Ogg Vorbis streams into an audio.Buffer.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.Buffer, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return decodeAll(dec)
}

func decodeAll(dec oggReader) (*audio.Buffer, error) {
	channels := dec.Channels()
	if channels <= 0 {
		return nil, ErrNoAudioStream
	}

	var samples []float64
	buf := make([]float32, 4096*channels)
	for {
		n, err := dec.Read(buf)
		for _, v := range buf[:n] {
			samples = append(samples, float64(v))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		if n == 0 {
			break
		}
	}
	return audio.FromInterleaved(dec.SampleRate(), channels, samples), nil
}
