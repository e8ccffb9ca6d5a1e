// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/voxsplit/voxsplit/audio"
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// Decoder reads mp3 streams into an audio.Buffer.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.Buffer, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return decodeAll(dec)
}

// decodeAll drains the decoder. go-mp3 always emits 16-bit little-endian
// stereo PCM regardless of the source layout.
func decodeAll(dec mp3Reader) (*audio.Buffer, error) {
	var samples []float64
	buf := make([]byte, 8192)
	for {
		n, err := dec.Read(buf)
		for i := 0; i < n/2; i++ {
			v := int16(binary.LittleEndian.Uint16(buf[2*i:]))
			samples = append(samples, float64(v)/32768.0)
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
	return audio.FromInterleaved(dec.SampleRate(), 2, samples), nil
}
