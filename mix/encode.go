// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/voxsplit/voxsplit/audio"
	wavfmt "github.com/voxsplit/voxsplit/formats/wav"
)

// writeWAV writes the buffer to path as 16-bit PCM.
func writeWAV(buf *audio.Buffer, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := wavfmt.Encode(f, buf); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// encode writes the buffer to path in the requested format. Lossy and
// non-PCM formats go through an intermediate wav file that is handed to
// ffmpeg and removed afterwards.
func encode(buf *audio.Buffer, path string, format Format) error {
	if format == FormatWAV {
		return writeWAV(buf, path)
	}

	tmp := path + ".tmp.wav"
	if err := writeWAV(buf, tmp); err != nil {
		return err
	}
	defer os.Remove(tmp)

	return transcode(tmp, path, format)
}

// transcode shells out to ffmpeg to convert the intermediate wav.
func transcode(src, dst string, format Format) error {
	args := []string{"-y", "-hide_banner", "-loglevel", "error", "-i", src}
	if format == FormatMP3 {
		args = append(args, "-b:a", "192k")
	}
	args = append(args, dst)

	cmd := exec.Command("ffmpeg", args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: ffmpeg: %v: %s", ErrTranscode, err, out)
	}
	return nil
}
