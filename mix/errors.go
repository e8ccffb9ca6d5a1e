// SPDX-License-Identifier: EPL-2.0

package mix

import "errors"

var (
	// ErrNoTracks is returned when a mix is requested with no tracks at all.
	ErrNoTracks = errors.New("mix: no tracks")

	// ErrInvalidConfig is returned for out-of-range settings or track
	// controls.
	ErrInvalidConfig = errors.New("mix: invalid configuration")

	// ErrUnsupportedFormat is returned for an output format the mixer
	// cannot write.
	ErrUnsupportedFormat = errors.New("mix: unsupported output format")

	// ErrTranscode is returned when the external encoder fails.
	ErrTranscode = errors.New("mix: transcode failed")
)
