// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrNotWavFile indicates the input is not a valid wav file.
	ErrNotWavFile = errors.New("not a WAV file")

	// ErrUnsupportedWavLayout indicates a wav file whose format chunk the
	// decoder cannot use.
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
)
