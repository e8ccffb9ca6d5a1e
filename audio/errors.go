// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

// ErrEmptyBuffer is returned by engines handed a nil or zero-frame buffer.
var ErrEmptyBuffer = errors.New("buffer holds no frames")
