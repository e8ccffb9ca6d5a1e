// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

// ErrNoAudioStream indicates an ogg container without a usable vorbis
// audio stream.
var ErrNoAudioStream = errors.New("ogg container has no audio stream")
