// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files using github.com/go-audio/aiff.
//
// Decoded buffers keep the file's sample rate and channel count; samples
// are normalized to [-1.0, 1.0] by the source bit depth. Non-seekable
// readers are buffered in memory first, because go-audio needs to seek
// between chunks.
package aiff
