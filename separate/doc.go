// SPDX-License-Identifier: EPL-2.0

// Package separate splits a recording into a vocal band and a residual band.
//
// The Separator is a filtering implementation of the separation contract: a
// zero-phase band-pass isolates the speech range, and the residual is the
// low-pass plus high-pass complement computed from the same input. Both
// outputs are re-peak-normalized to 0.95 so downstream encoding cannot clip.
//
//	sep := separate.New()
//	bands, err := sep.Separate(buf, []separate.Band{separate.BandVocals, separate.BandOther})
//	vocals := bands[separate.BandVocals]
//
// The Engine interface exists so a higher-quality model-backed separator can
// replace the filter implementation without touching callers; pick the
// implementation once at construction, not per call.
package separate
