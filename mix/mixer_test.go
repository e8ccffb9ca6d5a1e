// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"

	"github.com/voxsplit/voxsplit/internal/audiotest"
)

func flatSettings() Settings {
	s := DefaultSettings()
	s.Normalize = false
	s.MainSpeakerBoostDB = 0
	return s
}

func TestMix_AllMutedProducesSilence(t *testing.T) {
	t.Parallel()

	tracks := []Track{
		{ID: "SPEAKER_00", Buffer: audiotest.Constant(44100, 1, 44100, 0.5), Muted: true, Volume: 1},
		{ID: "other", Buffer: audiotest.Constant(44100, 1, 22050, 0.3), Muted: true, Volume: 1},
	}

	out, rate, err := New().Mix(tracks, flatSettings())
	require.NoError(t, err)
	require.Equal(t, 44100, rate)
	require.Equal(t, 2, out.Channels())
	require.Equal(t, tracks[0].Buffer.Frames(), out.Frames())
	require.Zero(t, out.Peak())
}

func TestMix_SoloSelectsOnlySoloedTracks(t *testing.T) {
	t.Parallel()

	a := audiotest.Constant(44100, 1, 44100, 0.2)
	b := audiotest.Constant(44100, 1, 44100, 0.3)

	soloed, _, err := New().Mix([]Track{
		{ID: "a", Buffer: a, Solo: true, Volume: 1},
		{ID: "b", Buffer: b, Volume: 1},
	}, flatSettings())
	require.NoError(t, err)

	alone, _, err := New().Mix([]Track{
		{ID: "a", Buffer: a, Volume: 1},
	}, flatSettings())
	require.NoError(t, err)

	require.Equal(t, alone.Frames(), soloed.Frames())
	for ch := 0; ch < soloed.Channels(); ch++ {
		require.Equal(t, alone.Samples(ch), soloed.Samples(ch))
	}
}

func TestMix_Deterministic(t *testing.T) {
	t.Parallel()

	tracks := []Track{
		{ID: "SPEAKER_00", Buffer: audiotest.Sine(22050, 1, 22050, 440, 0.4), Volume: 1.1, IsMain: true},
		{ID: "other", Buffer: audiotest.Sine(22050, 1, 33075, 180, 0.2), Volume: 0.7},
	}
	s := DefaultSettings()

	first, _, err := New().Mix(tracks, s)
	require.NoError(t, err)
	second, _, err := New().Mix(tracks, s)
	require.NoError(t, err)

	require.Equal(t, first.Frames(), second.Frames())
	for ch := 0; ch < first.Channels(); ch++ {
		require.Equal(t, first.Samples(ch), second.Samples(ch))
	}
}

func TestMix_ShorterTrackPaddedWithSilence(t *testing.T) {
	t.Parallel()

	long := audiotest.Constant(44100, 1, 5*44100, 0.2)
	short := audiotest.Constant(44100, 1, 3*44100, 0.3)

	out, rate, err := New().Mix([]Track{
		{ID: "long", Buffer: long, Volume: 1},
		{ID: "short-speaker", Buffer: short, Volume: 1},
	}, flatSettings())
	require.NoError(t, err)

	require.Equal(t, 5*44100, out.Frames())
	samples := out.Samples(0)
	require.InDelta(t, 0.5, samples[2*rate], 1e-9)
	require.InDelta(t, 0.2, samples[4*rate], 1e-9)
}

func TestMix_NormalizeTargetsMinusThreeDBFS(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	s.MainSpeakerBoostDB = 0
	out, _, err := New().Mix([]Track{
		{ID: "a", Buffer: audiotest.Sine(44100, 1, 44100, 440, 0.1), Volume: 1},
	}, s)
	require.NoError(t, err)

	require.InDelta(t, math.Pow(10, -3.0/20), out.Peak(), 1e-6)
}

func TestMix_ClipGuardWithoutNormalize(t *testing.T) {
	t.Parallel()

	out, _, err := New().Mix([]Track{
		{ID: "a", Buffer: audiotest.Constant(44100, 1, 4410, 0.8), Volume: 1},
		{ID: "b", Buffer: audiotest.Constant(44100, 1, 4410, 0.8), Volume: 1},
	}, flatSettings())
	require.NoError(t, err)

	require.InDelta(t, 1.0, out.Peak(), 1e-9)
}

func TestMix_MainSpeakerBoost(t *testing.T) {
	t.Parallel()

	s := flatSettings()
	s.MainSpeakerBoostDB = 6

	out, _, err := New().Mix([]Track{
		{ID: "SPEAKER_00", Buffer: audiotest.Constant(44100, 1, 4410, 0.1), Volume: 1, IsMain: true},
	}, s)
	require.NoError(t, err)

	want := 0.1 * math.Pow(10, 6.0/20)
	require.InDelta(t, want, out.Samples(0)[100], 1e-9)
}

func TestMix_NoiseReductionAttenuatesResidual(t *testing.T) {
	t.Parallel()

	s := flatSettings()
	s.NoiseReductionLevel = 0.5

	out, _, err := New().Mix([]Track{
		{ID: "other", Buffer: audiotest.Constant(44100, 1, 4410, 0.4), Volume: 1},
	}, s)
	require.NoError(t, err)

	require.InDelta(t, 0.2, out.Samples(0)[100], 1e-9)
}

func TestMix_ResamplesToTargetRate(t *testing.T) {
	t.Parallel()

	out, rate, err := New().Mix([]Track{
		{ID: "a", Buffer: audiotest.Sine(22050, 1, 22050, 440, 0.3), Volume: 1},
	}, flatSettings())
	require.NoError(t, err)

	require.Equal(t, 44100, rate)
	require.Equal(t, 44100, out.Frames())
}

func TestMix_MonoInputBecomesStereo(t *testing.T) {
	t.Parallel()

	out, _, err := New().Mix([]Track{
		{ID: "a", Buffer: audiotest.Constant(44100, 1, 4410, 0.25), Volume: 1},
	}, flatSettings())
	require.NoError(t, err)

	require.Equal(t, 2, out.Channels())
	require.Equal(t, out.Samples(0), out.Samples(1))
}

func TestMix_Validation(t *testing.T) {
	t.Parallel()

	buf := audiotest.Constant(44100, 1, 100, 0.1)

	tests := []struct {
		name    string
		tracks  []Track
		mutate  func(*Settings)
		wantErr error
	}{
		{
			name:    "no tracks",
			tracks:  nil,
			mutate:  func(*Settings) {},
			wantErr: ErrNoTracks,
		},
		{
			name:    "nil buffer",
			tracks:  []Track{{ID: "a", Volume: 1}},
			mutate:  func(*Settings) {},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "volume above range",
			tracks:  []Track{{ID: "a", Buffer: buf, Volume: 2.5}},
			mutate:  func(*Settings) {},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "negative volume",
			tracks:  []Track{{ID: "a", Buffer: buf, Volume: -1}},
			mutate:  func(*Settings) {},
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "noise level above one",
			tracks:  []Track{{ID: "a", Buffer: buf, Volume: 1}},
			mutate:  func(s *Settings) { s.NoiseReductionLevel = 1.5 },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "zero sample rate",
			tracks:  []Track{{ID: "a", Buffer: buf, Volume: 1}},
			mutate:  func(s *Settings) { s.SampleRate = 0 },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "unknown format",
			tracks:  []Track{{ID: "a", Buffer: buf, Volume: 1}},
			mutate:  func(s *Settings) { s.Format = "aac" },
			wantErr: ErrUnsupportedFormat,
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := flatSettings()
			tc.mutate(&s)
			_, _, err := New().Mix(tc.tracks, s)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func decodeWAV(t *testing.T, path string) (*wav.Decoder, []int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	d := wav.NewDecoder(f)
	pcm, err := d.FullPCMBuffer()
	require.NoError(t, err)
	return d, pcm.Data
}

func TestPreview_WritesFadedClip(t *testing.T) {
	t.Parallel()

	s := flatSettings()
	s.SampleRate = 8000
	tracks := []Track{
		{ID: "a", Buffer: audiotest.Constant(8000, 1, 16000, 0.4), Volume: 1},
	}

	path := filepath.Join(t.TempDir(), "preview.wav")
	got, err := New().Preview(tracks, s, 0.5, 1.0, path)
	require.NoError(t, err)
	require.Equal(t, path, got)

	d, data := decodeWAV(t, path)
	require.EqualValues(t, 2, d.NumChans)
	require.EqualValues(t, 8000, d.SampleRate)
	require.Len(t, data, 8000*2)

	// First sample sits at fade gain zero, the midpoint is untouched.
	require.Zero(t, data[0])
	mid := data[len(data)/2]
	require.InDelta(t, 0.4*32768, float64(mid), 0.5)
}

func TestPreview_WindowBeyondEndYieldsEmptyClip(t *testing.T) {
	t.Parallel()

	s := flatSettings()
	s.SampleRate = 8000
	tracks := []Track{
		{ID: "a", Buffer: audiotest.Constant(8000, 1, 8000, 0.4), Volume: 1},
	}

	path := filepath.Join(t.TempDir(), "empty.wav")
	_, err := New().Preview(tracks, s, 10, 1, path)
	require.NoError(t, err)

	_, data := decodeWAV(t, path)
	require.Empty(t, data)
}

func TestPreview_NegativeWindowRejected(t *testing.T) {
	t.Parallel()

	tracks := []Track{
		{ID: "a", Buffer: audiotest.Constant(8000, 1, 8000, 0.4), Volume: 1},
	}
	_, err := New().Preview(tracks, flatSettings(), -1, 1, filepath.Join(t.TempDir(), "x.wav"))
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestExport_WAV(t *testing.T) {
	t.Parallel()

	s := flatSettings()
	s.SampleRate = 8000
	tracks := []Track{
		{ID: "a", Buffer: audiotest.Sine(8000, 1, 8000, 440, 0.5), Volume: 1},
	}

	path := filepath.Join(t.TempDir(), "mix.wav")
	got, size, err := New().Export(tracks, s, path)
	require.NoError(t, err)
	require.Equal(t, path, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, info.Size(), size)
	require.Greater(t, size, int64(44))
}

func TestExport_MP3RemovesIntermediate(t *testing.T) {
	t.Parallel()
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not available")
	}

	s := flatSettings()
	s.SampleRate = 8000
	s.Format = FormatMP3
	tracks := []Track{
		{ID: "a", Buffer: audiotest.Sine(8000, 1, 8000, 440, 0.5), Volume: 1},
	}

	path := filepath.Join(t.TempDir(), "mix.mp3")
	_, size, err := New().Export(tracks, s, path)
	require.NoError(t, err)
	require.Greater(t, size, int64(0))

	_, err = os.Stat(path + ".tmp.wav")
	require.True(t, os.IsNotExist(err))
}

func BenchmarkMix(b *testing.B) {
	tracks := []Track{
		{ID: "SPEAKER_00", Buffer: audiotest.Sine(44100, 1, 5*44100, 440, 0.4), Volume: 1, IsMain: true},
		{ID: "other", Buffer: audiotest.Sine(44100, 1, 5*44100, 180, 0.2), Volume: 0.8},
	}
	s := DefaultSettings()
	m := New()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, _, err := m.Mix(tracks, s); err != nil {
			b.Fatal(err)
		}
	}
}
