// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeparatorConfig stores spectral separation parameters.
type SeparatorConfig struct {
	VocalLowHz  float64 `yaml:"vocal_low_hz"`
	VocalHighHz float64 `yaml:"vocal_high_hz"`
}

// DiarizerConfig stores speaker diarization parameters.
type DiarizerConfig struct {
	MaxSpeakers        int     `yaml:"max_speakers"`
	MinSegmentDuration float64 `yaml:"min_segment_duration"`
}

// MixerConfig stores the default mixdown settings.
type MixerConfig struct {
	SampleRate          int     `yaml:"sample_rate"`
	Format              string  `yaml:"format"`
	MainSpeakerBoostDB  float64 `yaml:"main_speaker_boost_db"`
	NoiseReductionLevel float64 `yaml:"noise_reduction_level"`
	Normalize           bool    `yaml:"normalize"`
}

// Config stores the application configuration.
type Config struct {
	Separator SeparatorConfig `yaml:"separator"`
	Diarizer  DiarizerConfig  `yaml:"diarizer"`
	Mixer     MixerConfig     `yaml:"mixer"`
	LogLevel  string          `yaml:"log_level"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Separator: SeparatorConfig{
			VocalLowHz:  80,
			VocalHighHz: 8000,
		},
		Diarizer: DiarizerConfig{
			MaxSpeakers:        10,
			MinSegmentDuration: 0.3,
		},
		Mixer: MixerConfig{
			SampleRate:         44100,
			Format:             "wav",
			MainSpeakerBoostDB: 3,
			Normalize:          true,
		},
		LogLevel: "info",
	}
}

// LoadConfig loads the configuration from the given file path. Fields
// absent from the file keep their defaults.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values no engine would accept.
func (c *Config) Validate() error {
	if c.Separator.VocalLowHz <= 0 || c.Separator.VocalHighHz <= c.Separator.VocalLowHz {
		return fmt.Errorf("separator: vocal band %v-%v Hz is not a valid range",
			c.Separator.VocalLowHz, c.Separator.VocalHighHz)
	}
	if c.Diarizer.MaxSpeakers < 1 {
		return fmt.Errorf("diarizer: max_speakers %d must be at least 1", c.Diarizer.MaxSpeakers)
	}
	if c.Diarizer.MinSegmentDuration < 0 {
		return fmt.Errorf("diarizer: min_segment_duration %v cannot be negative", c.Diarizer.MinSegmentDuration)
	}
	if c.Mixer.SampleRate <= 0 {
		return fmt.Errorf("mixer: sample_rate %d must be positive", c.Mixer.SampleRate)
	}
	if c.Mixer.NoiseReductionLevel < 0 || c.Mixer.NoiseReductionLevel > 1 {
		return fmt.Errorf("mixer: noise_reduction_level %v outside [0, 1]", c.Mixer.NoiseReductionLevel)
	}
	switch c.Mixer.Format {
	case "wav", "mp3", "flac", "ogg":
	default:
		return fmt.Errorf("mixer: unknown format %q", c.Mixer.Format)
	}
	return nil
}
