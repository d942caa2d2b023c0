package processor

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config carries every knob of the preprocessing pipeline. It is built once
// by the caller and passed by value into each component: no global mutable
// state.
type Config struct {
	SampleRate int     `yaml:"sample_rate"`
	WinLength  int     `yaml:"win_length"`
	HopLength  int     `yaml:"hop_length"`
	TopDB      float64 `yaml:"top_db"`
	Segment    float64 `yaml:"segment"` // segment length in seconds

	Normalize            string `yaml:"normalize"` // peak, rms, standard, none
	SegmentNormalization bool   `yaml:"segment_normalization"`

	FFT        bool `yaml:"fft"`
	Center     bool `yaml:"center"`
	PhaseAware bool `yaml:"phase_aware"`

	TrimSilence bool `yaml:"trim_silence"`

	// Split is the train fraction. It only participates in output folder
	// naming; the split itself happens upstream when the corpus is laid out.
	Split float64 `yaml:"split"`

	SavePath string `yaml:"save_path"`
}

// DefaultConfig returns the configuration used for VoiceBank-style corpora.
func DefaultConfig() Config {
	return Config{
		SampleRate: 16000,
		WinLength:  512,
		HopLength:  128,
		TopDB:      20,
		Segment:    2.0,
		Normalize:  NormalizePeak,
		Center:     true,
		Split:      0.9,
		SavePath:   "records",
	}
}

// WithFile overlays values from a YAML config file onto c. Fields absent
// from the file keep their current values.
func (c Config) WithFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.Segment <= 0 {
		return fmt.Errorf("segment must be positive, got %g", c.Segment)
	}
	if c.FFT {
		if c.WinLength <= 0 {
			return fmt.Errorf("win_length must be positive, got %d", c.WinLength)
		}
		if c.HopLength <= 0 {
			return fmt.Errorf("hop_length must be positive, got %d", c.HopLength)
		}
	}
	switch c.Normalize {
	case NormalizePeak, NormalizeRMS, NormalizeStandard, NormalizeNone:
	default:
		return fmt.Errorf("unknown normalize scheme %q", c.Normalize)
	}
	return nil
}

// OutputDir returns the record directory for this configuration. Every
// value that changes record content is encoded into the name so differing
// configurations never collide.
func (c Config) OutputDir(debug bool) string {
	name := fmt.Sprintf("records_seg_%s_train_%d_norm_%s_segnorm_%t_fft_%t_topdb_%s",
		dashDecimal(c.Segment),
		int(c.Split*100),
		c.Normalize,
		c.SegmentNormalization,
		c.FFT,
		dashDecimal(c.TopDB),
	)
	if debug {
		name += "_debug"
	}
	return filepath.Join(c.SavePath, name)
}

// dashDecimal formats a float for use in a directory name, e.g. 2.5 -> "2-5".
func dashDecimal(v float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(v, 'f', -1, 64), ".", "-")
}
