package processor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigOutputDir(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		debug  bool
		want   string
	}{
		{
			name:   "defaults",
			mutate: func(c *Config) {},
			want:   "records_seg_2_train_90_norm_peak_segnorm_false_fft_false_topdb_20",
		},
		{
			name: "fractional segment length uses dashes",
			mutate: func(c *Config) {
				c.Segment = 2.5
				c.TopDB = 22.5
			},
			want: "records_seg_2-5_train_90_norm_peak_segnorm_false_fft_false_topdb_22-5",
		},
		{
			name: "spectral mode with per-segment normalization",
			mutate: func(c *Config) {
				c.FFT = true
				c.SegmentNormalization = true
				c.Normalize = NormalizeRMS
			},
			want: "records_seg_2_train_90_norm_rms_segnorm_true_fft_true_topdb_20",
		},
		{
			name:   "debug suffix",
			mutate: func(c *Config) {},
			debug:  true,
			want:   "records_seg_2_train_90_norm_peak_segnorm_false_fft_false_topdb_20_debug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			got := cfg.OutputDir(tt.debug)
			want := filepath.Join("records", tt.want)
			if got != want {
				t.Errorf("OutputDir() = %q, want %q", got, want)
			}
		})
	}
}

func TestConfigOutputDirDistinguishesConfigs(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	b.FFT = true

	if a.OutputDir(false) == b.OutputDir(false) {
		t.Error("differing configurations must not share an output directory")
	}
}

func TestConfigWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("sample_rate: 48000\nnormalize: rms\ntrim_silence: true\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := DefaultConfig().WithFile(path)
	if err != nil {
		t.Fatalf("WithFile() error: %v", err)
	}

	if cfg.SampleRate != 48000 {
		t.Errorf("SampleRate = %d, want 48000", cfg.SampleRate)
	}
	if cfg.Normalize != NormalizeRMS {
		t.Errorf("Normalize = %q, want %q", cfg.Normalize, NormalizeRMS)
	}
	if !cfg.TrimSilence {
		t.Error("TrimSilence = false, want true")
	}
	// Fields absent from the file keep their defaults.
	if cfg.WinLength != 512 {
		t.Errorf("WinLength = %d, want 512", cfg.WinLength)
	}
	if cfg.Segment != 2.0 {
		t.Errorf("Segment = %g, want 2.0", cfg.Segment)
	}
}

func TestConfigWithFileMissing(t *testing.T) {
	if _, err := DefaultConfig().WithFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("WithFile() on a missing file should fail")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "zero sample rate", mutate: func(c *Config) { c.SampleRate = 0 }, wantErr: true},
		{name: "negative segment", mutate: func(c *Config) { c.Segment = -1 }, wantErr: true},
		{name: "unknown scheme", mutate: func(c *Config) { c.Normalize = "loudnorm" }, wantErr: true},
		{name: "fft with zero hop", mutate: func(c *Config) { c.FFT = true; c.HopLength = 0 }, wantErr: true},
		{name: "zero hop without fft is fine", mutate: func(c *Config) { c.HopLength = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
