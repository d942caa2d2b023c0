package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/speechforge/denoiseprep/internal/processor"
)

// ReportData carries everything the run report needs.
type ReportData struct {
	CleanDir  string
	NoisyDir  string
	OutputDir string
	Prefix    string

	Config   processor.Config
	Parallel bool
	Workers  int
	Debug    bool

	StartTime time.Time
	EndTime   time.Time

	Pairs          int
	RecordsWritten int
	RecordsSkipped int
}

// GenerateReport writes a plain-text run report into the record directory
// so every record set documents how it was produced. The report file is
// named <prefix>-run.log.
func GenerateReport(data ReportData) error {
	logPath := filepath.Join(data.OutputDir, data.Prefix+"-run.log")

	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("create report %s: %w", logPath, err)
	}
	defer f.Close()

	fmt.Fprintln(f, "Denoiseprep Run Report")
	fmt.Fprintln(f, "======================")
	fmt.Fprintf(f, "Clean corpus: %s\n", data.CleanDir)
	fmt.Fprintf(f, "Noisy corpus: %s\n", data.NoisyDir)
	fmt.Fprintf(f, "Records:      %s\n", data.OutputDir)
	fmt.Fprintf(f, "Completed:    %s\n", data.EndTime.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintln(f, "")

	writeSection(f, "Configuration")
	cfg := &MetricTable{}
	cfg.AddInt("Sample rate", data.Config.SampleRate, "Hz")
	cfg.Add("Segment length", fmt.Sprintf("%g", data.Config.Segment), "s")
	cfg.Add("Normalize", data.Config.Normalize, "")
	cfg.Add("Per-segment normalization", fmt.Sprintf("%t", data.Config.SegmentNormalization), "")
	cfg.Add("Trim silence", fmt.Sprintf("%t", data.Config.TrimSilence), "")
	if data.Config.TrimSilence {
		cfg.Add("Silence threshold", fmt.Sprintf("%g", data.Config.TopDB), "dB")
	}
	cfg.Add("Spectral mode", fmt.Sprintf("%t", data.Config.FFT), "")
	if data.Config.FFT {
		cfg.AddInt("Window length", data.Config.WinLength, "samples")
		cfg.AddInt("Hop length", data.Config.HopLength, "samples")
		cfg.Add("Centered frames", fmt.Sprintf("%t", data.Config.Center), "")
		cfg.Add("Phase-aware target", fmt.Sprintf("%t", data.Config.PhaseAware), "")
	}
	fmt.Fprint(f, cfg.String())
	fmt.Fprintln(f, "")

	writeSection(f, "Run Summary")
	sum := &MetricTable{}
	sum.AddInt("Pairs processed", data.Pairs, "")
	sum.AddInt("Records written", data.RecordsWritten, "")
	sum.AddInt("Records skipped", data.RecordsSkipped, "")
	mode := "sequential"
	if data.Parallel {
		mode = fmt.Sprintf("parallel (%d workers)", data.Workers)
	}
	sum.Add("Mode", mode, "")
	if data.Debug {
		sum.Add("Debug", "true", "")
	}
	sum.Add("Elapsed", formatDuration(data.EndTime.Sub(data.StartTime)), "")
	fmt.Fprint(f, sum.String())

	return nil
}

// writeSection writes a section header with a dashed underline matching the
// title length.
func writeSection(f *os.File, title string) {
	fmt.Fprintln(f, title)
	fmt.Fprintln(f, strings.Repeat("-", len(title)))
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	if minutes < 60 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	hours := minutes / 60
	minutes = minutes % 60
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}
