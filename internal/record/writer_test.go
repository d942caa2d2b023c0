package record

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/speechforge/denoiseprep/internal/processor"
)

func waveformResult(name string, segments int) *processor.PairResult {
	wp := &processor.WaveformPair{}
	for i := 0; i < segments; i++ {
		noisy := make([]float64, 8)
		clean := make([]float64, 8)
		for j := range noisy {
			noisy[j] = float64(i) + float64(j)*0.1
			clean[j] = float64(i) - float64(j)*0.1
		}
		wp.Noisy = append(wp.Noisy, noisy)
		wp.Clean = append(wp.Clean, clean)
	}
	return &processor.PairResult{Name: name, SampleRate: 16000, Waveform: wp}
}

func spectralResult(name string) *processor.PairResult {
	samples := make([]float64, 1024)
	for i := range samples {
		samples[i] = float64(i%7) * 0.05
	}
	sp := &processor.SpectralPair{
		Noisy: []*processor.Spectrogram{processor.STFT(samples, 64, 16, true)},
		Clean: []*processor.Spectrogram{processor.STFT(samples, 64, 16, true)},
	}
	return &processor.PairResult{Name: name, SampleRate: 16000, Spectral: sp}
}

func TestWriterRecordPath(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "train")
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}

	got := filepath.Base(w.RecordPath("p226_001", 3))
	if got != "train_p226_001_3.parquet" {
		t.Errorf("RecordPath() base = %q, want %q", got, "train_p226_001_3.parquet")
	}
}

func TestWriterWaveformRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, "train")
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}

	res := waveformResult("p226_001", 2)
	if err := w.WriteResult(res); err != nil {
		t.Fatalf("WriteResult() error: %v", err)
	}
	if w.Written() != 2 {
		t.Errorf("Written() = %d, want 2", w.Written())
	}

	rec, err := ReadWaveform(w.RecordPath("p226_001", 1))
	if err != nil {
		t.Fatalf("ReadWaveform() error: %v", err)
	}

	if rec.Name != "p226_001" {
		t.Errorf("Name = %q, want %q", rec.Name, "p226_001")
	}
	if rec.Index != 1 {
		t.Errorf("Index = %d, want 1", rec.Index)
	}
	if rec.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want 16000", rec.SampleRate)
	}
	if len(rec.Noisy) != 8 || len(rec.Clean) != 8 {
		t.Fatalf("segment lengths = %d/%d, want 8/8", len(rec.Noisy), len(rec.Clean))
	}
	for j := range rec.Noisy {
		want := float32(1.0 + float64(j)*0.1)
		if diff := rec.Noisy[j] - want; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("noisy[%d] = %g, want %g", j, rec.Noisy[j], want)
		}
	}
}

func TestWriterSpectralRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, "test")
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}

	res := spectralResult("p232_014")
	if err := w.WriteResult(res); err != nil {
		t.Fatalf("WriteResult() error: %v", err)
	}

	rec, err := ReadSpectral(w.RecordPath("p232_014", 0))
	if err != nil {
		t.Fatalf("ReadSpectral() error: %v", err)
	}

	if rec.Bins != 33 {
		t.Errorf("Bins = %d, want 33", rec.Bins)
	}
	wantLen := int(rec.Bins) * int(rec.Frames)
	if len(rec.NoisyReal) != wantLen {
		t.Errorf("NoisyReal length = %d, want bins*frames = %d", len(rec.NoisyReal), wantLen)
	}
	if len(rec.CleanImag) != wantLen {
		t.Errorf("CleanImag length = %d, want %d", len(rec.CleanImag), wantLen)
	}
	if len(rec.CleanScaledMag) != 0 {
		t.Errorf("CleanScaledMag length = %d, want 0 without phase-aware", len(rec.CleanScaledMag))
	}

	// Row-major from [bin][frame]: the first Frames entries are bin 0.
	re := res.Spectral.Noisy[0].RealPart()
	for f := 0; f < int(rec.Frames); f++ {
		want := float32(re[0][f])
		if diff := rec.NoisyReal[f] - want; diff > 1e-6 || diff < -1e-6 {
			t.Fatalf("NoisyReal[%d] = %g, want %g (bin 0 must come first)", f, rec.NoisyReal[f], want)
		}
	}
}

func TestWriterSkipsExistingRecords(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, "train")
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}

	res := waveformResult("p226_001", 3)
	if err := w.WriteResult(res); err != nil {
		t.Fatalf("first WriteResult() error: %v", err)
	}

	// A second run over the same pair must not rewrite anything.
	if err := w.WriteResult(res); err != nil {
		t.Fatalf("second WriteResult() error: %v", err)
	}
	if w.Written() != 3 {
		t.Errorf("Written() = %d, want 3", w.Written())
	}
	if w.Skipped() != 3 {
		t.Errorf("Skipped() = %d, want 3", w.Skipped())
	}
}

func TestWriterLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, "train")
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}

	if err := w.WriteResult(waveformResult("p226_001", 2)); err != nil {
		t.Fatalf("WriteResult() error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("stale temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 2 {
		t.Errorf("record count = %d, want 2", len(entries))
	}
}

func TestWriterIgnoresStaleTempFile(t *testing.T) {
	// A crash can leave a .tmp behind. It must not count as an existing
	// record and must be replaced by the real write.
	dir := t.TempDir()
	w, err := NewWriter(dir, "train")
	if err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}

	stale := w.RecordPath("p226_001", 0) + ".tmp"
	if err := os.WriteFile(stale, []byte("truncated"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := w.WriteResult(waveformResult("p226_001", 1)); err != nil {
		t.Fatalf("WriteResult() error: %v", err)
	}

	if w.Skipped() != 0 {
		t.Errorf("Skipped() = %d, want 0 (stale temp must not look like a record)", w.Skipped())
	}
	if w.Written() != 1 {
		t.Errorf("Written() = %d, want 1", w.Written())
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale temp file still present after write")
	}
	if _, err := ReadWaveform(w.RecordPath("p226_001", 0)); err != nil {
		t.Errorf("record unreadable after replacing stale temp: %v", err)
	}
}

func TestNewWriterCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "records", "nested")
	if _, err := NewWriter(dir, "train"); err != nil {
		t.Fatalf("NewWriter() error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("record directory not created: %v", err)
	}
}
