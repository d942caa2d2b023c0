// Package record serializes processed segments to parquet files, one file
// per segment, and reads them back for verification.
package record

import "github.com/speechforge/denoiseprep/internal/processor"

// WaveformRecord is one time-domain training example: a noisy segment and
// its aligned clean target, both the same fixed length.
type WaveformRecord struct {
	Name       string    `parquet:"name"`
	Index      int32     `parquet:"index"`
	SampleRate int32     `parquet:"sample_rate"`
	Noisy      []float32 `parquet:"noisy"`
	Clean      []float32 `parquet:"clean"`
}

// SpectralRecord is one frequency-domain training example. The tensors are
// flattened row-major from [bin][frame] layout, so Bins and Frames recover
// the original shape and the frequency axis varies slowest.
type SpectralRecord struct {
	Name   string `parquet:"name"`
	Index  int32  `parquet:"index"`
	Bins   int32  `parquet:"bins"`
	Frames int32  `parquet:"frames"`

	NoisyReal []float32 `parquet:"noisy_real"`
	NoisyImag []float32 `parquet:"noisy_imag"`
	CleanReal []float32 `parquet:"clean_real"`
	CleanImag []float32 `parquet:"clean_imag"`

	// CleanScaledMag is empty unless phase-aware scaling was enabled.
	CleanScaledMag []float32 `parquet:"clean_scaled_mag"`
}

// NewWaveformRecord builds the record for segment idx of a time-domain result.
func NewWaveformRecord(name string, idx int, sampleRate int, wp *processor.WaveformPair) WaveformRecord {
	return WaveformRecord{
		Name:       name,
		Index:      int32(idx),
		SampleRate: int32(sampleRate),
		Noisy:      toFloat32(wp.Noisy[idx]),
		Clean:      toFloat32(wp.Clean[idx]),
	}
}

// NewSpectralRecord builds the record for segment idx of a spectral result.
func NewSpectralRecord(name string, idx int, sp *processor.SpectralPair) SpectralRecord {
	noisy := sp.Noisy[idx]
	clean := sp.Clean[idx]
	rec := SpectralRecord{
		Name:      name,
		Index:     int32(idx),
		Bins:      int32(noisy.Bins),
		Frames:    int32(noisy.Frames),
		NoisyReal: flatten(noisy.RealPart()),
		NoisyImag: flatten(noisy.ImagPart()),
		CleanReal: flatten(clean.RealPart()),
		CleanImag: flatten(clean.ImagPart()),
	}
	if sp.CleanScaledMag != nil {
		rec.CleanScaledMag = flatten(sp.CleanScaledMag[idx])
	}
	return rec
}

// flatten concatenates the rows of a [bin][frame] matrix in order.
func flatten(m [][]float64) []float32 {
	if len(m) == 0 {
		return nil
	}
	out := make([]float32, 0, len(m)*len(m[0]))
	for _, row := range m {
		for _, v := range row {
			out = append(out, float32(v))
		}
	}
	return out
}

func toFloat32(s []float64) []float32 {
	out := make([]float32, len(s))
	for i, v := range s {
		out[i] = float32(v)
	}
	return out
}
