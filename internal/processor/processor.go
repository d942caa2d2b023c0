package processor

import "github.com/speechforge/denoiseprep/internal/audio"

// WaveformPair is the time-domain result for one pair: fixed-length
// segments of the noisy and clean waveforms, index-aligned.
type WaveformPair struct {
	Noisy [][]float64 // [segment][sample]
	Clean [][]float64
}

// SpectralPair is the frequency-domain result for one pair: one STFT per
// segment for each signal. CleanScaledMag is only populated when
// phase-aware scaling is enabled.
type SpectralPair struct {
	Noisy []*Spectrogram
	Clean []*Spectrogram

	// CleanScaledMag holds cleanMag*cos(cleanPhase-noisyPhase) per segment
	// in [bin][frame] layout when Config.PhaseAware is set.
	CleanScaledMag [][][]float64
}

// PairResult is the tagged outcome of processing one pair: exactly one of
// Waveform or Spectral is set, selected by Config.FFT.
type PairResult struct {
	Name       string
	SampleRate int
	Waveform   *WaveformPair
	Spectral   *SpectralPair
}

// Segments returns how many records this result will produce.
func (r *PairResult) Segments() int {
	if r.Waveform != nil {
		return len(r.Waveform.Noisy)
	}
	if r.Spectral != nil {
		return len(r.Spectral.Noisy)
	}
	return 0
}

// ProcessPair runs the full pipeline for one pair: load both waveforms at
// the target rate, optionally trim shared silence, normalize and segment
// in the configured order, and extract STFT components in FFT mode.
// Any failure is fatal to the pair and propagates to the enclosing chunk.
func ProcessPair(pair FilePair, cfg Config) (*PairResult, error) {
	clean, err := audio.ReadMono(pair.Clean, cfg.SampleRate)
	if err != nil {
		return nil, err
	}
	noisy, err := audio.ReadMono(pair.Noisy, cfg.SampleRate)
	if err != nil {
		return nil, err
	}

	if cfg.TrimSilence {
		noisy, clean = TrimSilencePair(noisy, clean, cfg.HopLength, cfg.TopDB)
	}

	if !cfg.SegmentNormalization {
		if clean, err = NormalizeWaveform(clean, cfg.Normalize); err != nil {
			return nil, err
		}
		if noisy, err = NormalizeWaveform(noisy, cfg.Normalize); err != nil {
			return nil, err
		}
	}

	cleanSegs := SegmentWaveform(clean, cfg.SampleRate, cfg.Segment)
	noisySegs := SegmentWaveform(noisy, cfg.SampleRate, cfg.Segment)

	// Source files may differ in length by a few samples. Keep only the
	// segments both signals cover so records always carry a full pair.
	if len(cleanSegs) != len(noisySegs) {
		n := min(len(cleanSegs), len(noisySegs))
		cleanSegs = cleanSegs[:n]
		noisySegs = noisySegs[:n]
	}

	if cfg.SegmentNormalization {
		if cleanSegs, err = NormalizeSegments(cleanSegs, cfg.Normalize); err != nil {
			return nil, err
		}
		if noisySegs, err = NormalizeSegments(noisySegs, cfg.Normalize); err != nil {
			return nil, err
		}
	}

	result := &PairResult{Name: pair.Name(), SampleRate: cfg.SampleRate}
	if !cfg.FFT {
		result.Waveform = &WaveformPair{Noisy: noisySegs, Clean: cleanSegs}
		return result, nil
	}

	spectral := &SpectralPair{
		Noisy: make([]*Spectrogram, len(noisySegs)),
		Clean: make([]*Spectrogram, len(cleanSegs)),
	}
	for i := range noisySegs {
		spectral.Noisy[i] = STFT(noisySegs[i], cfg.WinLength, cfg.HopLength, cfg.Center)
	}
	for i := range cleanSegs {
		spectral.Clean[i] = STFT(cleanSegs[i], cfg.WinLength, cfg.HopLength, cfg.Center)
	}

	if cfg.PhaseAware {
		spectral.CleanScaledMag = make([][][]float64, len(cleanSegs))
		for i := range cleanSegs {
			scaled, err := PhaseAwareScale(
				spectral.Clean[i].Magnitude(),
				spectral.Clean[i].Phase(),
				spectral.Noisy[i].Phase(),
			)
			if err != nil {
				return nil, err
			}
			spectral.CleanScaledMag[i] = scaled
		}
	}

	result.Spectral = spectral
	return result, nil
}
