package processor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Amplitude normalization schemes. The ordering relative to segmentation is
// a separate knob (Config.SegmentNormalization): normalizing per segment
// gives each clip the same amplitude envelope, normalizing the full
// waveform preserves relative loudness across clips.
const (
	NormalizePeak     = "peak"     // scale so max |x| == 1
	NormalizeRMS      = "rms"      // scale to a fixed RMS level
	NormalizeStandard = "standard" // zero mean, unit variance
	NormalizeNone     = "none"
)

// rmsTarget is the RMS level the "rms" scheme scales to (-20 dBFS).
const rmsTarget = 0.1

// NormalizeWaveform rescales samples in place according to scheme and
// returns the slice. Silent input is returned unchanged: there is no
// amplitude information to rescale.
func NormalizeWaveform(samples []float64, scheme string) ([]float64, error) {
	if len(samples) == 0 {
		return samples, nil
	}

	switch scheme {
	case NormalizeNone:
		return samples, nil

	case NormalizePeak:
		peak := math.Max(math.Abs(floats.Max(samples)), math.Abs(floats.Min(samples)))
		if peak == 0 {
			return samples, nil
		}
		floats.Scale(1/peak, samples)
		return samples, nil

	case NormalizeRMS:
		sumSq := 0.0
		for _, s := range samples {
			sumSq += s * s
		}
		rms := math.Sqrt(sumSq / float64(len(samples)))
		if rms == 0 {
			return samples, nil
		}
		floats.Scale(rmsTarget/rms, samples)
		return samples, nil

	case NormalizeStandard:
		mean := floats.Sum(samples) / float64(len(samples))
		variance := 0.0
		for _, s := range samples {
			d := s - mean
			variance += d * d
		}
		std := math.Sqrt(variance / float64(len(samples)))
		if std == 0 {
			return samples, nil
		}
		for i := range samples {
			samples[i] = (samples[i] - mean) / std
		}
		return samples, nil

	default:
		return nil, fmt.Errorf("unknown normalize scheme %q", scheme)
	}
}

// NormalizeSegments applies NormalizeWaveform to each segment independently.
func NormalizeSegments(segments [][]float64, scheme string) ([][]float64, error) {
	for i := range segments {
		if _, err := NormalizeWaveform(segments[i], scheme); err != nil {
			return nil, err
		}
	}
	return segments, nil
}
