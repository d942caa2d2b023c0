package audio

import "math"

// Resample converts samples from one rate to another using linear
// interpolation. Speech corpora are typically downsampled (48k/44.1k to
// 16k), where linear interpolation after the decoder's own filtering is
// adequate for training data.
func Resample(samples []float64, fromRate, toRate int) []float64 {
	if fromRate == toRate || len(samples) == 0 {
		out := make([]float64, len(samples))
		copy(out, samples)
		return out
	}

	ratio := float64(toRate) / float64(fromRate)
	outLen := int(math.Round(float64(len(samples)) * ratio))
	if outLen < 1 {
		outLen = 1
	}

	out := make([]float64, outLen)
	for i := range out {
		pos := float64(i) / ratio
		idx := int(pos)
		if idx >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = samples[idx]*(1-frac) + samples[idx+1]*frac
	}
	return out
}
