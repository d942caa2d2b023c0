package processor

import "math"

// TrimSilencePair removes low-energy spans from a clean/noisy pair. The
// gate is computed on the noisy waveform only and the same kept intervals
// are applied to both signals, so the pair stays sample-aligned.
//
// A frame is kept when its RMS level is within topDB of the loudest frame.
// Frames are hop samples long; partial trailing frames are gated like any
// other frame.
func TrimSilencePair(noisy, clean []float64, hop int, topDB float64) ([]float64, []float64) {
	if hop <= 0 || len(noisy) == 0 {
		return noisy, clean
	}
	n := len(noisy)
	if len(clean) < n {
		n = len(clean)
	}

	frames := (n + hop - 1) / hop
	rms := make([]float64, frames)
	ref := 0.0
	for f := 0; f < frames; f++ {
		start := f * hop
		end := start + hop
		if end > n {
			end = n
		}
		sumSq := 0.0
		for _, s := range noisy[start:end] {
			sumSq += s * s
		}
		rms[f] = math.Sqrt(sumSq / float64(end-start))
		if rms[f] > ref {
			ref = rms[f]
		}
	}
	if ref == 0 {
		// Entirely silent: nothing to keep.
		return nil, nil
	}

	threshold := ref * math.Pow(10, -topDB/20)

	outNoisy := make([]float64, 0, n)
	outClean := make([]float64, 0, n)
	for f := 0; f < frames; f++ {
		if rms[f] < threshold {
			continue
		}
		start := f * hop
		end := start + hop
		if end > n {
			end = n
		}
		outNoisy = append(outNoisy, noisy[start:end]...)
		outClean = append(outClean, clean[start:end]...)
	}
	return outNoisy, outClean
}
