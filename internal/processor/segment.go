package processor

// SegmentWaveform slices samples into fixed-duration clips of
// segmentSeconds at sampleRate. A waveform of duration D yields
// ceil(D/segmentSeconds) clips; the final clip is zero-padded to full
// length when D is not a multiple of the segment length. Empty input
// yields no segments.
func SegmentWaveform(samples []float64, sampleRate int, segmentSeconds float64) [][]float64 {
	segLen := int(segmentSeconds * float64(sampleRate))
	if segLen <= 0 || len(samples) == 0 {
		return nil
	}

	count := (len(samples) + segLen - 1) / segLen
	segments := make([][]float64, count)
	for i := 0; i < count; i++ {
		seg := make([]float64, segLen)
		start := i * segLen
		end := start + segLen
		if end > len(samples) {
			end = len(samples)
		}
		copy(seg, samples[start:end])
		segments[i] = seg
	}
	return segments
}
