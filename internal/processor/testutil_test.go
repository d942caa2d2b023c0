package processor

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/speechforge/denoiseprep/internal/audio"
)

// generateTone returns a sine wave at freq Hz with the given linear
// amplitude, duration seconds long.
func generateTone(freq, amplitude, duration float64, sampleRate int) []float64 {
	n := int(duration * float64(sampleRate))
	samples := make([]float64, n)
	for i := range samples {
		t := float64(i) / float64(sampleRate)
		samples[i] = amplitude * math.Sin(2.0*math.Pi*freq*t)
	}
	return samples
}

// generateNoise returns deterministic white noise at the given linear
// amplitude. Uses an LCG so runs are reproducible without seeding math/rand.
func generateNoise(amplitude float64, n int) []float64 {
	rngState := uint32(12345)
	next := func() float64 {
		// LCG parameters from Numerical Recipes
		rngState = rngState*1664525 + 1013904223
		return (float64(rngState)/float64(0xFFFFFFFF))*2.0 - 1.0
	}

	samples := make([]float64, n)
	for i := range samples {
		samples[i] = amplitude * next()
	}
	return samples
}

// writeTestWAV writes samples to a WAV file under dir and returns its path.
func writeTestWAV(t *testing.T, dir, name string, samples []float64, sampleRate int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := audio.WriteMono(path, samples, sampleRate); err != nil {
		t.Fatalf("failed to write test WAV %s: %v", name, err)
	}
	return path
}
