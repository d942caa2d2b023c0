package processor

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Spectrogram holds the complex STFT of one waveform segment. Coefficients
// are stored frame-major ([frame][bin]) as they come out of the FFT; the
// FreqMajor accessors transpose to the [bin][frame] layout the training
// consumer expects (frequency axis immediately before the frame axis).
type Spectrogram struct {
	Bins   int
	Frames int
	coeffs [][]complex128 // [frame][bin]
}

// ShapeMismatchError reports matrices whose dimensions do not line up.
type ShapeMismatchError struct {
	Op   string
	A, B string
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: shapes must match: %s vs %s", e.Op, e.A, e.B)
}

// STFT computes the short-time Fourier transform of samples with a Hann
// window of winLength (also the FFT size) advanced by hopLength. With
// center, the signal is reflect-padded by winLength/2 on both ends so
// frames are centered on their timestamps, giving 1+floor(n/hop) frames;
// without it, frames start at the signal edge, giving
// 1+floor((n-win)/hop).
func STFT(samples []float64, winLength, hopLength int, center bool) *Spectrogram {
	if center {
		samples = reflectPad(samples, winLength/2)
	}
	if len(samples) < winLength {
		padded := make([]float64, winLength)
		copy(padded, samples)
		samples = padded
	}

	frames := 1 + (len(samples)-winLength)/hopLength
	bins := winLength/2 + 1
	win := window.Hann(winLength)
	fft := fourier.NewFFT(winLength)

	s := &Spectrogram{Bins: bins, Frames: frames, coeffs: make([][]complex128, frames)}
	frame := make([]float64, winLength)
	for f := 0; f < frames; f++ {
		start := f * hopLength
		for i := 0; i < winLength; i++ {
			frame[i] = samples[start+i] * win[i]
		}
		s.coeffs[f] = fft.Coefficients(nil, frame)
	}
	return s
}

// Magnitude returns |STFT| in [bin][frame] layout.
func (s *Spectrogram) Magnitude() [][]float64 {
	return s.freqMajor(cmplx.Abs)
}

// Phase returns the phase angle in radians in [bin][frame] layout.
func (s *Spectrogram) Phase() [][]float64 {
	return s.freqMajor(cmplx.Phase)
}

// RealPart returns Re(STFT) in [bin][frame] layout.
func (s *Spectrogram) RealPart() [][]float64 {
	return s.freqMajor(func(c complex128) float64 { return real(c) })
}

// ImagPart returns Im(STFT) in [bin][frame] layout.
func (s *Spectrogram) ImagPart() [][]float64 {
	return s.freqMajor(func(c complex128) float64 { return imag(c) })
}

func (s *Spectrogram) freqMajor(f func(complex128) float64) [][]float64 {
	out := make([][]float64, s.Bins)
	for b := 0; b < s.Bins; b++ {
		row := make([]float64, s.Frames)
		for t := 0; t < s.Frames; t++ {
			row[t] = f(s.coeffs[t][b])
		}
		out[b] = row
	}
	return out
}

// PhaseAwareScale recombines the clean magnitude with the cosine of the
// phase difference between the clean and noisy signals:
//
//	scaled = cleanMag * cos(cleanPhase - noisyPhase)
//
// It is an optional target variant for magnitude-domain training and is
// disabled in the default pipeline.
func PhaseAwareScale(cleanMag, cleanPhase, noisyPhase [][]float64) ([][]float64, error) {
	if err := sameShape("phase-aware scale", cleanPhase, noisyPhase); err != nil {
		return nil, err
	}
	if err := sameShape("phase-aware scale", cleanMag, cleanPhase); err != nil {
		return nil, err
	}

	out := make([][]float64, len(cleanMag))
	for i := range cleanMag {
		row := make([]float64, len(cleanMag[i]))
		for j := range row {
			row[j] = cleanMag[i][j] * math.Cos(cleanPhase[i][j]-noisyPhase[i][j])
		}
		out[i] = row
	}
	return out, nil
}

func sameShape(op string, a, b [][]float64) error {
	if len(a) != len(b) {
		return &ShapeMismatchError{Op: op, A: shapeString(a), B: shapeString(b)}
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return &ShapeMismatchError{Op: op, A: shapeString(a), B: shapeString(b)}
		}
	}
	return nil
}

func shapeString(m [][]float64) string {
	if len(m) == 0 {
		return "(0)"
	}
	return fmt.Sprintf("(%d,%d)", len(m), len(m[0]))
}

// reflectPad mirrors pad samples around each end of the signal, librosa
// style: [c b | a b c d | c b] for pad=2.
func reflectPad(samples []float64, pad int) []float64 {
	n := len(samples)
	if n == 0 {
		return make([]float64, 2*pad)
	}
	out := make([]float64, n+2*pad)
	copy(out[pad:], samples)
	for i := 1; i <= pad; i++ {
		out[pad-i] = samples[reflectIndex(i, n)]
		out[pad+n-1+i] = samples[reflectIndex(n-1-i, n)]
	}
	return out
}

// reflectIndex maps an out-of-range index back into [0, n) by reflection.
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * (n - 1)
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}
