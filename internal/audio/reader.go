// Package audio provides WAV file I/O for the dataset pipeline
package audio

import (
	"errors"
	"fmt"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// DecodeError wraps a failure to open or decode a corpus file.
// Decode failures are fatal to the enclosing chunk: a corrupt corpus file
// means the dataset needs fixing, not a retry.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode %s: %v", e.Path, e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }

// ReadMono reads a WAV file and returns its samples as mono float64 values
// in [-1, 1], resampled to targetRate. Multi-channel input is downmixed by
// averaging channels.
func ReadMono(path string, targetRate int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, &DecodeError{Path: path, Err: errors.New("not a valid WAV file")}
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if buf.Format == nil || buf.Format.SampleRate <= 0 {
		return nil, &DecodeError{Path: path, Err: errors.New("missing format header")}
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(decoder.BitDepth)
	}
	if bitDepth == 0 {
		bitDepth = 16
	}

	samples := toMonoFloat(buf, bitDepth)

	if buf.Format.SampleRate != targetRate {
		samples = Resample(samples, buf.Format.SampleRate, targetRate)
	}
	return samples, nil
}

// WriteMono writes mono float64 samples in [-1, 1] as a 16-bit PCM WAV file.
func WriteMono(path string, samples []float64, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	const bitDepth = 16
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
		Data:           make([]int, len(samples)),
	}
	scale := float64(int(1) << (bitDepth - 1))
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		v := int(s * (scale - 1))
		buf.Data[i] = v
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, 1, 1)
	if err := enc.Write(buf); err != nil {
		enc.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// toMonoFloat converts an interleaved PCM buffer to mono float64 in [-1, 1].
func toMonoFloat(buf *gaudio.IntBuffer, bitDepth int) []float64 {
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	scale := float64(int(1) << (bitDepth - 1))

	frames := len(buf.Data) / channels
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c])
		}
		out[i] = sum / float64(channels) / scale
	}
	return out
}
