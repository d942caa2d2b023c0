// Package processor implements the clean/noisy pair processing pipeline:
// pairing, normalization, segmentation and spectral feature extraction.
package processor

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FilePair is one aligned clean/noisy recording pair.
type FilePair struct {
	Clean string
	Noisy string
}

// Name returns the record key for this pair: the extension-less base name
// of the clean file.
func (p FilePair) Name() string {
	base := filepath.Base(p.Clean)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// PairMismatchError reports clean/noisy lists that cannot be paired.
type PairMismatchError struct {
	Index int
	Clean string
	Noisy string
}

func (e *PairMismatchError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("clean/noisy list lengths differ (%s vs %s)", e.Clean, e.Noisy)
	}
	return fmt.Sprintf("pair %d: base filenames differ: %q vs %q", e.Index, e.Clean, e.Noisy)
}

// PairFiles pairs two ordered path lists by position. Alignment is purely
// positional: the caller must enumerate both corpora in a consistent order.
// Base filenames (ignoring directory and extension) must match for every
// pair; a mismatch fails before any file is opened.
func PairFiles(clean, noisy []string) ([]FilePair, error) {
	if len(clean) != len(noisy) {
		return nil, &PairMismatchError{
			Index: -1,
			Clean: fmt.Sprintf("%d clean", len(clean)),
			Noisy: fmt.Sprintf("%d noisy", len(noisy)),
		}
	}

	pairs := make([]FilePair, 0, len(clean))
	for i := range clean {
		if stem(clean[i]) != stem(noisy[i]) {
			return nil, &PairMismatchError{Index: i, Clean: clean[i], Noisy: noisy[i]}
		}
		pairs = append(pairs, FilePair{Clean: clean[i], Noisy: noisy[i]})
	}
	return pairs, nil
}

// stem returns the base filename without directory or extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
