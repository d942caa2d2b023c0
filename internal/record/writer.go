package record

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/speechforge/denoiseprep/internal/processor"
)

// Ext is the extension of every record file.
const Ext = ".parquet"

// Writer writes one parquet file per processed segment into a single
// directory. Writes are atomic: the record is staged under a .tmp name and
// renamed into place, so readers never observe a partial file. A record
// that already exists is skipped, which makes interrupted runs resumable.
type Writer struct {
	dir    string
	prefix string

	written int
	skipped int
}

// NewWriter creates the record directory if needed and returns a writer
// bound to it. prefix distinguishes dataset splits sharing a directory,
// e.g. "train" and "test".
func NewWriter(dir, prefix string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create record dir %s: %w", dir, err)
	}
	return &Writer{dir: dir, prefix: prefix}, nil
}

// RecordPath returns the file path for segment index of the named pair.
func (w *Writer) RecordPath(name string, index int) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s_%s_%d%s", w.prefix, name, index, Ext))
}

// WriteResult persists every segment of a processed pair. Existing records
// are left untouched and counted as skipped.
func (w *Writer) WriteResult(res *processor.PairResult) error {
	for i := 0; i < res.Segments(); i++ {
		path := w.RecordPath(res.Name, i)
		if _, err := os.Stat(path); err == nil {
			w.skipped++
			continue
		}

		var err error
		if res.Waveform != nil {
			err = writeAtomic(path, NewWaveformRecord(res.Name, i, res.SampleRate, res.Waveform))
		} else {
			err = writeAtomic(path, NewSpectralRecord(res.Name, i, res.Spectral))
		}
		if err != nil {
			return fmt.Errorf("write record %s: %w", path, err)
		}
		w.written++
	}
	return nil
}

// Written reports how many records this writer has created.
func (w *Writer) Written() int { return w.written }

// Skipped reports how many records already existed and were left alone.
func (w *Writer) Skipped() int { return w.skipped }

func writeAtomic[T any](path string, rec T) error {
	tmp := path + ".tmp"
	if err := parquet.WriteFile(tmp, []T{rec}); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
