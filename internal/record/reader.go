package record

import (
	"fmt"

	"github.com/parquet-go/parquet-go"
)

// ReadWaveform loads a single time-domain record from path.
func ReadWaveform(path string) (*WaveformRecord, error) {
	rows, err := parquet.ReadFile[WaveformRecord](path)
	if err != nil {
		return nil, fmt.Errorf("read record %s: %w", path, err)
	}
	if len(rows) != 1 {
		return nil, fmt.Errorf("read record %s: expected 1 row, got %d", path, len(rows))
	}
	return &rows[0], nil
}

// ReadSpectral loads a single frequency-domain record from path.
func ReadSpectral(path string) (*SpectralRecord, error) {
	rows, err := parquet.ReadFile[SpectralRecord](path)
	if err != nil {
		return nil, fmt.Errorf("read record %s: %w", path, err)
	}
	if len(rows) != 1 {
		return nil, fmt.Errorf("read record %s: expected 1 row, got %d", path, len(rows))
	}
	return &rows[0], nil
}
