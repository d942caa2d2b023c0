package processor

import "testing"

func TestSegmentWaveform(t *testing.T) {
	tests := []struct {
		name         string
		samples      int
		sampleRate   int
		segmentSecs  float64
		wantSegments int
		wantSegLen   int
	}{
		{
			name:         "exact multiple yields full segments",
			samples:      32000,
			sampleRate:   16000,
			segmentSecs:  1.0,
			wantSegments: 2,
			wantSegLen:   16000,
		},
		{
			name:         "remainder yields extra padded segment",
			samples:      40000,
			sampleRate:   16000,
			segmentSecs:  1.0,
			wantSegments: 3,
			wantSegLen:   16000,
		},
		{
			name:         "short waveform yields one padded segment",
			samples:      100,
			sampleRate:   16000,
			segmentSecs:  2.0,
			wantSegments: 1,
			wantSegLen:   32000,
		},
		{
			name:         "fractional segment duration",
			samples:      24000,
			sampleRate:   16000,
			segmentSecs:  0.5,
			wantSegments: 3,
			wantSegLen:   8000,
		},
		{
			name:         "empty input yields no segments",
			samples:      0,
			sampleRate:   16000,
			segmentSecs:  1.0,
			wantSegments: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := make([]float64, tt.samples)
			for i := range samples {
				samples[i] = 0.5
			}

			segments := SegmentWaveform(samples, tt.sampleRate, tt.segmentSecs)

			if len(segments) != tt.wantSegments {
				t.Fatalf("got %d segments, want %d", len(segments), tt.wantSegments)
			}
			for i, seg := range segments {
				if len(seg) != tt.wantSegLen {
					t.Errorf("segment %d length = %d, want %d", i, len(seg), tt.wantSegLen)
				}
			}
		})
	}
}

func TestSegmentWaveformPadsWithZeros(t *testing.T) {
	// 1.5 segments of data: second segment's back half must be zero.
	samples := make([]float64, 24000)
	for i := range samples {
		samples[i] = 1.0
	}

	segments := SegmentWaveform(samples, 16000, 1.0)
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(segments))
	}

	second := segments[1]
	for i := 0; i < 8000; i++ {
		if second[i] != 1.0 {
			t.Fatalf("second segment sample %d = %g, want 1.0", i, second[i])
		}
	}
	for i := 8000; i < 16000; i++ {
		if second[i] != 0.0 {
			t.Fatalf("second segment padding sample %d = %g, want 0", i, second[i])
		}
	}
}

func TestSegmentWaveformCopiesData(t *testing.T) {
	samples := []float64{1, 2, 3, 4}
	segments := SegmentWaveform(samples, 2, 1.0)

	segments[0][0] = 99
	if samples[0] != 1 {
		t.Error("segmenting must not alias the input slice")
	}
}
