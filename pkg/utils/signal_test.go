// SPDX-License-Identifier: MIT
package utils

import (
	"math"
	"testing"
)

const (
	testSize       = 1024
	testSampleRate = 44100.0
	testFrequency  = 440.0 // A4 note
)

func TestGenerateSineWave(t *testing.T) {
	wave := GenerateSineWave(testSize, testSampleRate, testFrequency)

	if len(wave) != testSize {
		t.Fatalf("expected %d samples, got %d", testSize, len(wave))
	}
	if wave[0] != 0 {
		t.Errorf("sine wave must start at zero phase, got %g", wave[0])
	}
	for i, s := range wave {
		if math.Abs(s) > 1 {
			t.Fatalf("sample %d out of unit range: %g", i, s)
		}
	}
}

func TestGenerateComplexWave(t *testing.T) {
	wave := GenerateComplexWave(testSize, testSampleRate)

	if len(wave) != testSize {
		t.Fatalf("expected %d samples, got %d", testSize, len(wave))
	}
	// Amplitudes sum to 1.0, so the mix stays inside the unit range.
	for i, s := range wave {
		if math.Abs(s) > 1 {
			t.Fatalf("sample %d out of unit range: %g", i, s)
		}
	}
}

func TestFindPeakBin(t *testing.T) {
	magnitudes := make([]float64, testSize)
	for i := range magnitudes {
		// A hill with its peak at testSize/4.
		magnitudes[i] = math.Exp(-0.01 * math.Pow(float64(i-testSize/4), 2))
	}

	tests := []struct {
		name             string
		startBin, endBin int
		expected         int
	}{
		{"full range", 0, testSize - 1, testSize / 4},
		{"clamped negative start", -10, testSize - 1, testSize / 4},
		{"clamped large end", 0, testSize * 2, testSize / 4},
		{"window excludes peak", testSize / 2, testSize - 1, testSize / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindPeakBin(magnitudes, tt.startBin, tt.endBin); got != tt.expected {
				t.Errorf("FindPeakBin(%d, %d) = %d, expected %d", tt.startBin, tt.endBin, got, tt.expected)
			}
		})
	}
}

func TestFindPeakBinEmpty(t *testing.T) {
	if got := FindPeakBin(nil, 0, 10); got != 0 {
		t.Errorf("expected 0 for empty input, got %d", got)
	}
}
