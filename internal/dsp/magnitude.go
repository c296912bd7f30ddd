// SPDX-License-Identifier: MIT
package dsp

import (
	"math"
	"math/cmplx"
)

// nearZero guards the logarithm in dB conversion; magnitudes below it map
// straight to the dB floor.
const nearZero = 1e-10

// Magnitudes fills dst with sqrt(re²+im²) for the leading bins of
// spectrum and returns the number of bins written. Only the first
// len(spectrum)/2 bins carry information for real input, so dst is
// clamped to that many.
func Magnitudes(dst []float64, spectrum []complex128) int {
	n := min(len(dst), len(spectrum)/2)
	for i := 0; i < n; i++ {
		dst[i] = cmplx.Abs(spectrum[i])
	}
	return n
}

// MagnitudesDB fills dst with 20*log10(mag/ref) for the leading bins of
// spectrum, substituting minDB for near-zero magnitudes and flooring
// everything else at minDB. Returns the number of bins written.
func MagnitudesDB(dst []float64, spectrum []complex128, ref, minDB float64) int {
	n := min(len(dst), len(spectrum)/2)
	for i := 0; i < n; i++ {
		m := cmplx.Abs(spectrum[i])
		if m < nearZero {
			dst[i] = minDB
			continue
		}
		dst[i] = math.Max(20*math.Log10(m/ref), minDB)
	}
	return n
}

// BinFrequency returns the center frequency in Hz of FFT bin i.
func BinFrequency(sampleRate float64, fftSize, i int) float64 {
	return float64(i) * sampleRate / float64(fftSize)
}

// BinFrequencies returns the center frequency of each positive-frequency
// bin. Allocates; intended for setup and diagnostics, not the frame loop.
func BinFrequencies(sampleRate float64, fftSize int) []float64 {
	freqs := make([]float64, fftSize/2)
	for i := range freqs {
		freqs[i] = BinFrequency(sampleRate, fftSize, i)
	}
	return freqs
}
