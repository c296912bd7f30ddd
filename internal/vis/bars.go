// SPDX-License-Identifier: MIT
/*
Package vis turns magnitude bins into stable pixel bars: contiguous bin
grouping, log or linear scaling into the display height, EMA smoothing
with peak-hold, and the bar renderer itself. Like the dsp package, every
per-frame operation works in caller-provided buffers.
*/
package vis

import "math"

// maxFloor keeps the normalization divisor away from zero on silent input.
const maxFloor = 0.001

// Mapper reduces N/2 magnitude bins to a fixed number of bars, each the
// arithmetic mean of one contiguous, equal-size group of bins.
type Mapper struct {
	bars int
}

// NewMapper returns a mapper producing the given number of bars.
func NewMapper(bars int) *Mapper {
	if bars < 1 {
		bars = 1
	}
	return &Mapper{bars: bars}
}

// Bars returns the number of output bars.
func (m *Mapper) Bars() int { return m.bars }

// BinsPerBar returns the group size used for numBins input bins.
func (m *Mapper) BinsPerBar(numBins int) int {
	n := numBins / m.bars
	if n < 1 {
		n = 1
	}
	return n
}

// MapBins fills dst with the mean magnitude of each bar's bin group.
// dst must hold Bars() values. Groups whose start index falls past the
// available bins yield 0, so the output length is always Bars().
func (m *Mapper) MapBins(dst, magnitudes []float64) {
	numBins := len(magnitudes)
	binsPerBar := m.BinsPerBar(numBins)

	for i := 0; i < m.bars && i < len(dst); i++ {
		start := i * binsPerBar
		end := min(start+binsPerBar, numBins)
		if start >= numBins {
			dst[i] = 0
			continue
		}
		var sum float64
		for _, mag := range magnitudes[start:end] {
			sum += mag
		}
		dst[i] = sum / float64(end-start)
	}
}

// Scaler converts bar magnitudes to pixel heights in [0, height-1],
// normalized against the loudest bar of the same frame.
type Scaler struct {
	height int
	log    bool
	minDB  float64
	maxDB  float64
}

// NewScaler returns a scaler for the given display height. With log true
// values map through dB relative to the frame maximum, clamped to
// [minDB, maxDB]; otherwise the mapping is linear.
func NewScaler(height int, log bool, minDB, maxDB float64) *Scaler {
	return &Scaler{height: height, log: log, minDB: minDB, maxDB: maxDB}
}

// ScalePixels fills dst with pixel heights for bars. All outputs are in
// [0, height-1] for any non-negative input, including all-zero frames.
func (s *Scaler) ScalePixels(dst []int, bars []float64) {
	maxMag := maxFloor
	for _, b := range bars {
		if b > maxMag {
			maxMag = b
		}
	}

	for i := 0; i < len(dst) && i < len(bars); i++ {
		var normalized float64
		if s.log {
			db := s.minDB
			if bars[i] >= nearZero {
				db = 20 * math.Log10(bars[i]/maxMag)
				if db < s.minDB {
					db = s.minDB
				}
				if db > s.maxDB {
					db = s.maxDB
				}
			}
			normalized = (db - s.minDB) / (s.maxDB - s.minDB)
		} else {
			normalized = bars[i] / maxMag
		}

		if normalized < 0 {
			normalized = 0
		}
		if normalized > 1 {
			normalized = 1
		}
		dst[i] = int(normalized * float64(s.height-1))
	}
}

// nearZero mirrors the dB guard in the dsp package: magnitudes below it
// take the floor without touching the logarithm.
const nearZero = 1e-10
