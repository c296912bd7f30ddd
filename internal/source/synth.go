// SPDX-License-Identifier: MIT
package source

import (
	"math"
	"time"
)

const twoPi = 2 * math.Pi

// SineSource generates a sine wave, either at a fixed frequency or
// sweeping linearly up and down between two bounds. It never reaches
// end of stream.
type SineSource struct {
	sampleRate float64
	frequency  float64
	amplitude  float64
	phase      float64

	sweepEnabled bool
	sweepStart   float64
	sweepEnd     float64
	sweepTotal   int // samples per sweep leg
	sweepPos     int
	sweepDir     int // +1 rising, -1 falling
}

// NewSine returns a fixed-frequency generator.
func NewSine(sampleRate, frequency, amplitude float64) *SineSource {
	return &SineSource{
		sampleRate: sampleRate,
		frequency:  frequency,
		amplitude:  amplitude,
		sweepDir:   1,
	}
}

// EnableSweep switches the generator to sweep mode: the frequency moves
// linearly from start to end over the given duration, then back.
func (s *SineSource) EnableSweep(start, end float64, duration time.Duration) {
	s.sweepEnabled = true
	s.sweepStart = start
	s.sweepEnd = end
	s.sweepTotal = int(duration.Seconds() * s.sampleRate)
	if s.sweepTotal < 1 {
		s.sweepTotal = 1
	}
	s.sweepPos = 0
	s.sweepDir = 1
	s.frequency = start
}

// Frequency returns the instantaneous frequency in Hz.
func (s *SineSource) Frequency() float64 { return s.frequency }

// FillBlock fills block with samples, keeping the phase continuous
// across blocks. Always writes len(block) samples.
func (s *SineSource) FillBlock(block []float64) (int, error) {
	inc := twoPi * s.frequency / s.sampleRate
	for i := range block {
		block[i] = s.amplitude * math.Sin(s.phase)
		s.phase += inc
		if s.phase > twoPi {
			s.phase -= twoPi
		}

		if s.sweepEnabled {
			s.sweepPos++
			if s.sweepPos >= s.sweepTotal {
				s.sweepPos = 0
				s.sweepDir = -s.sweepDir
			}
			progress := float64(s.sweepPos) / float64(s.sweepTotal)
			if s.sweepDir < 0 {
				progress = 1 - progress
			}
			s.frequency = s.sweepStart + progress*(s.sweepEnd-s.sweepStart)
			inc = twoPi * s.frequency / s.sampleRate
		}
	}
	return len(block), nil
}

// EOF always reports false: the generator is an infinite stream.
func (s *SineSource) EOF() bool { return false }

// Reset restores the initial phase and sweep position.
func (s *SineSource) Reset() error {
	s.phase = 0
	s.sweepPos = 0
	s.sweepDir = 1
	if s.sweepEnabled {
		s.frequency = s.sweepStart
	}
	return nil
}

// Close is a no-op; the generator holds no resources.
func (s *SineSource) Close() error { return nil }

// MultiToneSource mixes several fixed tones, amplitude split evenly so
// the sum stays inside the unit range. Useful for exercising multiple
// spectrum peaks at once.
type MultiToneSource struct {
	sampleRate  float64
	frequencies []float64
	amplitude   float64 // per tone
	phases      []float64
}

// NewMultiTone returns a generator mixing the given frequencies.
// amplitude is the total output amplitude before the per-tone split.
func NewMultiTone(sampleRate float64, frequencies []float64, amplitude float64) *MultiToneSource {
	return &MultiToneSource{
		sampleRate:  sampleRate,
		frequencies: frequencies,
		amplitude:   amplitude / float64(len(frequencies)),
		phases:      make([]float64, len(frequencies)),
	}
}

// FillBlock fills block with the tone mix. Always writes len(block).
func (m *MultiToneSource) FillBlock(block []float64) (int, error) {
	for i := range block {
		var sample float64
		for t, freq := range m.frequencies {
			sample += m.amplitude * math.Sin(m.phases[t])
			m.phases[t] += twoPi * freq / m.sampleRate
			if m.phases[t] > twoPi {
				m.phases[t] -= twoPi
			}
		}
		block[i] = sample
	}
	return len(block), nil
}

// EOF always reports false.
func (m *MultiToneSource) EOF() bool { return false }

// Reset zeroes all tone phases.
func (m *MultiToneSource) Reset() error {
	for i := range m.phases {
		m.phases[i] = 0
	}
	return nil
}

// Close is a no-op.
func (m *MultiToneSource) Close() error { return nil }
