// SPDX-License-Identifier: MIT
package source

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSine_FillsFullBlocks(t *testing.T) {
	s := NewSine(8000, 440, 0.8)
	block := make([]float64, 128)

	n, err := s.FillBlock(block)
	require.NoError(t, err)
	assert.Equal(t, 128, n)
	assert.False(t, s.EOF(), "generator never reaches end of stream")

	for i, v := range block {
		require.LessOrEqualf(t, math.Abs(v), 0.8, "sample %d exceeds amplitude", i)
	}
}

func TestSine_PhaseContinuity(t *testing.T) {
	s := NewSine(8000, 440, 1.0)
	a := make([]float64, 64)
	b := make([]float64, 64)
	_, err := s.FillBlock(a)
	require.NoError(t, err)
	_, err = s.FillBlock(b)
	require.NoError(t, err)

	// The largest per-sample step of a 440 Hz sine at 8 kHz is bounded
	// by the phase increment. A seam between blocks would exceed it.
	maxStep := 2 * math.Pi * 440 / 8000
	seam := math.Abs(b[0] - a[63])
	assert.LessOrEqual(t, seam, maxStep*1.01, "discontinuity at block boundary")
}

func TestSine_MatchesReference(t *testing.T) {
	s := NewSine(8000, 1000, 1.0)
	block := make([]float64, 32)
	_, err := s.FillBlock(block)
	require.NoError(t, err)

	for i := range block {
		expected := math.Sin(2 * math.Pi * 1000 * float64(i) / 8000)
		assert.InDeltaf(t, expected, block[i], 1e-9, "sample %d", i)
	}
}

func TestSine_SweepMovesFrequency(t *testing.T) {
	s := NewSine(8000, 200, 0.8)
	s.EnableSweep(200, 3000, 100*time.Millisecond)
	block := make([]float64, 256)

	require.Equal(t, 200.0, s.Frequency())
	_, err := s.FillBlock(block)
	require.NoError(t, err)
	assert.Greater(t, s.Frequency(), 200.0, "frequency must rise during the sweep")
	assert.LessOrEqual(t, s.Frequency(), 3000.0)
}

func TestSine_SweepReversesAtEnd(t *testing.T) {
	s := NewSine(8000, 200, 0.8)
	// One leg is 80 samples; two blocks cross the top of the sweep.
	s.EnableSweep(200, 3000, 10*time.Millisecond)
	block := make([]float64, 128)

	_, err := s.FillBlock(block)
	require.NoError(t, err)
	peak := s.Frequency()
	_, err = s.FillBlock(block)
	require.NoError(t, err)
	assert.Less(t, s.Frequency(), 3000.0, "sweep must come back down, was at %g", peak)
}

func TestSine_Reset(t *testing.T) {
	s := NewSine(8000, 440, 1.0)
	s.EnableSweep(200, 3000, time.Second)
	first := make([]float64, 128)
	_, err := s.FillBlock(first)
	require.NoError(t, err)

	require.NoError(t, s.Reset())
	assert.Equal(t, 200.0, s.Frequency())

	again := make([]float64, 128)
	_, err = s.FillBlock(again)
	require.NoError(t, err)
	assert.Equal(t, first, again, "reset must reproduce the identical sample sequence")
}

func TestSine_FillBlockZeroAllocs(t *testing.T) {
	s := NewSine(8000, 440, 0.8)
	s.EnableSweep(200, 3000, time.Second)
	block := make([]float64, 128)

	allocs := testing.AllocsPerRun(100, func() {
		_, _ = s.FillBlock(block)
	})
	assert.Zero(t, allocs)
}

func TestMultiTone(t *testing.T) {
	s := NewMultiTone(8000, []float64{440, 880, 1320}, 0.9)
	block := make([]float64, 256)

	n, err := s.FillBlock(block)
	require.NoError(t, err)
	assert.Equal(t, 256, n)
	assert.False(t, s.EOF())

	// The per-tone amplitude split keeps the mix inside the unit range.
	for i, v := range block {
		require.LessOrEqualf(t, math.Abs(v), 0.9, "sample %d clips", i)
	}

	require.NoError(t, s.Reset())
	again := make([]float64, 256)
	_, err = s.FillBlock(again)
	require.NoError(t, err)
	assert.Equal(t, block, again)

	assert.NoError(t, s.Close())
}
