// SPDX-License-Identifier: MIT
package vis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specviz/internal/display"
)

func newTestSurface(t *testing.T) *display.Framebuffer {
	t.Helper()
	fb, err := display.NewFramebuffer(32, 16)
	require.NoError(t, err)
	return fb
}

func TestDraw_BarsFromBottom(t *testing.T) {
	fb := newTestSurface(t)
	// 4 bars, 3 px wide, 1 px gap on a 16 px tall surface.
	r := NewBarRenderer(fb, 4, 16, 3, 1)

	r.Draw([]int{4, 0, 16, 1}, []int{0, 0, 0, 0})

	// Bar 0 occupies x 0..2, rows 12..15.
	assert.True(t, fb.At(0, 15))
	assert.True(t, fb.At(2, 12))
	assert.False(t, fb.At(0, 11), "bar 0 must stop at its height")

	// Bar 1 has zero height: column x=4..6 stays dark.
	assert.False(t, fb.At(4, 15))

	// Bar 2 spans the full height at x 8..10.
	assert.True(t, fb.At(8, 0))
	assert.True(t, fb.At(10, 15))

	// Gap columns stay dark.
	assert.False(t, fb.At(3, 15))
	assert.False(t, fb.At(7, 15))
}

func TestDraw_PeakMarker(t *testing.T) {
	fb := newTestSurface(t)
	r := NewBarRenderer(fb, 4, 16, 3, 1)

	r.Draw([]int{4}, []int{8})

	// Marker sits one pixel above the peak height: y = 16 - 8 - 1 = 7.
	assert.True(t, fb.At(0, 7))
	assert.True(t, fb.At(2, 7))
	// The run between marker and bar top stays dark.
	assert.False(t, fb.At(0, 8))
	assert.True(t, fb.At(0, 12), "bar itself still drawn")
}

func TestDraw_NoMarkerWhenPeakAtBar(t *testing.T) {
	fb := newTestSurface(t)
	r := NewBarRenderer(fb, 1, 16, 3, 1)

	// Peak equals the bar height: no marker above the bar.
	r.Draw([]int{8}, []int{8})
	assert.False(t, fb.At(0, 7))

	// Zero peak on a zero bar: nothing at all.
	r.Draw([]int{0}, []int{0})
	for y := 0; y < 16; y++ {
		require.False(t, fb.At(0, y))
	}
}

func TestDraw_ClearsPreviousFrame(t *testing.T) {
	fb := newTestSurface(t)
	r := NewBarRenderer(fb, 1, 16, 3, 0)

	r.Draw([]int{16}, []int{0})
	require.True(t, fb.At(0, 0))
	r.Draw([]int{1}, []int{0})
	assert.False(t, fb.At(0, 0), "previous frame must be cleared")
	assert.True(t, fb.At(0, 15))
}

func TestDraw_ZeroAllocs(t *testing.T) {
	fb := newTestSurface(t)
	r := NewBarRenderer(fb, 4, 16, 3, 1)
	heights := []int{4, 8, 12, 16}
	peaks := []int{6, 10, 14, 16}

	allocs := testing.AllocsPerRun(100, func() {
		r.Draw(heights, peaks)
	})
	assert.Zero(t, allocs)
}

func TestMessage(t *testing.T) {
	fb := newTestSurface(t)
	r := NewBarRenderer(fb, 4, 16, 3, 1)

	require.NoError(t, r.Message("Playback", "Complete"))
	texts := fb.Texts()
	require.Len(t, texts, 2)
	assert.Equal(t, "Playback", texts[0].S)
	assert.Equal(t, 10, texts[1].Y)
}
