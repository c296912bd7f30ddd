// SPDX-License-Identifier: MIT
package vis

import (
	"specviz/internal/display"
)

// BarRenderer draws the bar chart onto a Display. Bar x positions are
// precomputed at construction so the draw path stays allocation free.
type BarRenderer struct {
	disp      display.Display
	height    int
	barWidth  int
	positions []int
}

// NewBarRenderer lays out bars of barWidth pixels separated by gap
// pixels, left to right from x=0, on a display of the given height.
func NewBarRenderer(disp display.Display, bars, height, barWidth, gap int) *BarRenderer {
	positions := make([]int, bars)
	for i := range positions {
		positions[i] = i * (barWidth + gap)
	}
	return &BarRenderer{
		disp:      disp,
		height:    height,
		barWidth:  barWidth,
		positions: positions,
	}
}

// Draw clears the display and renders one frame of bars bottom-up, with
// a peak marker one pixel above any bar whose held peak exceeds its
// current height. The caller flushes.
func (r *BarRenderer) Draw(heights, peaks []int) {
	r.disp.Clear()

	for i, x := range r.positions {
		if i >= len(heights) {
			break
		}
		h := heights[i]
		if h > 0 {
			r.disp.FillRect(x, r.height-h, r.barWidth, h, true)
		}

		if i < len(peaks) && peaks[i] > h && peaks[i] > 0 {
			peakY := r.height - peaks[i] - 1
			if peakY >= 0 {
				r.disp.HLine(x, peakY, r.barWidth, true)
			}
		}
	}
}

// Message clears the display, writes the given lines top to bottom and
// flushes. Used for startup, shutdown and stream-complete notices.
func (r *BarRenderer) Message(lines ...string) error {
	r.disp.Clear()
	y := 0
	for _, line := range lines {
		r.disp.Text(line, 0, y)
		y += 10
	}
	return r.disp.Flush()
}
