// SPDX-License-Identifier: MIT
// Package display abstracts the monochrome pixel surface the visualizer
// draws on and provides an in-memory framebuffer plus a terminal renderer.
package display

// Display is the drawing surface contract. Coordinates follow the OLED
// convention: (0,0) is top-left, y grows downward. Implementations clip
// out-of-range coordinates instead of failing; only Flush, which touches
// the outside world, can return an error.
type Display interface {
	// Clear turns every pixel off and drops any text overlay.
	Clear()
	// FillRect fills a w by h rectangle with its top-left corner at (x, y).
	FillRect(x, y, w, h int, on bool)
	// HLine draws a horizontal line of w pixels starting at (x, y).
	HLine(x, y, w int, on bool)
	// Pixel sets a single pixel.
	Pixel(x, y int, on bool)
	// Text places a text overlay with its top-left corner at (x, y).
	Text(s string, x, y int)
	// Flush pushes the current frame to the physical surface.
	Flush() error
}
