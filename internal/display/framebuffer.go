// SPDX-License-Identifier: MIT
package display

import "fmt"

// TextSpan is a text overlay registered with Framebuffer.Text.
type TextSpan struct {
	S    string
	X, Y int
}

// Framebuffer is an in-memory monochrome pixel buffer. It backs the
// terminal renderer and serves as the observation point for tests. All
// drawing operations clip silently at the edges.
type Framebuffer struct {
	width  int
	height int
	pix    []uint8 // row-major, one byte per pixel, 0 or 1
	texts  []TextSpan
}

// NewFramebuffer returns a cleared width x height buffer.
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("display: invalid framebuffer geometry %dx%d", width, height)
	}
	return &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height),
	}, nil
}

// Width returns the buffer width in pixels.
func (f *Framebuffer) Width() int { return f.width }

// Height returns the buffer height in pixels.
func (f *Framebuffer) Height() int { return f.height }

// Clear turns every pixel off and drops the text overlay. The overlay
// slice is truncated, not freed, so steady-state frames do not allocate.
func (f *Framebuffer) Clear() {
	for i := range f.pix {
		f.pix[i] = 0
	}
	f.texts = f.texts[:0]
}

// Pixel sets the pixel at (x, y), clipping out-of-range coordinates.
func (f *Framebuffer) Pixel(x, y int, on bool) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	if on {
		f.pix[y*f.width+x] = 1
	} else {
		f.pix[y*f.width+x] = 0
	}
}

// HLine draws a horizontal run of w pixels starting at (x, y).
func (f *Framebuffer) HLine(x, y, w int, on bool) {
	if y < 0 || y >= f.height {
		return
	}
	for i := 0; i < w; i++ {
		f.Pixel(x+i, y, on)
	}
}

// FillRect fills the rectangle with top-left corner (x, y).
func (f *Framebuffer) FillRect(x, y, w, h int, on bool) {
	for row := 0; row < h; row++ {
		f.HLine(x, y+row, w, on)
	}
}

// Text registers a text overlay. The framebuffer has no pixel font; the
// renderer on top decides how to draw registered spans.
func (f *Framebuffer) Text(s string, x, y int) {
	f.texts = append(f.texts, TextSpan{S: s, X: x, Y: y})
}

// Flush is a no-op for the in-memory buffer.
func (f *Framebuffer) Flush() error { return nil }

// At reports whether the pixel at (x, y) is on. Out-of-range reads are
// off, matching the clipping writes.
func (f *Framebuffer) At(x, y int) bool {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return false
	}
	return f.pix[y*f.width+x] == 1
}

// Texts returns the overlay spans registered since the last Clear.
func (f *Framebuffer) Texts() []TextSpan { return f.texts }

var _ Display = (*Framebuffer)(nil)
