// SPDX-License-Identifier: MIT
package display

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewFramebuffer_InvalidGeometry(t *testing.T) {
	for _, dims := range [][2]int{{0, 64}, {128, 0}, {-1, -1}} {
		if _, err := NewFramebuffer(dims[0], dims[1]); err == nil {
			t.Errorf("expected error for %dx%d, got nil", dims[0], dims[1])
		}
	}
}

func TestFramebuffer_PixelAndClear(t *testing.T) {
	fb, err := NewFramebuffer(8, 8)
	if err != nil {
		t.Fatal(err)
	}

	fb.Pixel(3, 4, true)
	if !fb.At(3, 4) {
		t.Error("pixel (3,4) should be on")
	}
	fb.Pixel(3, 4, false)
	if fb.At(3, 4) {
		t.Error("pixel (3,4) should be off again")
	}

	fb.Pixel(2, 2, true)
	fb.Text("hi", 0, 0)
	fb.Clear()
	if fb.At(2, 2) {
		t.Error("Clear must turn pixels off")
	}
	if len(fb.Texts()) != 0 {
		t.Error("Clear must drop text overlays")
	}
}

func TestFramebuffer_Clipping(t *testing.T) {
	fb, err := NewFramebuffer(4, 4)
	if err != nil {
		t.Fatal(err)
	}

	// None of these may panic or wrap around.
	fb.Pixel(-1, 0, true)
	fb.Pixel(4, 0, true)
	fb.Pixel(0, -1, true)
	fb.Pixel(0, 4, true)
	fb.HLine(-2, 1, 8, true) // spills both edges
	fb.FillRect(2, 2, 10, 10, true)

	if fb.At(-1, 0) || fb.At(4, 0) {
		t.Error("out-of-range reads must be off")
	}
	if !fb.At(0, 1) || !fb.At(3, 1) {
		t.Error("clipped hline must still set in-range pixels")
	}
	if !fb.At(3, 3) {
		t.Error("clipped rect must still set in-range pixels")
	}
}

func TestFramebuffer_FillRect(t *testing.T) {
	fb, err := NewFramebuffer(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	fb.FillRect(1, 2, 3, 4, true)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			want := x >= 1 && x < 4 && y >= 2 && y < 6
			if fb.At(x, y) != want {
				t.Errorf("pixel (%d,%d): got %v, expected %v", x, y, fb.At(x, y), want)
			}
		}
	}
}

func TestTerm_FlushRendersHalfBlocks(t *testing.T) {
	var out bytes.Buffer
	term, err := NewTerm(4, 4, &out)
	if err != nil {
		t.Fatal(err)
	}
	out.Reset() // discard the init sequence

	// Top row on in column 0, both rows on in column 1.
	term.Pixel(0, 0, true)
	term.Pixel(1, 0, true)
	term.Pixel(1, 1, true)
	if err := term.Flush(); err != nil {
		t.Fatal(err)
	}

	frame := out.String()
	if !strings.ContainsRune(frame, runeUpper) {
		t.Error("expected an upper half-block in the frame")
	}
	if !strings.ContainsRune(frame, runeBoth) {
		t.Error("expected a full block in the frame")
	}
}

func TestTerm_RejectsOddHeight(t *testing.T) {
	var out bytes.Buffer
	if _, err := NewTerm(8, 7, &out); err == nil {
		t.Error("expected error for odd height")
	}
}

func TestTerm_TextOverlay(t *testing.T) {
	var out bytes.Buffer
	term, err := NewTerm(16, 8, &out)
	if err != nil {
		t.Fatal(err)
	}
	out.Reset()

	term.Text("OK", 0, 2)
	if err := term.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "OK") {
		t.Error("expected overlay text in the rendered frame")
	}
}
