// SPDX-License-Identifier: MIT
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Half-block rendering packs two pixel rows into one terminal row.
const (
	runeUpper = '▀'
	runeLower = '▄'
	runeBoth  = '█'
	runeNone  = ' '
)

var (
	pixelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#25A0FF"))

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFDF5")).
			Bold(true)
)

// Term renders a monochrome framebuffer to a terminal using half-block
// runes, two pixel rows per text row. Text overlays are drawn as terminal
// characters at the cell nearest their pixel position.
type Term struct {
	fb  *Framebuffer
	out io.Writer
	buf strings.Builder // reused between frames
}

// NewTerm returns a terminal display of the given pixel geometry writing
// to out. The height must be even so rows pair up into half-blocks.
func NewTerm(width, height int, out io.Writer) (*Term, error) {
	if height%2 != 0 {
		return nil, fmt.Errorf("display: terminal renderer needs an even height, got %d", height)
	}
	fb, err := NewFramebuffer(width, height)
	if err != nil {
		return nil, err
	}
	t := &Term{fb: fb, out: out}
	// Hide the cursor and clear once; Flush repaints in place from here on.
	if _, err := fmt.Fprint(out, "\x1b[?25l\x1b[2J"); err != nil {
		return nil, fmt.Errorf("display: terminal init failed: %w", err)
	}
	return t, nil
}

// Framebuffer exposes the backing pixel buffer.
func (t *Term) Framebuffer() *Framebuffer { return t.fb }

func (t *Term) Clear() { t.fb.Clear() }

func (t *Term) FillRect(x, y, w, h int, on bool) { t.fb.FillRect(x, y, w, h, on) }

func (t *Term) HLine(x, y, w int, on bool) { t.fb.HLine(x, y, w, on) }

func (t *Term) Pixel(x, y int, on bool) { t.fb.Pixel(x, y, on) }

func (t *Term) Text(s string, x, y int) { t.fb.Text(s, x, y) }

// Flush repaints the whole frame: cursor home, then one styled line per
// pixel-row pair, then the text overlays on top.
func (t *Term) Flush() error {
	t.buf.Reset()
	for y := 0; y < t.fb.Height(); y += 2 {
		for x := 0; x < t.fb.Width(); x++ {
			upper := t.fb.At(x, y)
			lower := t.fb.At(x, y+1)
			switch {
			case upper && lower:
				t.buf.WriteRune(runeBoth)
			case upper:
				t.buf.WriteRune(runeUpper)
			case lower:
				t.buf.WriteRune(runeLower)
			default:
				t.buf.WriteRune(runeNone)
			}
		}
		t.buf.WriteByte('\n')
	}

	if _, err := fmt.Fprintf(t.out, "\x1b[H%s", pixelStyle.Render(t.buf.String())); err != nil {
		return fmt.Errorf("display: terminal write failed: %w", err)
	}

	for _, span := range t.fb.Texts() {
		row := span.Y/2 + 1
		col := span.X + 1
		if _, err := fmt.Fprintf(t.out, "\x1b[%d;%dH%s", row, col, textStyle.Render(span.S)); err != nil {
			return fmt.Errorf("display: terminal write failed: %w", err)
		}
	}
	return nil
}

// Close restores the cursor. Call once when the run loop exits.
func (t *Term) Close() error {
	_, err := fmt.Fprint(t.out, "\x1b[?25h\n")
	return err
}

var _ Display = (*Term)(nil)
