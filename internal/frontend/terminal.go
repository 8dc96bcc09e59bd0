package frontend

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8emu/internal/chip8"
	"golang.org/x/term"
)

const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
)

// Terminal renders frames as text, two pixel rows are combined into one text
// row using Unicode half blocks. If the writer is a terminal, frames are drawn
// in place.
type Terminal struct {
	w       io.Writer
	inPlace bool
	frames  int
}

// NewTerminal returns a new terminal renderer writing to w.
func NewTerminal(w io.Writer) *Terminal {
	t := &Terminal{w: w}
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		t.inPlace = term.IsTerminal(int(f.Fd()))
	}
	return t
}

// Present writes the framebuffer.
func (t *Terminal) Present(fb *chip8.Framebuffer) error {
	var buf strings.Builder
	if t.inPlace {
		if t.frames == 0 {
			buf.WriteString(clearScreen)
		}
		buf.WriteString(cursorHome)
	}
	buf.WriteString(Render(fb))
	t.frames++

	if _, err := io.WriteString(t.w, buf.String()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// InPlace returns whether frames are drawn in place on a terminal.
func (t *Terminal) InPlace() bool {
	return t.inPlace
}

// Frames returns the number of presented frames.
func (t *Terminal) Frames() int {
	return t.frames
}

// Render returns the framebuffer as text with one line per two pixel rows.
func Render(fb *chip8.Framebuffer) string {
	var buf strings.Builder
	buf.Grow((fb.Height() / 2) * (fb.Width()*3 + 1))

	for y := 0; y < fb.Height(); y += 2 {
		for x := range fb.Width() {
			upper := fb.Pixel(x, y) != 0
			lower := fb.Pixel(x, y+1) != 0

			switch {
			case upper && lower:
				buf.WriteRune('█')
			case upper:
				buf.WriteRune('▀')
			case lower:
				buf.WriteRune('▄')
			default:
				buf.WriteByte(' ')
			}
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}
