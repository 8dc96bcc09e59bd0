package chip8

import "strings"

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Framebuffer is the monochrome display of the machine. Every pixel is either 0 or 1.
// Other packages can only read it, it is mutated exclusively by the clear screen and
// draw sprite instructions.
type Framebuffer struct {
	pixels [Width * Height]byte
}

// Width returns the width of the framebuffer in pixels.
func (f *Framebuffer) Width() int {
	return Width
}

// Height returns the height of the framebuffer in pixels.
func (f *Framebuffer) Height() int {
	return Height
}

// Pixel returns the pixel at the given coordinates, coordinates outside of the
// framebuffer return 0.
func (f *Framebuffer) Pixel(x, y int) byte {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return 0
	}
	return f.pixels[y*Width+x]
}

// Pixels returns a row-major copy of all pixels.
func (f *Framebuffer) Pixels() []byte {
	pixels := make([]byte, len(f.pixels))
	copy(pixels, f.pixels[:])
	return pixels
}

// IsClear returns whether no pixel is set.
func (f *Framebuffer) IsClear() bool {
	for _, p := range f.pixels {
		if p != 0 {
			return false
		}
	}
	return true
}

// String returns a textual representation with one line per row,
// '#' marking set and '.' marking unset pixels.
func (f *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width + 1))
	for y := range Height {
		for x := range Width {
			if f.pixels[y*Width+x] != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (f *Framebuffer) clear() {
	f.pixels = [Width * Height]byte{}
}

// flip toggles the pixel and returns whether it was set before.
func (f *Framebuffer) flip(x, y int) bool {
	i := y*Width + x
	wasSet := f.pixels[i] == 1
	f.pixels[i] ^= 1
	return wasSet
}
