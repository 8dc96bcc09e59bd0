package chip8

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFramebuffer_Pixel(t *testing.T) {
	var fb Framebuffer
	assert.False(t, fb.flip(63, 31))
	assert.True(t, fb.flip(63, 31))
	assert.False(t, fb.flip(63, 31))

	assert.Equal(t, byte(1), fb.Pixel(63, 31))
	assert.Equal(t, byte(0), fb.Pixel(0, 0))
	assert.Equal(t, byte(0), fb.Pixel(-1, 0))
	assert.Equal(t, byte(0), fb.Pixel(64, 0))
	assert.Equal(t, byte(0), fb.Pixel(0, 32))
	assert.Equal(t, Width, fb.Width())
	assert.Equal(t, Height, fb.Height())
}

func TestFramebuffer_Pixels(t *testing.T) {
	var fb Framebuffer
	fb.flip(1, 1)

	pixels := fb.Pixels()
	assert.Len(t, pixels, Width*Height)
	assert.Equal(t, byte(1), pixels[Width+1])

	pixels[0] = 1
	assert.Equal(t, byte(0), fb.Pixel(0, 0))
}

func TestFramebuffer_String(t *testing.T) {
	var fb Framebuffer
	fb.flip(0, 0)
	fb.flip(2, 1)

	lines := strings.Split(strings.TrimSuffix(fb.String(), "\n"), "\n")
	assert.Len(t, lines, Height)
	assert.Equal(t, "#"+strings.Repeat(".", Width-1), lines[0])
	assert.Equal(t, "..#"+strings.Repeat(".", Width-3), lines[1])

	fb.clear()
	assert.True(t, fb.IsClear())
}
