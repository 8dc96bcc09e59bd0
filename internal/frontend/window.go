// Package frontend implements the presentation layers of the emulator: an
// ebiten desktop window with keypad input and a text renderer for terminals.
package frontend

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/driver"
	"github.com/retroenv/retrogolib/log"
)

// DefaultScale is the default window size multiplier of the display.
const DefaultScale = 10

var (
	foreground = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	background = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF}
)

// Keypad maps host keys to CHIP-8 keypad indices using the COSMAC VIP layout:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var Keypad = map[ebiten.Key]int{
	ebiten.KeyDigit1: 0x1, ebiten.KeyDigit2: 0x2, ebiten.KeyDigit3: 0x3, ebiten.KeyDigit4: 0xC,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xD,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xE,
	ebiten.KeyZ: 0xA, ebiten.KeyX: 0x0, ebiten.KeyC: 0xB, ebiten.KeyV: 0xF,
}

// Machine defines the machine functions used by the window.
type Machine interface {
	// SetKey sets the pressed state of a keypad key.
	SetKey(index int, pressed bool) error
	// Framebuffer returns the display.
	Framebuffer() *chip8.Framebuffer
}

// FrameRunner runs a single frame of the machine.
type FrameRunner interface {
	RunFrame() (driver.Frame, error)
}

// WindowOptions configures the window.
type WindowOptions struct {
	Title string
	Scale int
}

// Window displays the machine in a desktop window and forwards keypad input.
// It implements the ebiten.Game interface.
type Window struct {
	ctx     context.Context
	logger  *log.Logger
	machine Machine
	runner  FrameRunner
	options WindowOptions

	image  *ebiten.Image
	pixels []byte
	dirty  bool
}

var _ ebiten.Game = (*Window)(nil)

// NewWindow returns a new window. The window stops when the context is canceled.
func NewWindow(ctx context.Context, logger *log.Logger, machine Machine, runner FrameRunner,
	options WindowOptions) *Window {

	if options.Scale <= 0 {
		options.Scale = DefaultScale
	}

	return &Window{
		ctx:     ctx,
		logger:  logger,
		machine: machine,
		runner:  runner,
		options: options,
		dirty:   true,
	}
}

// Run opens the window and blocks until it is closed, Escape is pressed, the
// context is canceled or the machine halts with an error.
func (w *Window) Run() error {
	ebiten.SetWindowSize(chip8.Width*w.options.Scale, chip8.Height*w.options.Scale)
	ebiten.SetWindowTitle(w.options.Title)
	ebiten.SetTPS(driver.TimerHz)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Update forwards the keypad state and runs one frame of the machine.
func (w *Window) Update() error {
	if w.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		w.logger.Debug("Closing window")
		return ebiten.Termination
	}

	if err := w.applyKeys(ebiten.IsKeyPressed); err != nil {
		return err
	}

	frame, err := w.runner.RunFrame()
	if err != nil {
		return err
	}
	if frame.Redraw {
		w.dirty = true
	}
	return nil
}

// Draw renders the framebuffer, the image is only updated if the display changed.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(chip8.Width, chip8.Height)
	}

	if w.dirty {
		w.pixels = appendRGBA(w.pixels[:0], w.machine.Framebuffer())
		w.image.WritePixels(w.pixels)
		w.dirty = false
	}

	screen.DrawImage(w.image, nil)
}

// Layout returns the display size, ebiten scales it to the window size.
func (w *Window) Layout(_, _ int) (int, int) {
	return chip8.Width, chip8.Height
}

// applyKeys sets the state of all keypad keys using the passed key state function.
func (w *Window) applyKeys(pressed func(ebiten.Key) bool) error {
	for key, index := range Keypad {
		if err := w.machine.SetKey(index, pressed(key)); err != nil {
			return fmt.Errorf("setting key state: %w", err)
		}
	}
	return nil
}

// appendRGBA appends the framebuffer as RGBA pixels to the buffer.
func appendRGBA(buf []byte, fb *chip8.Framebuffer) []byte {
	for y := range chip8.Height {
		for x := range chip8.Width {
			c := background
			if fb.Pixel(x, y) != 0 {
				c = foreground
			}
			buf = append(buf, c.R, c.G, c.B, c.A)
		}
	}
	return buf
}
