// Package driver schedules the execution of a CHIP-8 machine. It runs a fixed
// number of instructions per frame, ticks the timers at 60 Hz and applies the
// decode error policy.
package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// TimerHz is the rate of the delay and sound timers and of the frame loop.
const TimerHz = 60

// Default options.
const (
	DefaultCyclesPerFrame = 10
	DefaultInterval       = time.Second / TimerHz
)

// Machine defines the machine functions used by the driver.
type Machine interface {
	// Step executes one instruction.
	Step() error
	// SkipInstruction advances the program counter without executing the current instruction.
	SkipInstruction()
	// TickTimers decrements the timers and returns whether a beep is due.
	TickTimers() bool
	// ConsumeRedraw returns whether the framebuffer changed and clears the flag.
	ConsumeRedraw() bool
	// AwaitingKey returns whether the machine waits for a key press.
	AwaitingKey() bool
	// Framebuffer returns the display.
	Framebuffer() *chip8.Framebuffer
}

// Presenter displays frames of the machine.
type Presenter interface {
	Present(fb *chip8.Framebuffer) error
}

// Options of the driver.
type Options struct {
	CyclesPerFrame    int           // instructions executed per frame
	HaltOnDecodeError bool          // stop on unknown opcodes instead of skipping them
	MaxFrames         int           // stop Run after this many frames, 0 is unlimited
	Interval          time.Duration // duration of a frame in Run
}

// NewOptions returns the default driver options.
func NewOptions() Options {
	return Options{
		CyclesPerFrame:    DefaultCyclesPerFrame,
		HaltOnDecodeError: true,
		Interval:          DefaultInterval,
	}
}

// Frame contains the result of running a frame.
type Frame struct {
	Beep   bool // the sound timer expired during this frame
	Redraw bool // the framebuffer changed during this frame
}

// Driver runs a machine.
type Driver struct {
	logger  *log.Logger
	machine Machine
	options Options

	frames int
}

// New returns a new driver for the machine.
func New(logger *log.Logger, machine Machine, options Options) *Driver {
	if options.CyclesPerFrame <= 0 {
		options.CyclesPerFrame = DefaultCyclesPerFrame
	}
	if options.Interval <= 0 {
		options.Interval = DefaultInterval
	}

	return &Driver{
		logger:  logger,
		machine: machine,
		options: options,
	}
}

// Frames returns the number of frames that were run.
func (d *Driver) Frames() int {
	return d.frames
}

// RunFrame executes the configured number of instructions followed by one timer
// tick. While the machine waits for a key press the remaining instructions of
// the frame are not executed.
func (d *Driver) RunFrame() (Frame, error) {
	for range d.options.CyclesPerFrame {
		if err := d.step(); err != nil {
			return Frame{}, err
		}
		if d.machine.AwaitingKey() {
			break
		}
	}

	d.frames++
	frame := Frame{
		Beep:   d.machine.TickTimers(),
		Redraw: d.machine.ConsumeRedraw(),
	}
	if frame.Beep {
		d.logger.Debug("Beep", log.Int("frame", d.frames))
	}
	return frame, nil
}

// step executes one instruction and applies the decode error policy.
func (d *Driver) step() error {
	err := d.machine.Step()
	if err == nil {
		return nil
	}

	var decodeErr *chip8.DecodeError
	if d.options.HaltOnDecodeError || !errors.As(err, &decodeErr) {
		return fmt.Errorf("running machine: %w", err)
	}

	d.logger.Warn("Skipping unknown opcode",
		log.Hex("address", decodeErr.Address),
		log.Hex("opcode", decodeErr.Opcode))
	d.machine.SkipInstruction()
	return nil
}

// Run runs frames at the configured interval until the context is canceled, an
// error occurs or the maximum number of frames was run. Changed frames are passed
// to the presenter, which can be nil.
func (d *Driver) Run(ctx context.Context, presenter Presenter) error {
	ticker := time.NewTicker(d.options.Interval)
	defer ticker.Stop()

	for d.options.MaxFrames == 0 || d.frames < d.options.MaxFrames {
		select {
		case <-ctx.Done():
			return fmt.Errorf("running frames: %w", ctx.Err())
		case <-ticker.C:
		}

		frame, err := d.RunFrame()
		if err != nil {
			return err
		}

		if presenter != nil && frame.Redraw {
			if err := presenter.Present(d.machine.Framebuffer()); err != nil {
				return fmt.Errorf("presenting frame: %w", err)
			}
		}
	}

	d.logger.Debug("Frame limit reached", log.Int("frames", d.frames))
	return nil
}
