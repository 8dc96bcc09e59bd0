// Package pipeline orchestrates the emulator workflow stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/config"
	"github.com/retroenv/chip8emu/internal/detector"
	"github.com/retroenv/chip8emu/internal/disasm"
	"github.com/retroenv/chip8emu/internal/driver"
	"github.com/retroenv/chip8emu/internal/frontend"
	"github.com/retroenv/chip8emu/internal/loader"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete workflow of loading and running or
// disassembling a program.
type Pipeline struct {
	logger *log.Logger
	loader *loader.Loader
}

// New creates a new pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger: logger,
		loader: loader.New(),
	}
}

// Execute runs the complete pipeline. The writer receives the disassembly
// listing or the rendered display in headless mode.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, writer io.Writer) error {
	program, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	system, err := detector.Detect(opts, program)
	if err != nil {
		return err
	}
	p.logger.Debug("Detected system",
		log.Stringer("system", system),
		log.String("file", opts.Input))

	p.printInfo(opts, program)

	switch {
	case opts.Disassemble:
		return p.disassemble(ctx, opts, program, writer)
	case opts.Headless:
		return p.runHeadless(ctx, opts, program, writer)
	default:
		return p.runWindow(ctx, opts, program)
	}
}

// disassemble writes the disassembly listing of the program.
func (p *Pipeline) disassemble(ctx context.Context, opts options.Program, program []byte, writer io.Writer) error {
	dis, err := disasm.New(p.logger, program, config.DisasmOptions(opts))
	if err != nil {
		return fmt.Errorf("creating disassembler: %w", err)
	}

	if err := dis.Process(ctx, writer); err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}
	return nil
}

// runHeadless runs the program without window. If the writer is a terminal
// every changed frame is drawn in place, otherwise the final frame is written
// once the emulation stops.
func (p *Pipeline) runHeadless(ctx context.Context, opts options.Program, program []byte, writer io.Writer) error {
	machine, err := p.createMachine(opts, program)
	if err != nil {
		return err
	}

	drv := driver.New(p.logger, machine, config.DriverOptions(opts))
	terminal := frontend.NewTerminal(writer)

	var presenter driver.Presenter
	if terminal.InPlace() {
		presenter = terminal
	}

	runErr := drv.Run(ctx, presenter)
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}

	if presenter == nil {
		if err := terminal.Present(machine.Framebuffer()); err != nil {
			return fmt.Errorf("writing final frame: %w", err)
		}
	}

	if runErr != nil {
		return fmt.Errorf("running program: %w", runErr)
	}

	p.logger.Info("Emulation stopped",
		log.Int("frames", drv.Frames()),
		log.Hex("pc", machine.PC()))
	return nil
}

// runWindow runs the program in a desktop window.
func (p *Pipeline) runWindow(ctx context.Context, opts options.Program, program []byte) error {
	machine, err := p.createMachine(opts, program)
	if err != nil {
		return err
	}

	drv := driver.New(p.logger, machine, config.DriverOptions(opts))
	window := frontend.NewWindow(ctx, p.logger, machine, drv, frontend.WindowOptions{
		Title: "chip8emu - " + filepath.Base(opts.Input),
		Scale: opts.Scale,
	})

	if err := window.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// createMachine creates a new machine and loads the program.
func (p *Pipeline) createMachine(opts options.Program, program []byte) (*chip8.Chip8, error) {
	machine := chip8.New(config.MachineOptions(opts, p.logger)...)
	if err := machine.Load(program); err != nil {
		return nil, fmt.Errorf("loading program into memory: %w", err)
	}
	return machine, nil
}

// printInfo prints information about the program being processed.
func (p *Pipeline) printInfo(opts options.Program, program []byte) {
	if opts.Quiet {
		return
	}

	mode := "window"
	switch {
	case opts.Disassemble:
		mode = "disassemble"
	case opts.Headless:
		mode = "headless"
	}

	p.logger.Info("Processing CHIP-8 program",
		log.String("file", opts.Input),
		log.Int("size", len(program)),
		log.String("mode", mode),
	)
}
