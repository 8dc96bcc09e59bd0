// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/chip8emu/internal/disasm"
	"github.com/retroenv/chip8emu/internal/driver"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// MachineOptions returns the machine options for the program options.
// The instruction trace is only enabled if requested as it logs every executed instruction.
func MachineOptions(opts options.Program, logger *log.Logger) []chip8.Option {
	machineOptions := []chip8.Option{
		chip8.WithSpriteWrap(opts.SpriteWrap),
	}
	if opts.Trace {
		machineOptions = append(machineOptions, chip8.WithLogger(logger))
	}
	return machineOptions
}

// DriverOptions returns the driver options for the program options.
func DriverOptions(opts options.Program) driver.Options {
	driverOptions := driver.NewOptions()
	if opts.Cycles > 0 {
		driverOptions.CyclesPerFrame = opts.Cycles
	}
	driverOptions.HaltOnDecodeError = !opts.SkipInvalid
	driverOptions.MaxFrames = opts.Frames
	return driverOptions
}

// DisasmOptions returns the disassembler options for the program options.
func DisasmOptions(opts options.Program) disasm.Options {
	return disasm.Options{
		HexComments: !opts.NoHexComments,
		ZeroBytes:   opts.ZeroBytes,
	}
}
