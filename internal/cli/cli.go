// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/chip8emu/internal/frontend"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/arch"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Batch == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if err := validateOptionCombinations(opts); err != nil {
		return opts, err
	}

	if opts.Batch == "" {
		opts.Input = args[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: chip8emu [options] <program file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.System = strings.ToLower(opts.System)
	if opts.System == "" {
		return nil
	}

	system, _ := arch.SystemFromString(opts.System)
	if system != arch.CHIP8System {
		return fmt.Errorf("unsupported system: %s. Valid options: %s", opts.System, arch.CHIP8System)
	}
	return nil
}

// validateOptionCombinations checks for conflicting or invalid option values
func validateOptionCombinations(opts options.Program) error {
	switch {
	case opts.Frames < 0:
		return errors.New("the number of frames can not be negative")
	case opts.Cycles <= 0:
		return errors.New("the number of cycles per frame has to be positive")
	case opts.Scale <= 0:
		return errors.New("the window scale has to be positive")
	case opts.Disassemble && opts.Headless:
		return errors.New("the -disasm and -headless options can not be combined")
	case opts.Batch != "" && !opts.Disassemble:
		return errors.New("the -batch option requires the -disasm option")
	case opts.Trace && !opts.Debug:
		return errors.New("the -trace option requires the -debug option")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file of the disassembly, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "disassemble a batch of given path and file mask and automatically .asm file naming, for example *.ch8")
	flags.StringVar(&opts.System, "s", "", "system of the program (chip8) - if not auto-detected from file extension")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")

	flags.BoolVar(&opts.Headless, "headless", false, "run without window and render the display as text on the console")
	flags.IntVar(&opts.Frames, "frames", 0, "stop after the given number of 60 Hz frames, 0 runs until interrupted")
	flags.IntVar(&opts.Cycles, "cycles", 10, "number of instructions executed per 60 Hz frame")
	flags.IntVar(&opts.Scale, "scale", frontend.DefaultScale, "window scale factor of the 64x32 display")
	flags.BoolVar(&opts.SpriteWrap, "wrap", false, "wrap sprites around the display edges instead of clipping them")
	flags.BoolVar(&opts.SkipInvalid, "skip-invalid", false, "skip unknown opcodes instead of halting the program")

	flags.BoolVar(&opts.Disassemble, "disasm", false, "disassemble the program instead of running it")
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output addresses and opcodes as hex values in comments")
	flags.BoolVar(&opts.ZeroBytes, "z", false, "output the trailing zero bytes of the program")
}
