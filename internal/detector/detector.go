// Package detector rejects programs of other systems before they are run as
// CHIP-8 code.
package detector

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/arch"
)

// ErrUnsupportedSystem is returned for programs of a system other than CHIP-8.
var ErrUnsupportedSystem = errors.New("unsupported system")

// nesMagic starts every iNES file.
var nesMagic = []byte("NES\x1a")

// foreignExtensions maps file extensions of other systems ROMs. All other files
// are raw CHIP-8 programs, which have no header.
var foreignExtensions = map[string]arch.System{
	".nes": arch.NES,
}

// Detect returns the system of the program. An explicit system option takes
// precedence over the file extension, which takes precedence over the program
// header.
func Detect(opts options.Program, program []byte) (arch.System, error) {
	system := detect(opts, program)
	if system != arch.CHIP8System {
		return system, fmt.Errorf("%w '%s'", ErrUnsupportedSystem, system)
	}
	return system, nil
}

func detect(opts options.Program, program []byte) arch.System {
	if opts.System != "" {
		system, _ := arch.SystemFromString(opts.System)
		return system
	}

	ext := strings.ToLower(filepath.Ext(opts.Input))
	if system, ok := foreignExtensions[ext]; ok {
		return system
	}

	if bytes.HasPrefix(program, nesMagic) {
		return arch.NES
	}
	return arch.CHIP8System
}
