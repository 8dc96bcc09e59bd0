// Package loader handles program file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8emu/internal/chip8"
)

// ErrEmptyProgram is returned for program files without content.
var ErrEmptyProgram = errors.New("program file is empty")

// Loader handles loading program files from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// Load reads a raw CHIP-8 program file. Files larger than the program space
// of the machine are rejected without reading them completely.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("getting file info of %s: %w", path, err)
	}
	if info.Size() > chip8.MaxProgramSize {
		return nil, fmt.Errorf("%w: file size %d exceeds the maximum of %d bytes",
			chip8.ErrLoadTooLarge, info.Size(), chip8.MaxProgramSize)
	}

	// the size of non regular files is not known in advance, read one byte more
	// than allowed to detect oversized input
	data, err := io.ReadAll(io.LimitReader(file, chip8.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	switch {
	case len(data) == 0:
		return nil, fmt.Errorf("loading %s: %w", path, ErrEmptyProgram)
	case len(data) > chip8.MaxProgramSize:
		return nil, fmt.Errorf("%w: more than %d bytes read", chip8.ErrLoadTooLarge, chip8.MaxProgramSize)
	}
	return data, nil
}
