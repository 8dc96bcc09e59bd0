package detector

import (
	"errors"
	"testing"

	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/assert"
)

func TestDetect(t *testing.T) {
	chip8Program := []byte{0x00, 0xE0, 0x12, 0x00}
	nesHeader := []byte{'N', 'E', 'S', 0x1A, 0x01, 0x01}

	tests := []struct {
		name       string
		systemOpt  string
		inputFile  string
		program    []byte
		wantSystem arch.System
		wantErr    bool
	}{
		{
			name:       "explicit CHIP8 system option",
			systemOpt:  "chip8",
			inputFile:  "game.nes",
			program:    chip8Program,
			wantSystem: arch.CHIP8System,
		},
		{
			name:       "explicit NES system option",
			systemOpt:  "nes",
			inputFile:  "game.ch8",
			program:    chip8Program,
			wantSystem: arch.NES,
			wantErr:    true,
		},
		{
			name:       ".ch8 extension",
			inputFile:  "pong.ch8",
			program:    chip8Program,
			wantSystem: arch.CHIP8System,
		},
		{
			name:       ".CH8 extension (uppercase)",
			inputFile:  "PONG.CH8",
			program:    chip8Program,
			wantSystem: arch.CHIP8System,
		},
		{
			name:       "no extension",
			inputFile:  "game",
			program:    chip8Program,
			wantSystem: arch.CHIP8System,
		},
		{
			name:       ".nes extension",
			inputFile:  "super_mario.NES",
			program:    chip8Program,
			wantSystem: arch.NES,
			wantErr:    true,
		},
		{
			name:       "iNES header with unknown extension",
			inputFile:  "game.rom",
			program:    nesHeader,
			wantSystem: arch.NES,
			wantErr:    true,
		},
		{
			name:       "program shorter than header",
			inputFile:  "game.rom",
			program:    []byte{'N', 'E'},
			wantSystem: arch.CHIP8System,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Program{
				Parameters: options.Parameters{Input: tt.inputFile},
				Flags:      options.Flags{System: tt.systemOpt},
			}

			got, err := Detect(opts, tt.program)
			assert.Equal(t, tt.wantSystem, got)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnsupportedSystem))
				assert.ErrorContains(t, err, tt.wantSystem.String())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
