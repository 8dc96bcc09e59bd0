package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func parseArgs(t *testing.T, args ...string) (options.Program, error) {
	t.Helper()

	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = append([]string{"prog"}, args...)
	return ParseFlags()
}

//nolint:funlen // test functions can be long
func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "default flags",
			args: []string{"pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Emulation:  options.Emulation{Cycles: 10, Scale: 10},
			},
		},
		{
			name: "emulation flags",
			args: []string{"-headless", "-frames", "120", "-cycles", "20", "-wrap", "-skip-invalid", "pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				Emulation: options.Emulation{
					Headless:    true,
					Frames:      120,
					Cycles:      20,
					Scale:       10,
					SpriteWrap:  true,
					SkipInvalid: true,
				},
			},
		},
		{
			name: "disassembly flags",
			args: []string{"-disasm", "-nohexcomments", "-z", "-o", "pong.asm", "pong.ch8"},
			want: options.Program{
				Parameters:  options.Parameters{Input: "pong.ch8", Output: "pong.asm"},
				Emulation:   options.Emulation{Cycles: 10, Scale: 10},
				Disassembly: options.Disassembly{Disassemble: true, NoHexComments: true, ZeroBytes: true},
			},
		},
		{
			name: "system and logging flags",
			args: []string{"-s", "CHIP8", "-debug", "-trace", "-scale", "4", "game.bin"},
			want: options.Program{
				Parameters: options.Parameters{Input: "game.bin"},
				Flags:      options.Flags{System: "chip8", Debug: true, Trace: true},
				Emulation:  options.Emulation{Cycles: 10, Scale: 4},
			},
		},
		{
			name: "batch disassembly",
			args: []string{"-disasm", "-batch", "*.ch8"},
			want: options.Program{
				Parameters:  options.Parameters{Batch: "*.ch8"},
				Emulation:   options.Emulation{Cycles: 10, Scale: 10},
				Disassembly: options.Disassembly{Disassemble: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(t, tt.args...)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlags_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{
			name: "missing program file",
			args: nil,
		},
		{
			name: "flag after program file",
			args: []string{"pong.ch8", "-headless"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(t, tt.args...)
			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
		})
	}
}

func TestParseFlags_InvalidOptions(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		errContain string
	}{
		{name: "unsupported system", args: []string{"-s", "nes", "game.nes"}, errContain: "unsupported system"},
		{name: "negative frames", args: []string{"-frames", "-1", "pong.ch8"}, errContain: "frames"},
		{name: "zero cycles", args: []string{"-cycles", "0", "pong.ch8"}, errContain: "cycles"},
		{name: "zero scale", args: []string{"-scale", "0", "pong.ch8"}, errContain: "scale"},
		{name: "disasm and headless", args: []string{"-disasm", "-headless", "pong.ch8"}, errContain: "-headless"},
		{name: "batch without disasm", args: []string{"-batch", "*.ch8"}, errContain: "-batch"},
		{name: "trace without debug", args: []string{"-trace", "pong.ch8"}, errContain: "-trace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(t, tt.args...)
			assert.ErrorContains(t, err, tt.errContain)

			var usageErr *UsageError
			assert.False(t, errors.As(err, &usageErr))
		})
	}
}
