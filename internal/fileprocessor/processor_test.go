package fileprocessor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestProcessFile_DisassembleToFile(t *testing.T) {
	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "loop.ch8")
	assert.NoError(t, os.WriteFile(input, []byte{0x00, 0xE0, 0x12, 0x00}, 0600))

	opts := options.Program{
		Parameters:  options.Parameters{Input: input, Output: GenerateOutputFilename(input)},
		Flags:       options.Flags{Quiet: true},
		Disassembly: options.Disassembly{Disassemble: true},
	}
	assert.NoError(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts))

	data, err := os.ReadFile(filepath.Join(tmpDir, "loop.asm"))
	assert.NoError(t, err)
	assert.Contains(t, string(data), "Start:\n")
}

func TestProcessFile_Error(t *testing.T) {
	opts := options.Program{
		Parameters:  options.Parameters{Input: filepath.Join(t.TempDir(), "missing.ch8")},
		Disassembly: options.Disassembly{Disassemble: true},
	}
	assert.Error(t, ProcessFile(context.Background(), log.NewTestLogger(t), opts))
}

func TestGetFilesToProcess(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a.ch8", "b.ch8", "c.txt"} {
		assert.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte{0x00, 0xE0}, 0600))
	}

	opts := &options.Program{Parameters: options.Parameters{Batch: filepath.Join(tmpDir, "*.ch8")}}
	files, err := GetFilesToProcess(opts)
	assert.NoError(t, err)
	assert.Len(t, files, 2)

	opts = &options.Program{Parameters: options.Parameters{Batch: filepath.Join(tmpDir, "*.c8")}}
	files, err = GetFilesToProcess(opts)
	assert.True(t, errors.Is(err, ErrNoFilesMatched))
	assert.ErrorContains(t, err, "*.c8")
	assert.Empty(t, files)

	opts = &options.Program{Parameters: options.Parameters{Input: "pong.ch8"}}
	files, err = GetFilesToProcess(opts)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(files))
	assert.Equal(t, "pong.ch8", files[0])
}

func TestGenerateOutputFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"pong.ch8", "pong.asm"},
		{"dir/tetris.c8", "dir/tetris.asm"},
		{"game", "game.asm"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateOutputFilename(tt.input))
		})
	}
}
