// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string `arg:"positional" usage:"CHIP-8 program file"`
	Output string `flag:"o" usage:"output .asm file of the disassembly (default: stdout)"`
	Batch  string `flag:"batch" usage:"disassemble files matching pattern (e.g. *.ch8)"`
}

// Flags contains behavior options.
type Flags struct {
	System string `flag:"s" usage:"target system: chip8 (default: auto-detect)"`
	Debug  bool   `flag:"debug" usage:"enable debug logging"`
	Quiet  bool   `flag:"q" usage:"quiet mode"`
	Trace  bool   `flag:"trace" usage:"log every executed instruction, requires -debug"`
}

// Emulation contains options of the emulator.
type Emulation struct {
	Headless    bool `flag:"headless" usage:"run without window and render the display as text"`
	Frames      int  `flag:"frames" usage:"stop after the given number of frames (default: unlimited)"`
	Cycles      int  `flag:"cycles" usage:"instructions executed per frame" default:"10"`
	Scale       int  `flag:"scale" usage:"window scale factor of the display" default:"10"`
	SpriteWrap  bool `flag:"wrap" usage:"wrap sprites around the display edges instead of clipping"`
	SkipInvalid bool `flag:"skip-invalid" usage:"skip unknown opcodes instead of halting"`
}

// Disassembly contains options of the disassembler.
type Disassembly struct {
	Disassemble   bool `flag:"disasm" usage:"disassemble the program instead of running it"`
	NoHexComments bool `flag:"nohexcomments" usage:"omit address and opcode comments"`
	ZeroBytes     bool `flag:"z" usage:"include trailing zero bytes of the program"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Emulation
	Disassembly
}
