package disasm

import "github.com/retroenv/chip8emu/internal/chip8"

// offsetType defines the type of a program offset.
type offsetType uint8

const (
	codeOffset      offsetType = 1 << iota // byte of a decoded instruction
	codeAsData                             // instruction that was converted to data
	callDestination                        // target of a call
	jumpDestination                        // target of a jump
)

// offset contains the disassembly information for a single program byte.
type offset struct {
	offsetType

	Code    string // asm output of the instruction, only set for the first byte
	Comment string
	Label   string

	opcode chip8.Opcode
}

// IsType returns true if the offset is of the given type.
func (o *offset) IsType(typ offsetType) bool {
	return o.offsetType&typ != 0
}

// SetType sets the given offset type.
func (o *offset) SetType(typ offsetType) {
	o.offsetType |= typ
}

// ClearType clears the given offset type.
func (o *offset) ClearType(typ offsetType) {
	o.offsetType &^= typ
}

// isOperand returns whether the offset is the second byte of a decoded instruction.
// These bytes are not written to the listing and can not carry a label.
func (o *offset) isOperand() bool {
	return o.IsType(codeOffset) && o.Code == ""
}
