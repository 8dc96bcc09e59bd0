package chip8

import (
	"fmt"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// opcodeSize is the size of CHIP-8 instructions in bytes.
const opcodeSize = 2

// operands describes how the parameters of an instruction are formatted.
type operands int

// Operand formats, the comments show the formatted parameters.
const (
	noOperands      operands = iota
	addrOperand              // $NNN
	v0AddrOperands           // V0, $NNN
	vxByteOperands           // Vx, $NN
	vxVyOperands             // Vx, Vy
	vxOperand                // Vx
	iAddrOperands            // I, $NNN
	drawOperands             // Vx, Vy, $N
	vxDelayOperands          // Vx, DT
	vxKeyOperands            // Vx, K
	delayVxOperands          // DT, Vx
	soundVxOperands          // ST, Vx
	iVxOperands              // I, Vx
	fontVxOperands           // F, Vx
	bcdVxOperands            // B, Vx
	storeOperands            // [I], Vx
	restoreOperands          // Vx, [I]
)

// execution returns the address of the next instruction to execute.
type execution func(c *Chip8, op Opcode) (uint16, error)

// handler binds an entry of the instruction set table to its execution.
type handler struct {
	operands operands
	execute  execution
}

// handlers contains the supported instruction forms keyed by the opcode info value.
// Table entries without a handler, like 0NNN (call machine code routine), are
// rejected as unknown opcode.
var handlers = map[uint16]*handler{
	0x00E0: {operands: noOperands, execute: (*Chip8).cls},
	0x00EE: {operands: noOperands, execute: (*Chip8).ret},
	0x1000: {operands: addrOperand, execute: (*Chip8).jump},
	0x2000: {operands: addrOperand, execute: (*Chip8).call},
	0x3000: {operands: vxByteOperands, execute: (*Chip8).skipEqualByte},
	0x4000: {operands: vxByteOperands, execute: (*Chip8).skipNotEqualByte},
	0x5000: {operands: vxVyOperands, execute: (*Chip8).skipEqualRegister},
	0x6000: {operands: vxByteOperands, execute: (*Chip8).loadByte},
	0x7000: {operands: vxByteOperands, execute: (*Chip8).addByte},
	0x8000: {operands: vxVyOperands, execute: (*Chip8).loadRegister},
	0x8001: {operands: vxVyOperands, execute: (*Chip8).or},
	0x8002: {operands: vxVyOperands, execute: (*Chip8).and},
	0x8003: {operands: vxVyOperands, execute: (*Chip8).xor},
	0x8004: {operands: vxVyOperands, execute: (*Chip8).addRegister},
	0x8005: {operands: vxVyOperands, execute: (*Chip8).sub},
	0x8006: {operands: vxOperand, execute: (*Chip8).shiftRight},
	0x8007: {operands: vxVyOperands, execute: (*Chip8).subn},
	0x800E: {operands: vxOperand, execute: (*Chip8).shiftLeft},
	0x9000: {operands: vxVyOperands, execute: (*Chip8).skipNotEqualRegister},
	0xA000: {operands: iAddrOperands, execute: (*Chip8).loadIndex},
	0xB000: {operands: v0AddrOperands, execute: (*Chip8).jumpOffset},
	0xC000: {operands: vxByteOperands, execute: (*Chip8).random},
	0xD000: {operands: drawOperands, execute: (*Chip8).draw},
	0xE09E: {operands: vxOperand, execute: (*Chip8).skipKeyPressed},
	0xE0A1: {operands: vxOperand, execute: (*Chip8).skipKeyNotPressed},
	0xF007: {operands: vxDelayOperands, execute: (*Chip8).loadDelayTimer},
	0xF00A: {operands: vxKeyOperands, execute: (*Chip8).awaitKey},
	0xF015: {operands: delayVxOperands, execute: (*Chip8).setDelayTimer},
	0xF018: {operands: soundVxOperands, execute: (*Chip8).setSoundTimer},
	0xF01E: {operands: iVxOperands, execute: (*Chip8).addIndex},
	0xF029: {operands: fontVxOperands, execute: (*Chip8).loadGlyph},
	0xF033: {operands: bcdVxOperands, execute: (*Chip8).storeBCD},
	0xF055: {operands: storeOperands, execute: (*Chip8).storeRegisters},
	0xF065: {operands: restoreOperands, execute: (*Chip8).loadRegisters},
}

// Opcode is a decoded CHIP-8 instruction word.
type Opcode struct {
	// Word is the raw 16-bit instruction word.
	Word uint16
	// Instruction is the instruction descriptor, shared by all forms of an instruction.
	Instruction *chip8cpu.Instruction

	info    chip8cpu.OpcodeInfo
	handler *handler
}

// Decode decodes an instruction word. Words that match no supported instruction
// form return a DecodeError.
func Decode(word uint16) (Opcode, error) {
	op, ok := decode(word)
	if !ok {
		return Opcode{}, &DecodeError{Opcode: word}
	}
	return op, nil
}

// decode looks up the word in the instruction set table of its first nibble.
func decode(word uint16) (Opcode, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, entry := range chip8cpu.Opcodes[int(firstNibble)] {
		if entry.Instruction == nil || entry.Info.Mask&word != entry.Info.Value {
			continue
		}
		h, ok := handlers[entry.Info.Value]
		if !ok {
			continue
		}
		return Opcode{
			Word:        word,
			Instruction: entry.Instruction,
			info:        entry.Info,
			handler:     h,
		}, true
	}
	return Opcode{}, false
}

// X returns the X register nibble of the opcode.
func (o Opcode) X() int {
	return int(o.Word&0x0F00) >> 8
}

// Y returns the Y register nibble of the opcode.
func (o Opcode) Y() int {
	return int(o.Word&0x00F0) >> 4
}

// N returns the lowest nibble of the opcode.
func (o Opcode) N() byte {
	return byte(o.Word & 0x000F)
}

// NN returns the lowest byte of the opcode.
func (o Opcode) NN() byte {
	return byte(o.Word & 0x00FF)
}

// NNN returns the 12-bit address of the opcode.
func (o Opcode) NNN() uint16 {
	return o.Word & 0x0FFF
}

// Name returns the instruction name.
func (o Opcode) Name() string {
	if o.Instruction == nil {
		return ""
	}
	return o.Instruction.Name
}

// IsCall returns true if the instruction is a subroutine call.
func (o Opcode) IsCall() bool {
	return o.Instruction != nil && o.Instruction.Name == chip8cpu.CallInst.Name
}

// IsJump returns true if the instruction is an absolute or offset jump.
func (o Opcode) IsJump() bool {
	return o.Instruction != nil && o.Instruction.Name == chip8cpu.JpInst.Name
}

// IsReturn returns true if the instruction returns from a subroutine.
func (o Opcode) IsReturn() bool {
	return o.Instruction != nil && o.Instruction.Name == chip8cpu.RetInst.Name
}

// IsSkip returns true if the instruction conditionally skips the next instruction.
func (o Opcode) IsSkip() bool {
	if o.Instruction == nil {
		return false
	}
	return chip8cpu.SkipInstructions.Contains(o.Instruction.Name)
}

// IsDataReference returns true if the instruction loads an address into the index register.
func (o Opcode) IsDataReference() bool {
	return o.Instruction != nil && o.info.Value == 0xA000
}

// Target returns the branch target of jumps and calls with a static address.
// Offset jumps (BNNN) depend on V0 and have no static target.
func (o Opcode) Target() (uint16, bool) {
	switch o.Word & 0xF000 {
	case 0x1000, 0x2000:
		return o.NNN(), true
	default:
		return 0, false
	}
}

// String returns the instruction in assembly notation, for example "drw V0, V1, $5".
func (o Opcode) String() string {
	name := o.Name()
	if o.handler == nil {
		return name
	}
	if params := o.formatOperands(); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

func (o Opcode) formatOperands() string {
	x := o.X()
	switch o.handler.operands {
	case addrOperand:
		return fmt.Sprintf("$%03X", o.NNN())
	case v0AddrOperands:
		return fmt.Sprintf("V0, $%03X", o.NNN())
	case vxByteOperands:
		return fmt.Sprintf("V%X, $%02X", x, o.NN())
	case vxVyOperands:
		return fmt.Sprintf("V%X, V%X", x, o.Y())
	case vxOperand:
		return fmt.Sprintf("V%X", x)
	case iAddrOperands:
		return fmt.Sprintf("I, $%03X", o.NNN())
	case drawOperands:
		return fmt.Sprintf("V%X, V%X, $%X", x, o.Y(), o.N())
	case vxDelayOperands:
		return fmt.Sprintf("V%X, DT", x)
	case vxKeyOperands:
		return fmt.Sprintf("V%X, K", x)
	case delayVxOperands:
		return fmt.Sprintf("DT, V%X", x)
	case soundVxOperands:
		return fmt.Sprintf("ST, V%X", x)
	case iVxOperands:
		return fmt.Sprintf("I, V%X", x)
	case fontVxOperands:
		return fmt.Sprintf("F, V%X", x)
	case bcdVxOperands:
		return fmt.Sprintf("B, V%X", x)
	case storeOperands:
		return fmt.Sprintf("[I], V%X", x)
	case restoreOperands:
		return fmt.Sprintf("V%X, [I]", x)
	default:
		return ""
	}
}
