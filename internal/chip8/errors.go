package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrLoadTooLarge is returned when a program does not fit into memory after ProgramStart.
	ErrLoadTooLarge = errors.New("program too large")
	// ErrDecode is matched by every DecodeError.
	ErrDecode = errors.New("unknown opcode")
	// ErrStackOverflow is returned by a call instruction when all stack entries are used.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned by a return instruction when the stack is empty.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrInvalidKeyIndex is returned when a keypad index outside of 0-15 is used.
	ErrInvalidKeyIndex = errors.New("invalid key index")
)

// DecodeError describes an opcode that matches no known instruction.
type DecodeError struct {
	Address uint16
	Opcode  uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unknown opcode $%04X at address $%03X", e.Opcode, e.Address)
}

// Unwrap allows matching the error against ErrDecode.
func (e *DecodeError) Unwrap() error {
	return ErrDecode
}
