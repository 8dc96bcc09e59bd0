// Package disasm implements a CHIP-8 disassembler that follows the execution
// flow of a program to separate code from data and writes a retroasm
// compatible assembly listing.
package disasm

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/chip8emu/internal/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Options of the disassembler.
type Options struct {
	HexComments bool // add address and opcode comments to the output
	ZeroBytes   bool // output trailing zero bytes of the program
}

// Disasm implements a disassembler.
type Disasm struct {
	logger  *log.Logger
	options Options

	program []byte
	offsets []offset // one entry per program byte, index 0 is ProgramStart

	branchDestinations set.Set[uint16] // set of all addresses that are branched to
	dataReferences     set.Set[uint16] // set of all addresses loaded into the index register

	offsetsToParse      []uint16
	offsetsToParseAdded set.Set[uint16]
}

// New creates a new disassembler for the passed program. The program is
// expected to be loaded at chip8.ProgramStart.
func New(logger *log.Logger, program []byte, options Options) (*Disasm, error) {
	if len(program) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("%w: %d bytes exceed the maximum of %d bytes",
			chip8.ErrLoadTooLarge, len(program), chip8.MaxProgramSize)
	}

	dis := &Disasm{
		logger:              logger,
		options:             options,
		program:             program,
		offsets:             make([]offset, len(program)),
		branchDestinations:  set.New[uint16](),
		dataReferences:      set.New[uint16](),
		offsetsToParseAdded: set.New[uint16](),
	}
	return dis, nil
}

// Process disassembles the program and writes the listing to the writer.
func (dis *Disasm) Process(ctx context.Context, w io.Writer) error {
	if len(dis.program) > 0 {
		dis.addAddressToParse(chip8.ProgramStart, chip8.ProgramStart, 0)
	}

	if err := dis.followExecutionFlow(ctx); err != nil {
		return err
	}
	dis.processLabels()

	if err := dis.writeListing(w); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// followExecutionFlow parses opcodes and follows the execution flow to parse all code.
func (dis *Disasm) followExecutionFlow(ctx context.Context) error {
	for address, ok := dis.addressToDisassemble(); ok; address, ok = dis.addressToDisassemble() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("following execution flow: %w", err)
		}

		offsetInfo, word, inspectCode := dis.initializeOffsetInfo(address)
		if !inspectCode {
			continue
		}

		op, err := chip8.Decode(word)
		if err != nil {
			// consider an unknown instruction as start of data
			dis.logger.Debug("Unknown opcode treated as data",
				log.Hex("address", address),
				log.Hex("opcode", word))
			continue
		}

		offsetInfo.opcode = op
		offsetInfo.Code = op.String()
		offsetInfo.SetType(codeOffset)
		dis.offsetInfo(address + 1).SetType(codeOffset)
		if dis.options.HexComments {
			offsetInfo.Comment = fmt.Sprintf("$%04X %04X", address, word)
		}

		dis.handleControlFlow(address, op)
	}
	return nil
}

// initializeOffsetInfo returns the offset info for the given address, the
// instruction word at the address and whether the word should be decoded.
func (dis *Disasm) initializeOffsetInfo(address uint16) (*offset, uint16, bool) {
	offsetInfo := dis.offsetInfo(address)

	if offsetInfo.IsType(codeOffset) {
		// the address is the second byte of an already parsed instruction
		dis.handleJumpIntoInstruction(address - 1)
		offsetInfo.ClearType(codeOffset)
	}

	if !dis.inProgram(address + 1) {
		return offsetInfo, 0, false // a single trailing byte can only be data
	}

	following := dis.offsetInfo(address + 1)
	if following.Code != "" {
		dis.logger.Debug("Instruction overlaps with parsed code",
			log.Hex("address", address))
		return offsetInfo, 0, false
	}

	index := address - chip8.ProgramStart
	word := uint16(dis.program[index])<<8 | uint16(dis.program[index+1])
	return offsetInfo, word, true
}

// handleControlFlow queues the addresses that execution can continue at after the instruction.
func (dis *Disasm) handleControlFlow(address uint16, op chip8.Opcode) {
	next := address + 2

	switch {
	case op.IsJump():
		// offset jumps depend on V0 and can not be followed
		if target, ok := op.Target(); ok {
			dis.addAddressToParse(target, address, jumpDestination)
		}

	case op.IsCall():
		target, _ := op.Target()
		dis.addAddressToParse(target, address, callDestination)
		dis.addAddressToParse(next, address, 0)

	case op.IsSkip():
		dis.addAddressToParse(next, address, 0)
		dis.addAddressToParse(next+2, address, 0)

	case op.IsDataReference():
		if target := op.NNN(); dis.inProgram(target) {
			dis.dataReferences.Add(target)
		}
		dis.addAddressToParse(next, address, 0)

	case !op.IsReturn():
		dis.addAddressToParse(next, address, 0)
	}
}

// addAddressToParse adds an address to the list to be processed if the address
// has not been processed yet. A non zero destination type marks the address as
// branch destination.
func (dis *Disasm) addAddressToParse(address, fromAddress uint16, destination offsetType) {
	if !dis.inProgram(address) {
		dis.logger.Debug("Branch target outside of program",
			log.Hex("address", address),
			log.Hex("from", fromAddress))
		return
	}

	if destination != 0 {
		dis.offsetInfo(address).SetType(destination)
		dis.branchDestinations.Add(address)
	}

	if dis.offsetsToParseAdded.Contains(address) {
		return
	}
	dis.offsetsToParseAdded.Add(address)
	dis.offsetsToParse = append(dis.offsetsToParse, address)
}

// addressToDisassemble returns the next address to disassemble, if there are no
// more addresses to parse false is returned.
func (dis *Disasm) addressToDisassemble() (uint16, bool) {
	if len(dis.offsetsToParse) == 0 {
		return 0, false
	}
	address := dis.offsetsToParse[0]
	dis.offsetsToParse = dis.offsetsToParse[1:]
	return address, true
}

func (dis *Disasm) inProgram(address uint16) bool {
	return address >= chip8.ProgramStart && int(address-chip8.ProgramStart) < len(dis.program)
}

func (dis *Disasm) offsetInfo(address uint16) *offset {
	return &dis.offsets[address-chip8.ProgramStart]
}
