package disasm

import (
	"fmt"
	"slices"

	"github.com/retroenv/chip8emu/internal/chip8"
)

const (
	startLabel = "Start"
	callNaming = "call_%03X"
	jumpNaming = "jump_%03X"
	dataNaming = "data_%03X"
)

// processLabels names all branch destinations and data references and updates
// the referencing instructions with the label names.
func (dis *Disasm) processLabels() {
	if len(dis.program) == 0 {
		return
	}
	dis.offsetInfo(chip8.ProgramStart).Label = startLabel

	addresses := make([]uint16, 0, len(dis.branchDestinations)+len(dis.dataReferences))
	for address := range dis.branchDestinations {
		addresses = append(addresses, address)
	}
	for address := range dis.dataReferences {
		if !dis.branchDestinations.Contains(address) {
			addresses = append(addresses, address)
		}
	}
	slices.Sort(addresses)

	for _, address := range addresses {
		offsetInfo := dis.offsetInfo(address)
		if offsetInfo.Label != "" || offsetInfo.isOperand() {
			continue
		}

		switch {
		case offsetInfo.IsType(callDestination):
			offsetInfo.Label = fmt.Sprintf(callNaming, address)
		case offsetInfo.IsType(jumpDestination):
			offsetInfo.Label = fmt.Sprintf(jumpNaming, address)
		default:
			offsetInfo.Label = fmt.Sprintf(dataNaming, address)
		}
	}

	for i := range dis.offsets {
		dis.replaceTargetByLabel(&dis.offsets[i])
	}
}

// replaceTargetByLabel replaces the address parameter of jumps, calls and index
// register loads by the label of the target address.
func (dis *Disasm) replaceTargetByLabel(offsetInfo *offset) {
	if offsetInfo.Code == "" {
		return
	}
	op := offsetInfo.opcode

	target, ok := op.Target()
	if op.IsDataReference() {
		target, ok = op.NNN(), true
	}
	if !ok || !dis.inProgram(target) {
		return
	}

	targetInfo := dis.offsetInfo(target)
	label := targetInfo.Label
	switch {
	case label == "" || targetInfo.isOperand():
		return
	case op.IsDataReference():
		offsetInfo.Code = fmt.Sprintf("%s I, %s", op.Name(), label)
	default:
		offsetInfo.Code = fmt.Sprintf("%s %s", op.Name(), label)
	}
}

// handleJumpIntoInstruction converts the instruction at the given address that
// has a branch destination inside its second byte into data.
func (dis *Disasm) handleJumpIntoInstruction(address uint16) {
	offsetInfo := dis.offsetInfo(address)
	offsetInfo.Comment = "branch into instruction detected: " + offsetInfo.Code
	offsetInfo.Code = ""
	offsetInfo.ClearType(codeOffset)
	offsetInfo.SetType(codeAsData)
}
