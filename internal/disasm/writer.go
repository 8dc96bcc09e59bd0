package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8emu/internal/chip8"
)

const dataBytesPerLine = 8

// listingWriter writes retroasm compatible CHIP-8 assembly.
type listingWriter struct {
	dis *Disasm
	w   io.Writer

	data        []byte // pending data bytes that are written as one line
	dataAddress uint16
}

// writeListing writes the disassembled program as assembly listing.
func (dis *Disasm) writeListing(w io.Writer) error {
	lw := &listingWriter{
		dis: dis,
		w:   w,
	}
	return lw.write()
}

func (lw *listingWriter) write() error {
	if _, err := fmt.Fprintf(lw.w, "; CHIP-8 ROM Disassembly\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}

	if _, err := fmt.Fprintf(lw.w, "; Code base address: $%04X\n", chip8.ProgramStart); err != nil {
		return fmt.Errorf("writing code base address: %w", err)
	}

	if _, err := fmt.Fprintf(lw.w, "; Program starts at $200 in CHIP-8 memory space\n\n"); err != nil {
		return fmt.Errorf("writing memory space comment: %w", err)
	}

	if _, err := fmt.Fprintf(lw.w, ".org $200\n\n"); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}

	endIndex := lw.endIndex()
	for i := range endIndex {
		if err := lw.writeOffset(i); err != nil {
			return err
		}
	}
	return lw.flushData()
}

// writeOffset writes the label and the code or data of the program byte at the given index.
func (lw *listingWriter) writeOffset(index int) error {
	offsetInfo := &lw.dis.offsets[index]
	if offsetInfo.isOperand() {
		return nil
	}

	if offsetInfo.Label != "" || offsetInfo.Code != "" || offsetInfo.Comment != "" ||
		len(lw.data) == dataBytesPerLine {

		if err := lw.flushData(); err != nil {
			return err
		}
	}

	if offsetInfo.Label != "" {
		if _, err := fmt.Fprintf(lw.w, "%s:\n", offsetInfo.Label); err != nil {
			return fmt.Errorf("writing label %s: %w", offsetInfo.Label, err)
		}
	}

	if offsetInfo.Code != "" {
		return lw.writeLine(offsetInfo.Code, offsetInfo.Comment)
	}

	address := chip8.ProgramStart + uint16(index)
	b := lw.dis.program[index]
	if offsetInfo.Comment != "" {
		return lw.writeLine(fmt.Sprintf(".byte $%02X", b), offsetInfo.Comment)
	}

	if len(lw.data) == 0 {
		lw.dataAddress = address
	}
	lw.data = append(lw.data, b)
	return nil
}

// flushData writes all pending data bytes as a single line.
func (lw *listingWriter) flushData() error {
	if len(lw.data) == 0 {
		return nil
	}

	var buf strings.Builder
	buf.WriteString(fmt.Sprintf(".byte $%02X", lw.data[0]))
	for _, b := range lw.data[1:] {
		buf.WriteString(fmt.Sprintf(", $%02X", b))
	}

	var comment string
	if lw.dis.options.HexComments {
		comment = fmt.Sprintf("$%04X", lw.dataAddress)
	}

	lw.data = lw.data[:0]
	return lw.writeLine(buf.String(), comment)
}

// writeLine writes an indented code or data line with an optional comment.
func (lw *listingWriter) writeLine(s, comment string) error {
	line := "    " + s

	if comment == "" {
		if _, err := fmt.Fprintf(lw.w, "%s\n", line); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
		return nil
	}

	if _, err := fmt.Fprintf(lw.w, "%-32s ; %s\n", line, comment); err != nil {
		return fmt.Errorf("writing line with comment: %w", err)
	}
	return nil
}

// endIndex returns the index after the last meaningful byte of the program.
func (lw *listingWriter) endIndex() int {
	if lw.dis.options.ZeroBytes {
		return len(lw.dis.program)
	}

	for i := len(lw.dis.program) - 1; i >= 0; i-- {
		offsetInfo := &lw.dis.offsets[i]
		if lw.dis.program[i] != 0 || offsetInfo.Label != "" || offsetInfo.IsType(codeOffset) {
			return i + 1
		}
	}
	return 0
}
