// Package chip8 implements the CHIP-8 interpreter core.
//
// # Machine Overview
//
// CHIP-8 is an interpreted programming language developed in the 1970s for simple games
// on early microcomputers. The interpreter core owns the complete machine state:
//   - 4KB of memory (0x000-MaxAddress), font data at 0x000, programs at ProgramStart
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as flag output
//   - a 12-bit index register I and a program counter
//   - a fixed 16 entry call stack
//   - delay and sound timers decremented by TickTimers at 60 Hz
//   - a 64x32 monochrome framebuffer and a 16 key hex keypad
//
// # Execution Model
//
// Step performs exactly one fetch-decode-execute cycle. Every instruction returns
// its own next program counter, so jumps, calls, returns and skips are never
// double advanced. The core is fully synchronous: waiting for a key press
// (FX0A) does not block, the machine instead stays on the instruction and every
// following Step polls the keypad until a newly pressed key arrives.
//
// # Usage Example
//
//	machine := chip8.New()
//	if err := machine.Load(program); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for {
//		if err := machine.Step(); err != nil {
//			return fmt.Errorf("executing instruction: %w", err)
//		}
//	}
//
// Drivers call TickTimers at 60 Hz independent of the instruction rate and
// consume the redraw flag once per host frame with ConsumeRedraw.
package chip8
