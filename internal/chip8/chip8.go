package chip8

import (
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: Interpreter area, font data at 0x000-0x04F (512 bytes)
//	0x200-0xFFF: User program space (3584 bytes)
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the memory address where programs are loaded and start execution.
	ProgramStart = 0x200

	// MaxAddress is the highest valid address, all addresses are masked to 12 bits.
	MaxAddress = 0xFFF

	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart
)

// Machine resources.
const (
	RegisterCount = 16
	StackSize     = 16
	KeyCount      = 16
)

// Option configures a machine.
type Option func(*Chip8)

// WithLogger enables a debug level trace of every executed instruction.
func WithLogger(logger *log.Logger) Option {
	return func(c *Chip8) {
		c.logger = logger
	}
}

// WithRandom sets the source of random bytes used by the RND instruction.
func WithRandom(random func() byte) Option {
	return func(c *Chip8) {
		c.randomByte = random
	}
}

// WithSpriteWrap sets the sprite edge policy. By default sprite pixels that
// exceed the right or bottom edge of the display are clipped, when enabled they
// wrap around to the opposite edge.
func WithSpriteWrap(wrap bool) Option {
	return func(c *Chip8) {
		c.spriteWrap = wrap
	}
}

// Chip8 is a CHIP-8 machine. All state is owned by the instance, multiple machines
// can be used independently. A machine is not safe for concurrent use.
type Chip8 struct {
	logger     *log.Logger
	randomByte func() byte
	spriteWrap bool

	memory [MemorySize]byte
	v      [RegisterCount]byte
	index  uint16
	pc     uint16
	opcode uint16 // last fetched opcode

	stack [StackSize]uint16
	sp    int // number of used stack entries

	delayTimer byte
	soundTimer byte

	display Framebuffer
	redraw  bool

	keys [KeyCount]bool

	awaitingKey   bool
	awaitRegister int
	heldKeys      [KeyCount]bool // keys already pressed when the wait started
}

// New returns a new machine in reset state.
func New(options ...Option) *Chip8 {
	c := &Chip8{
		randomByte: func() byte {
			return byte(rand.UintN(256))
		},
	}
	for _, option := range options {
		option(c)
	}
	c.Reset()
	return c
}

// Reset initializes the machine state. Memory, registers, stack, timers, keypad
// and framebuffer are cleared, the font is copied to FontAddress and the program
// counter is set to ProgramStart. Reset can be called any number of times.
func (c *Chip8) Reset() {
	c.memory = [MemorySize]byte{}
	copy(c.memory[FontAddress:], fontSet[:])

	c.v = [RegisterCount]byte{}
	c.index = 0
	c.pc = ProgramStart
	c.opcode = 0

	c.stack = [StackSize]uint16{}
	c.sp = 0

	c.delayTimer = 0
	c.soundTimer = 0

	c.display.clear()
	c.redraw = false

	c.keys = [KeyCount]bool{}
	c.awaitingKey = false
	c.awaitRegister = 0
	c.heldKeys = [KeyCount]bool{}
}

// Load copies the program into memory starting at ProgramStart and sets the
// program counter to ProgramStart. Other state is not modified, call Reset first
// for a clean run. Programs larger than MaxProgramSize are rejected without
// modifying memory.
func (c *Chip8) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes exceed the maximum of %d bytes", ErrLoadTooLarge, len(program), MaxProgramSize)
	}
	copy(c.memory[ProgramStart:], program)
	c.pc = ProgramStart
	return nil
}

// Step executes exactly one instruction. While the machine is waiting for a key
// press, Step only polls the keypad. On error the machine state is not modified
// and the program counter still points to the failing instruction.
func (c *Chip8) Step() error {
	if c.awaitingKey {
		c.pollKeypad()
		return nil
	}

	pc := c.pc & MaxAddress
	word := uint16(c.memory[pc])<<8 | uint16(c.memory[(pc+1)&MaxAddress])
	c.opcode = word

	op, ok := decode(word)
	if !ok {
		return &DecodeError{Address: pc, Opcode: word}
	}

	if c.logger != nil {
		c.logger.Debug("Executing instruction",
			log.Hex("pc", pc),
			log.Hex("opcode", word),
			log.Stringer("instruction", op))
	}

	next, err := op.handler.execute(c, op)
	if err != nil {
		return fmt.Errorf("executing '%s' at address $%03X: %w", op, pc, err)
	}
	c.pc = next & MaxAddress
	return nil
}

// SkipInstruction advances the program counter to the next instruction without
// executing the current one. Drivers use it to continue after a decode error.
func (c *Chip8) SkipInstruction() {
	c.pc = (c.pc + opcodeSize) & MaxAddress
}

// TickTimers decrements the delay and sound timers if they are not zero.
// It returns true if a beep is due, which is the case when the sound timer
// was 1 before this tick.
func (c *Chip8) TickTimers() bool {
	if c.delayTimer > 0 {
		c.delayTimer--
	}

	beep := c.soundTimer == 1
	if c.soundTimer > 0 {
		c.soundTimer--
	}
	return beep
}

// Framebuffer returns a read-only view of the display.
func (c *Chip8) Framebuffer() *Framebuffer {
	return &c.display
}

// ConsumeRedraw returns whether the framebuffer changed since the last call and
// clears the redraw flag.
func (c *Chip8) ConsumeRedraw() bool {
	redraw := c.redraw
	c.redraw = false
	return redraw
}

// SetKey sets the pressed state of a keypad key.
func (c *Chip8) SetKey(index int, pressed bool) error {
	if index < 0 || index >= KeyCount {
		return fmt.Errorf("%w: %d", ErrInvalidKeyIndex, index)
	}
	c.keys[index] = pressed
	return nil
}

// AwaitingKey returns whether the machine is halted until a key is pressed.
func (c *Chip8) AwaitingKey() bool {
	return c.awaitingKey
}

// PC returns the program counter.
func (c *Chip8) PC() uint16 {
	return c.pc
}

// Index returns the index register.
func (c *Chip8) Index() uint16 {
	return c.index
}

// V returns the value of the general purpose register, x is masked to 0-15.
func (c *Chip8) V(x int) byte {
	return c.v[x&0x0F]
}

// Opcode returns the last fetched opcode.
func (c *Chip8) Opcode() uint16 {
	return c.opcode
}

// StackDepth returns the number of used stack entries.
func (c *Chip8) StackDepth() int {
	return c.sp
}

// DelayTimer returns the delay timer value.
func (c *Chip8) DelayTimer() byte {
	return c.delayTimer
}

// SoundTimer returns the sound timer value.
func (c *Chip8) SoundTimer() byte {
	return c.soundTimer
}

// ReadMemory returns the byte at the given address, the address is masked to 12 bits.
func (c *Chip8) ReadMemory(address uint16) byte {
	return c.memory[address&MaxAddress]
}

// pollKeypad completes a pending key wait if a key was newly pressed since the
// wait started. Keys that were held when the wait started count once they have
// been released and pressed again.
func (c *Chip8) pollKeypad() {
	for i, pressed := range c.keys {
		if !pressed {
			c.heldKeys[i] = false
			continue
		}
		if c.heldKeys[i] {
			continue
		}

		c.v[c.awaitRegister] = byte(i)
		c.awaitingKey = false
		c.pc = (c.pc + opcodeSize) & MaxAddress
		return
	}
}
