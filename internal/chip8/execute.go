package chip8

// next returns the address of the instruction following the current one.
func (c *Chip8) next() uint16 {
	return c.pc + opcodeSize
}

// skipIf returns the address of the instruction after the next one if the condition holds.
func (c *Chip8) skipIf(condition bool) uint16 {
	if condition {
		return c.pc + 2*opcodeSize
	}
	return c.pc + opcodeSize
}

// setFlag writes the flag register, it has to be called after the result was
// written so that the flag wins when VF is also the destination.
func (c *Chip8) setFlag(set bool) {
	if set {
		c.v[0xF] = 1
	} else {
		c.v[0xF] = 0
	}
}

func address(base uint16, offset int) uint16 {
	return (base + uint16(offset)) & MaxAddress
}

// 00E0
func (c *Chip8) cls(_ Opcode) (uint16, error) {
	c.display.clear()
	c.redraw = true
	return c.next(), nil
}

// 00EE
func (c *Chip8) ret(_ Opcode) (uint16, error) {
	if c.sp == 0 {
		return 0, ErrStackUnderflow
	}
	c.sp--
	return c.stack[c.sp], nil
}

// 1NNN
func (c *Chip8) jump(op Opcode) (uint16, error) {
	return op.NNN(), nil
}

// 2NNN
func (c *Chip8) call(op Opcode) (uint16, error) {
	if c.sp == StackSize {
		return 0, ErrStackOverflow
	}
	c.stack[c.sp] = c.next()
	c.sp++
	return op.NNN(), nil
}

// 3XNN
func (c *Chip8) skipEqualByte(op Opcode) (uint16, error) {
	return c.skipIf(c.v[op.X()] == op.NN()), nil
}

// 4XNN
func (c *Chip8) skipNotEqualByte(op Opcode) (uint16, error) {
	return c.skipIf(c.v[op.X()] != op.NN()), nil
}

// 5XY0
func (c *Chip8) skipEqualRegister(op Opcode) (uint16, error) {
	return c.skipIf(c.v[op.X()] == c.v[op.Y()]), nil
}

// 6XNN
func (c *Chip8) loadByte(op Opcode) (uint16, error) {
	c.v[op.X()] = op.NN()
	return c.next(), nil
}

// 7XNN, the carry flag is not changed.
func (c *Chip8) addByte(op Opcode) (uint16, error) {
	c.v[op.X()] += op.NN()
	return c.next(), nil
}

// 8XY0
func (c *Chip8) loadRegister(op Opcode) (uint16, error) {
	c.v[op.X()] = c.v[op.Y()]
	return c.next(), nil
}

// 8XY1
func (c *Chip8) or(op Opcode) (uint16, error) {
	c.v[op.X()] |= c.v[op.Y()]
	return c.next(), nil
}

// 8XY2
func (c *Chip8) and(op Opcode) (uint16, error) {
	c.v[op.X()] &= c.v[op.Y()]
	return c.next(), nil
}

// 8XY3
func (c *Chip8) xor(op Opcode) (uint16, error) {
	c.v[op.X()] ^= c.v[op.Y()]
	return c.next(), nil
}

// 8XY4, VF is set on 8-bit overflow.
func (c *Chip8) addRegister(op Opcode) (uint16, error) {
	sum := uint16(c.v[op.X()]) + uint16(c.v[op.Y()])
	c.v[op.X()] = byte(sum)
	c.setFlag(sum > 0xFF)
	return c.next(), nil
}

// 8XY5, VF is set when no borrow occurs.
func (c *Chip8) sub(op Opcode) (uint16, error) {
	vx, vy := c.v[op.X()], c.v[op.Y()]
	c.v[op.X()] = vx - vy
	c.setFlag(vx >= vy)
	return c.next(), nil
}

// 8XY6, VF receives the bit shifted out.
func (c *Chip8) shiftRight(op Opcode) (uint16, error) {
	vx := c.v[op.X()]
	c.v[op.X()] = vx >> 1
	c.setFlag(vx&0x01 != 0)
	return c.next(), nil
}

// 8XY7, VF is set when no borrow occurs.
func (c *Chip8) subn(op Opcode) (uint16, error) {
	vx, vy := c.v[op.X()], c.v[op.Y()]
	c.v[op.X()] = vy - vx
	c.setFlag(vy >= vx)
	return c.next(), nil
}

// 8XYE, VF receives the bit shifted out.
func (c *Chip8) shiftLeft(op Opcode) (uint16, error) {
	vx := c.v[op.X()]
	c.v[op.X()] = vx << 1
	c.setFlag(vx&0x80 != 0)
	return c.next(), nil
}

// 9XY0
func (c *Chip8) skipNotEqualRegister(op Opcode) (uint16, error) {
	return c.skipIf(c.v[op.X()] != c.v[op.Y()]), nil
}

// ANNN
func (c *Chip8) loadIndex(op Opcode) (uint16, error) {
	c.index = op.NNN()
	return c.next(), nil
}

// BNNN
func (c *Chip8) jumpOffset(op Opcode) (uint16, error) {
	return (uint16(c.v[0]) + op.NNN()) & MaxAddress, nil
}

// CXNN
func (c *Chip8) random(op Opcode) (uint16, error) {
	c.v[op.X()] = c.randomByte() & op.NN()
	return c.next(), nil
}

// DXYN draws a sprite of N rows read from memory at I. The start coordinates
// wrap around the display, pixels beyond the edges are clipped or wrapped
// depending on the sprite edge policy.
func (c *Chip8) draw(op Opcode) (uint16, error) {
	x0 := int(c.v[op.X()]) % Width
	y0 := int(c.v[op.Y()]) % Height
	collision := false

	for row := range int(op.N()) {
		y := y0 + row
		if y >= Height {
			if !c.spriteWrap {
				break
			}
			y %= Height
		}

		data := c.memory[address(c.index, row)]
		for col := range 8 {
			if data&(0x80>>col) == 0 {
				continue
			}

			x := x0 + col
			if x >= Width {
				if !c.spriteWrap {
					break
				}
				x %= Width
			}

			if c.display.flip(x, y) {
				collision = true
			}
		}
	}

	c.setFlag(collision)
	c.redraw = true
	return c.next(), nil
}

// EX9E
func (c *Chip8) skipKeyPressed(op Opcode) (uint16, error) {
	return c.skipIf(c.keys[c.v[op.X()]&0x0F]), nil
}

// EXA1
func (c *Chip8) skipKeyNotPressed(op Opcode) (uint16, error) {
	return c.skipIf(!c.keys[c.v[op.X()]&0x0F]), nil
}

// FX07
func (c *Chip8) loadDelayTimer(op Opcode) (uint16, error) {
	c.v[op.X()] = c.delayTimer
	return c.next(), nil
}

// FX0A stays on the current instruction, Step polls the keypad until a key is
// newly pressed and then advances the program counter.
func (c *Chip8) awaitKey(op Opcode) (uint16, error) {
	c.awaitingKey = true
	c.awaitRegister = op.X()
	c.heldKeys = c.keys
	return c.pc, nil
}

// FX15
func (c *Chip8) setDelayTimer(op Opcode) (uint16, error) {
	c.delayTimer = c.v[op.X()]
	return c.next(), nil
}

// FX18
func (c *Chip8) setSoundTimer(op Opcode) (uint16, error) {
	c.soundTimer = c.v[op.X()]
	return c.next(), nil
}

// FX1E, VF is not affected.
func (c *Chip8) addIndex(op Opcode) (uint16, error) {
	c.index = address(c.index, int(c.v[op.X()]))
	return c.next(), nil
}

// FX29
func (c *Chip8) loadGlyph(op Opcode) (uint16, error) {
	c.index = GlyphAddress(c.v[op.X()])
	return c.next(), nil
}

// FX33
func (c *Chip8) storeBCD(op Opcode) (uint16, error) {
	vx := c.v[op.X()]
	c.memory[address(c.index, 0)] = vx / 100
	c.memory[address(c.index, 1)] = (vx / 10) % 10
	c.memory[address(c.index, 2)] = vx % 10
	return c.next(), nil
}

// FX55, I is left unmodified.
func (c *Chip8) storeRegisters(op Opcode) (uint16, error) {
	for i := 0; i <= op.X(); i++ {
		c.memory[address(c.index, i)] = c.v[i]
	}
	return c.next(), nil
}

// FX65, I is left unmodified.
func (c *Chip8) loadRegisters(op Opcode) (uint16, error) {
	for i := 0; i <= op.X(); i++ {
		c.v[i] = c.memory[address(c.index, i)]
	}
	return c.next(), nil
}
