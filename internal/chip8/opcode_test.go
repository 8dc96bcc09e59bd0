package chip8

import (
	"errors"
	"testing"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode_String(t *testing.T) {
	tests := []struct {
		word uint16
		want string
	}{
		{0x00E0, chip8cpu.ClsInst.Name},
		{0x00EE, chip8cpu.RetInst.Name},
		{0x1234, chip8cpu.JpInst.Name + " $234"},
		{0x2ABC, chip8cpu.CallInst.Name + " $ABC"},
		{0x3A12, chip8cpu.SeInst.Name + " VA, $12"},
		{0x4B34, chip8cpu.SneInst.Name + " VB, $34"},
		{0x5120, chip8cpu.SeInst.Name + " V1, V2"},
		{0x6C56, chip8cpu.LdInst.Name + " VC, $56"},
		{0x7D78, chip8cpu.AddInst.Name + " VD, $78"},
		{0x8120, chip8cpu.LdInst.Name + " V1, V2"},
		{0x8121, chip8cpu.OrInst.Name + " V1, V2"},
		{0x8122, chip8cpu.AndInst.Name + " V1, V2"},
		{0x8123, chip8cpu.XorInst.Name + " V1, V2"},
		{0x8124, chip8cpu.AddInst.Name + " V1, V2"},
		{0x8125, chip8cpu.SubInst.Name + " V1, V2"},
		{0x8126, chip8cpu.ShrInst.Name + " V1"},
		{0x8127, chip8cpu.SubnInst.Name + " V1, V2"},
		{0x812E, chip8cpu.ShlInst.Name + " V1"},
		{0x9340, chip8cpu.SneInst.Name + " V3, V4"},
		{0xA123, chip8cpu.LdInst.Name + " I, $123"},
		{0xB456, chip8cpu.JpInst.Name + " V0, $456"},
		{0xCE0F, chip8cpu.RndInst.Name + " VE, $0F"},
		{0xD015, chip8cpu.DrwInst.Name + " V0, V1, $5"},
		{0xE59E, chip8cpu.SkpInst.Name + " V5"},
		{0xE6A1, chip8cpu.SknpInst.Name + " V6"},
		{0xF107, chip8cpu.LdInst.Name + " V1, DT"},
		{0xF20A, chip8cpu.LdInst.Name + " V2, K"},
		{0xF315, chip8cpu.LdInst.Name + " DT, V3"},
		{0xF418, chip8cpu.LdInst.Name + " ST, V4"},
		{0xF51E, chip8cpu.AddInst.Name + " I, V5"},
		{0xF629, chip8cpu.LdInst.Name + " F, V6"},
		{0xF733, chip8cpu.LdInst.Name + " B, V7"},
		{0xF855, chip8cpu.LdInst.Name + " [I], V8"},
		{0xF965, chip8cpu.LdInst.Name + " V9, [I]"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			op, err := Decode(tt.word)
			assert.NoError(t, err)
			assert.Equal(t, tt.word, op.Word)
			assert.Equal(t, tt.want, op.String())
		})
	}
}

func TestDecode_Unknown(t *testing.T) {
	for _, word := range []uint16{0x0000, 0x00E1, 0x0FFF, 0x5121, 0x812F, 0x9341, 0xE5A0, 0xF100, 0xF1FF} {
		op, err := Decode(word)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrDecode))
		assert.Nil(t, op.Instruction)
		assert.Equal(t, "", op.String())
	}
}

func TestDecode_HandlersMatchOpcodeTable(t *testing.T) {
	assert.Len(t, handlers, 34)

	for value, h := range handlers {
		assert.NotNil(t, h.execute)

		op, err := Decode(value)
		assert.NoError(t, err)
		assert.NotNil(t, op.Instruction)
		assert.Equal(t, value, op.info.Value)
		assert.Equal(t, value, value&op.info.Mask)
	}
}

func TestDecode_AllNibblesHaveOpcodes(t *testing.T) {
	for nibble := range 16 {
		assert.NotEmpty(t, chip8cpu.Opcodes[nibble], "Expected opcodes for nibble %X", nibble)
	}
}

func TestOpcode_Fields(t *testing.T) {
	op, err := Decode(0xD5A7)
	assert.NoError(t, err)

	assert.Equal(t, 0x5, op.X())
	assert.Equal(t, 0xA, op.Y())
	assert.Equal(t, byte(0x7), op.N())
	assert.Equal(t, byte(0xA7), op.NN())
	assert.Equal(t, uint16(0x5A7), op.NNN())
	assert.Equal(t, chip8cpu.DrwInst.Name, op.Name())
}

func TestOpcode_Classification(t *testing.T) {
	tests := []struct {
		name          string
		word          uint16
		isCall        bool
		isJump        bool
		isReturn      bool
		isSkip        bool
		isDataRef     bool
		hasTarget     bool
		expectedTaget uint16
	}{
		{name: "call", word: 0x2300, isCall: true, hasTarget: true, expectedTaget: 0x300},
		{name: "jump", word: 0x1400, isJump: true, hasTarget: true, expectedTaget: 0x400},
		{name: "jump offset", word: 0xB400, isJump: true},
		{name: "return", word: 0x00EE, isReturn: true},
		{name: "skip equal byte", word: 0x3000, isSkip: true},
		{name: "skip not equal byte", word: 0x4000, isSkip: true},
		{name: "skip equal register", word: 0x5010, isSkip: true},
		{name: "skip not equal register", word: 0x9010, isSkip: true},
		{name: "skip key pressed", word: 0xE09E, isSkip: true},
		{name: "skip key not pressed", word: 0xE0A1, isSkip: true},
		{name: "load index", word: 0xA234, isDataRef: true},
		{name: "load register", word: 0x6234},
		{name: "draw", word: 0xD001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := Decode(tt.word)
			assert.NoError(t, err)

			assert.Equal(t, tt.isCall, op.IsCall())
			assert.Equal(t, tt.isJump, op.IsJump())
			assert.Equal(t, tt.isReturn, op.IsReturn())
			assert.Equal(t, tt.isSkip, op.IsSkip())
			assert.Equal(t, tt.isDataRef, op.IsDataReference())

			target, ok := op.Target()
			assert.Equal(t, tt.hasTarget, ok)
			assert.Equal(t, tt.expectedTaget, target)
		})
	}
}

func TestOpcode_NilInstruction(t *testing.T) {
	var op Opcode

	assert.Equal(t, "", op.Name())
	assert.False(t, op.IsSkip())
	assert.False(t, op.IsCall())
	assert.False(t, op.IsDataReference())
}
