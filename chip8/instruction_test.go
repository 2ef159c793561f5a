package chip8

import (
	"errors"
	"fmt"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		word     uint16
		expected Instruction
	}{
		{0x00E0, Clear{}},
		{0x00EE, Return{}},
		{0x1FED, Jump{Addr: 0xFED}},
		{0x2ABC, Call{Addr: 0xABC}},
		{0x3A42, SkipEq{Reg: 0xA, Value: 0x42}},
		{0x4B07, SkipNeq{Reg: 0xB, Value: 0x07}},
		{0x5120, SkipEqReg{X: 0x1, Y: 0x2}},
		{0x6A05, LoadImm{Reg: 0xA, Value: 0x05}},
		{0x7CFF, AddImm{Reg: 0xC, Value: 0xFF}},
		{0x8120, Copy{X: 0x1, Y: 0x2}},
		{0x8121, Or{X: 0x1, Y: 0x2}},
		{0x8122, And{X: 0x1, Y: 0x2}},
		{0x8123, Xor{X: 0x1, Y: 0x2}},
		{0x8124, AddReg{X: 0x1, Y: 0x2}},
		{0x8125, SubReg{X: 0x1, Y: 0x2}},
		{0x8126, ShiftRight{X: 0x1, Y: 0x2}},
		{0x8127, SubRegN{X: 0x1, Y: 0x2}},
		{0x812E, ShiftLeft{X: 0x1, Y: 0x2}},
		{0x9340, SkipNeqReg{X: 0x3, Y: 0x4}},
		{0xA123, LoadI{Addr: 0x123}},
		{0xB123, JumpV0{Addr: 0x123}},
		{0xD8B4, DrawSprite{X: 0x8, Y: 0xB, Len: 0x4}},
		{0xE19E, SkipIfKeyDown{Reg: 0x1}},
		{0xE1A1, SkipIfKeyUp{Reg: 0x1}},
		{0xF207, ReadDelayTimer{Reg: 0x2}},
		{0xF20A, WaitForKey{Reg: 0x2}},
		{0xF215, SetDelayTimer{Reg: 0x2}},
		{0xF21E, AddToI{Reg: 0x2}},
		{0xF229, LoadFontChar{Reg: 0x2}},
		{0xF233, StoreBCD{Reg: 0x2}},
		{0xF255, StoreRegisters{Reg: 0x2}},
		{0xF265, LoadRegisters{Reg: 0x2}},
	}

	for _, tt := range tests {
		msg := fmt.Sprintf("decoding 0x%04X", tt.word)
		in, err := Decode(tt.word)
		assert.NoError(t, err, msg)
		assert.Equal(t, tt.expected, in, msg)
	}
}

func TestDecodeUnknown(t *testing.T) {
	words := []uint16{
		0x0000, // machine code call, unsupported
		0x00FF,
		0x5121, // 5xy0 with nonzero low nibble
		0x8128, // no 8xy8 op
		0x9341,
		0xC123, // random is not part of this instruction set
		0xE19F,
		0xF200,
		0xF2FF,
	}

	for _, word := range words {
		msg := fmt.Sprintf("decoding 0x%04X", word)
		_, err := Decode(word)
		assert.Error(t, err, msg)

		var decodeErr *DecodeError
		assert.True(t, errors.As(err, &decodeErr), msg)
		assert.Equal(t, word, decodeErr.Word)
	}
}

func TestDecodeIsPure(t *testing.T) {
	in1, err := Decode(0xD8B4)
	assert.NoError(t, err)
	in2, err := Decode(0xD8B4)
	assert.NoError(t, err)
	assert.Equal(t, in1, in2)
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		in       Instruction
		expected string
	}{
		{Clear{}, "CLS"},
		{Return{}, "RET"},
		{Jump{Addr: 0x20A}, "JP $20A"},
		{JumpV0{Addr: 0x20A}, "JP V0, $20A"},
		{LoadImm{Reg: 0xA, Value: 0x5}, "LD VA, $05"},
		{LoadI{Addr: 0xFED}, "LD I, $FED"},
		{DrawSprite{X: 0x8, Y: 0xB, Len: 0x4}, "DRW V8, VB, $4"},
		{SubRegN{X: 0x1, Y: 0x2}, "SUBN V1, V2"},
		{WaitForKey{Reg: 0x3}, "LD V3, K"},
		{StoreRegisters{Reg: 0x7}, "LD [I], V7"},
		{LoadRegisters{Reg: 0x7}, "LD V7, [I]"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.in.String())
	}
}
