package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeyboard(t *testing.T) {
	var kb Keyboard

	assert.False(t, kb.IsDown(0xA))
	kb.SetDown(0xA)
	assert.True(t, kb.IsDown(0xA))
	kb.SetUp(0xA)
	assert.False(t, kb.IsDown(0xA))

	// Releasing an already released key stays released.
	kb.SetUp(0xA)
	assert.False(t, kb.IsDown(0xA))
}

func TestKeyboardReset(t *testing.T) {
	var kb Keyboard

	for key := uint8(0); key < 16; key++ {
		kb.SetDown(key)
	}
	kb.Reset()

	for key := uint8(0); key < 16; key++ {
		assert.False(t, kb.IsDown(key))
	}
}

func TestKeyboardString(t *testing.T) {
	var kb Keyboard
	kb.SetDown(0x0)

	s := kb.String()
	assert.Contains(t, s, "0: true")
	assert.Contains(t, s, "F: false")
}
