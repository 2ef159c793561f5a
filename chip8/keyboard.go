package chip8

import (
	"fmt"
	"strings"
)

// Keyboard holds the state of the 16-key hex keypad as one bit per key.
// Key indices above 0xF have no bit position and are dropped.
type Keyboard uint16

// SetDown marks a key as held.
func (k *Keyboard) SetDown(key uint8) {
	*k |= 1 << key
}

// SetUp marks a key as released.
func (k *Keyboard) SetUp(key uint8) {
	*k &^= 1 << key
}

// IsDown reports whether a key is currently held.
func (k Keyboard) IsDown(key uint8) bool {
	return k&(1<<key) != 0
}

// Reset releases all keys.
func (k *Keyboard) Reset() {
	*k = 0
}

func (k Keyboard) String() string {
	var b strings.Builder
	b.WriteString("[")
	for key := uint8(0); key < 16; key++ {
		fmt.Fprintf(&b, " %X: %t", key, k.IsDown(key))
		if key < 15 {
			b.WriteString(",")
		}
	}
	b.WriteString(" ]")
	return b.String()
}
