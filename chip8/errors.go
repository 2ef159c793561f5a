package chip8

import (
	"errors"
	"fmt"
)

// ErrStackUnderflow reports a return instruction with an empty call stack.
// It ends the execution session: the machine state is no longer trustworthy
// and the driver should stop stepping.
var ErrStackUnderflow = errors.New("call stack underflow")

// DecodeError reports an instruction word that matches no opcode pattern.
// The driver decides whether to log, skip or halt; the raw word is kept for
// diagnostics.
type DecodeError struct {
	Word uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unknown instruction 0x%04X", e.Word)
}

// MemoryError reports an access outside the 4096 byte memory. Accesses never
// wrap silently; an instruction that would run past the end fails instead.
type MemoryError struct {
	Addr uint32
}

func (e *MemoryError) Error() string {
	return fmt.Sprintf("memory access out of range at 0x%04X", e.Addr)
}
