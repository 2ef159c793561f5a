package chip8

import "fmt"

// Instruction is a decoded CHIP-8 instruction. The set of types implementing
// it is closed: one variant per opcode pattern, carrying the operands that
// pattern encodes. Execution switches exhaustively over these types.
type Instruction interface {
	fmt.Stringer
	isInstruction()
}

// Clear clears the display. 00E0
type Clear struct{}

// Return returns from a subroutine. 00EE
type Return struct{}

// Jump sets PC to an absolute address. 1nnn
type Jump struct {
	Addr uint16
}

// Call pushes the return address and jumps to a subroutine. 2nnn
type Call struct {
	Addr uint16
}

// SkipEq skips the next instruction if Vx equals the immediate. 3xkk
type SkipEq struct {
	Reg   uint8
	Value uint8
}

// SkipNeq skips the next instruction if Vx differs from the immediate. 4xkk
type SkipNeq struct {
	Reg   uint8
	Value uint8
}

// SkipEqReg skips the next instruction if Vx equals Vy. 5xy0
type SkipEqReg struct {
	X, Y uint8
}

// LoadImm stores an immediate byte in Vx. 6xkk
type LoadImm struct {
	Reg   uint8
	Value uint8
}

// AddImm adds an immediate byte to Vx, wrapping, without touching VF. 7xkk
type AddImm struct {
	Reg   uint8
	Value uint8
}

// Copy copies Vy into Vx. 8xy0
type Copy struct {
	X, Y uint8
}

// Or sets Vx to Vx OR Vy and clears VF. 8xy1
type Or struct {
	X, Y uint8
}

// And sets Vx to Vx AND Vy and clears VF. 8xy2
type And struct {
	X, Y uint8
}

// Xor sets Vx to Vx XOR Vy and clears VF. 8xy3
type Xor struct {
	X, Y uint8
}

// AddReg sets Vx to Vx + Vy, VF to the carry. 8xy4
type AddReg struct {
	X, Y uint8
}

// SubReg sets Vx to Vx - Vy, VF to 1 when no borrow occurred. 8xy5
type SubReg struct {
	X, Y uint8
}

// ShiftRight sets Vx to Vy >> 1, VF to the bit shifted out. 8xy6
type ShiftRight struct {
	X, Y uint8
}

// SubRegN sets Vx to Vy - Vx, VF to 1 when no borrow occurred. 8xy7
type SubRegN struct {
	X, Y uint8
}

// ShiftLeft sets Vx to Vy << 1, VF to the bit shifted out. 8xyE
type ShiftLeft struct {
	X, Y uint8
}

// SkipNeqReg skips the next instruction if Vx differs from Vy. 9xy0
type SkipNeqReg struct {
	X, Y uint8
}

// LoadI sets the address register I. Annn
type LoadI struct {
	Addr uint16
}

// JumpV0 sets PC to an absolute address plus V0. Bnnn
type JumpV0 struct {
	Addr uint16
}

// DrawSprite XOR-draws Len sprite rows read from memory at I to (Vx, Vy),
// setting VF on collision. Dxyn
type DrawSprite struct {
	X, Y uint8
	Len  uint8
}

// SkipIfKeyDown skips the next instruction if the key in Vx is held. Ex9E
type SkipIfKeyDown struct {
	Reg uint8
}

// SkipIfKeyUp skips the next instruction if the key in Vx is not held. ExA1
type SkipIfKeyUp struct {
	Reg uint8
}

// ReadDelayTimer copies the delay timer into Vx. Fx07
type ReadDelayTimer struct {
	Reg uint8
}

// WaitForKey blocks execution until a key release is reported, storing the
// key in Vx. Fx0A
type WaitForKey struct {
	Reg uint8
}

// SetDelayTimer copies Vx into the delay timer. Fx15
type SetDelayTimer struct {
	Reg uint8
}

// AddToI adds Vx to the address register I. Fx1E
type AddToI struct {
	Reg uint8
}

// LoadFontChar points I at the built-in glyph for the hex digit in Vx. Fx29
type LoadFontChar struct {
	Reg uint8
}

// StoreBCD writes the decimal digits of Vx to memory at I, I+1, I+2. Fx33
type StoreBCD struct {
	Reg uint8
}

// StoreRegisters copies V0..Vx to memory starting at I, advancing I. Fx55
type StoreRegisters struct {
	Reg uint8
}

// LoadRegisters copies memory starting at I into V0..Vx, advancing I. Fx65
type LoadRegisters struct {
	Reg uint8
}

// Decode splits a 16-bit instruction word into its four nibbles and maps it
// onto the opcode table. It is pure: no VM state is read or written. An
// unmatched bit pattern yields a DecodeError carrying the raw word.
func Decode(word uint16) (Instruction, error) {
	a := uint8(word >> 12)
	x := uint8(word>>8) & 0xF
	y := uint8(word>>4) & 0xF
	d := uint8(word) & 0xF

	addr := word & 0x0FFF
	kk := uint8(word)

	switch a {
	case 0x0:
		switch word {
		case 0x00E0:
			return Clear{}, nil
		case 0x00EE:
			return Return{}, nil
		}
	case 0x1:
		return Jump{Addr: addr}, nil
	case 0x2:
		return Call{Addr: addr}, nil
	case 0x3:
		return SkipEq{Reg: x, Value: kk}, nil
	case 0x4:
		return SkipNeq{Reg: x, Value: kk}, nil
	case 0x5:
		if d == 0x0 {
			return SkipEqReg{X: x, Y: y}, nil
		}
	case 0x6:
		return LoadImm{Reg: x, Value: kk}, nil
	case 0x7:
		return AddImm{Reg: x, Value: kk}, nil
	case 0x8:
		switch d {
		case 0x0:
			return Copy{X: x, Y: y}, nil
		case 0x1:
			return Or{X: x, Y: y}, nil
		case 0x2:
			return And{X: x, Y: y}, nil
		case 0x3:
			return Xor{X: x, Y: y}, nil
		case 0x4:
			return AddReg{X: x, Y: y}, nil
		case 0x5:
			return SubReg{X: x, Y: y}, nil
		case 0x6:
			return ShiftRight{X: x, Y: y}, nil
		case 0x7:
			return SubRegN{X: x, Y: y}, nil
		case 0xE:
			return ShiftLeft{X: x, Y: y}, nil
		}
	case 0x9:
		if d == 0x0 {
			return SkipNeqReg{X: x, Y: y}, nil
		}
	case 0xA:
		return LoadI{Addr: addr}, nil
	case 0xB:
		return JumpV0{Addr: addr}, nil
	case 0xD:
		return DrawSprite{X: x, Y: y, Len: d}, nil
	case 0xE:
		switch kk {
		case 0x9E:
			return SkipIfKeyDown{Reg: x}, nil
		case 0xA1:
			return SkipIfKeyUp{Reg: x}, nil
		}
	case 0xF:
		switch kk {
		case 0x07:
			return ReadDelayTimer{Reg: x}, nil
		case 0x0A:
			return WaitForKey{Reg: x}, nil
		case 0x15:
			return SetDelayTimer{Reg: x}, nil
		case 0x1E:
			return AddToI{Reg: x}, nil
		case 0x29:
			return LoadFontChar{Reg: x}, nil
		case 0x33:
			return StoreBCD{Reg: x}, nil
		case 0x55:
			return StoreRegisters{Reg: x}, nil
		case 0x65:
			return LoadRegisters{Reg: x}, nil
		}
	}

	return nil, &DecodeError{Word: word}
}

func (Clear) isInstruction()          {}
func (Return) isInstruction()         {}
func (Jump) isInstruction()           {}
func (Call) isInstruction()           {}
func (SkipEq) isInstruction()         {}
func (SkipNeq) isInstruction()        {}
func (SkipEqReg) isInstruction()      {}
func (LoadImm) isInstruction()        {}
func (AddImm) isInstruction()         {}
func (Copy) isInstruction()           {}
func (Or) isInstruction()             {}
func (And) isInstruction()            {}
func (Xor) isInstruction()            {}
func (AddReg) isInstruction()         {}
func (SubReg) isInstruction()         {}
func (ShiftRight) isInstruction()     {}
func (SubRegN) isInstruction()        {}
func (ShiftLeft) isInstruction()      {}
func (SkipNeqReg) isInstruction()     {}
func (LoadI) isInstruction()          {}
func (JumpV0) isInstruction()         {}
func (DrawSprite) isInstruction()     {}
func (SkipIfKeyDown) isInstruction()  {}
func (SkipIfKeyUp) isInstruction()    {}
func (ReadDelayTimer) isInstruction() {}
func (WaitForKey) isInstruction()     {}
func (SetDelayTimer) isInstruction()  {}
func (AddToI) isInstruction()         {}
func (StoreBCD) isInstruction()       {}
func (StoreRegisters) isInstruction() {}
func (LoadRegisters) isInstruction()  {}
func (LoadFontChar) isInstruction()   {}

// The String forms follow the classic CHIP-8 assembly mnemonics, used for
// instruction tracing and the debug console history.

func (Clear) String() string  { return "CLS" }
func (Return) String() string { return "RET" }

func (in Jump) String() string   { return fmt.Sprintf("JP $%03X", in.Addr) }
func (in Call) String() string   { return fmt.Sprintf("CALL $%03X", in.Addr) }
func (in JumpV0) String() string { return fmt.Sprintf("JP V0, $%03X", in.Addr) }
func (in LoadI) String() string  { return fmt.Sprintf("LD I, $%03X", in.Addr) }

func (in SkipEq) String() string  { return fmt.Sprintf("SE V%X, $%02X", in.Reg, in.Value) }
func (in SkipNeq) String() string { return fmt.Sprintf("SNE V%X, $%02X", in.Reg, in.Value) }
func (in LoadImm) String() string { return fmt.Sprintf("LD V%X, $%02X", in.Reg, in.Value) }
func (in AddImm) String() string  { return fmt.Sprintf("ADD V%X, $%02X", in.Reg, in.Value) }

func (in SkipEqReg) String() string  { return fmt.Sprintf("SE V%X, V%X", in.X, in.Y) }
func (in SkipNeqReg) String() string { return fmt.Sprintf("SNE V%X, V%X", in.X, in.Y) }
func (in Copy) String() string       { return fmt.Sprintf("LD V%X, V%X", in.X, in.Y) }
func (in Or) String() string         { return fmt.Sprintf("OR V%X, V%X", in.X, in.Y) }
func (in And) String() string        { return fmt.Sprintf("AND V%X, V%X", in.X, in.Y) }
func (in Xor) String() string        { return fmt.Sprintf("XOR V%X, V%X", in.X, in.Y) }
func (in AddReg) String() string     { return fmt.Sprintf("ADD V%X, V%X", in.X, in.Y) }
func (in SubReg) String() string     { return fmt.Sprintf("SUB V%X, V%X", in.X, in.Y) }
func (in SubRegN) String() string    { return fmt.Sprintf("SUBN V%X, V%X", in.X, in.Y) }
func (in ShiftRight) String() string { return fmt.Sprintf("SHR V%X, V%X", in.X, in.Y) }
func (in ShiftLeft) String() string  { return fmt.Sprintf("SHL V%X, V%X", in.X, in.Y) }

func (in DrawSprite) String() string { return fmt.Sprintf("DRW V%X, V%X, $%X", in.X, in.Y, in.Len) }

func (in SkipIfKeyDown) String() string  { return fmt.Sprintf("SKP V%X", in.Reg) }
func (in SkipIfKeyUp) String() string    { return fmt.Sprintf("SKNP V%X", in.Reg) }
func (in ReadDelayTimer) String() string { return fmt.Sprintf("LD V%X, DT", in.Reg) }
func (in WaitForKey) String() string     { return fmt.Sprintf("LD V%X, K", in.Reg) }
func (in SetDelayTimer) String() string  { return fmt.Sprintf("LD DT, V%X", in.Reg) }
func (in AddToI) String() string         { return fmt.Sprintf("ADD I, V%X", in.Reg) }
func (in LoadFontChar) String() string   { return fmt.Sprintf("LD F, V%X", in.Reg) }
func (in StoreBCD) String() string       { return fmt.Sprintf("LD B, V%X", in.Reg) }
func (in StoreRegisters) String() string { return fmt.Sprintf("LD [I], V%X", in.Reg) }
func (in LoadRegisters) String() string  { return fmt.Sprintf("LD V%X, [I]", in.Reg) }
