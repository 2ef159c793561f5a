// Package chip8 implements the CHIP-8 virtual machine: 4KB of memory, 16
// 8-bit registers, a 64x32 monochrome display buffer, a 16-key keypad and a
// 60Hz delay timer, driven one fetch-decode-execute step at a time.
package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

const (
	// DisplayWidth and DisplayHeight are the display buffer dimensions in
	// pixels.
	DisplayWidth  = 64
	DisplayHeight = 32

	// MemorySize is the size of the byte-addressable memory.
	MemorySize = 4096

	// DelayTimerFrequency is the rate in Hz at which the external clock is
	// expected to call TickDelayTimer, independent of the instruction rate.
	DelayTimerFrequency = 60

	// pcInit is the initial program counter value and the offset at which
	// ROM images are loaded into memory.
	pcInit = 0x200

	// The glyph table lives at the bottom of memory, 5 bytes per hex digit.
	fontBase      = 0x000
	fontGlyphSize = 5

	// historySize bounds the recent-instruction window kept for the debug
	// surface.
	historySize = 32
)

// Mode gates whether the driver may execute the next instruction.
type Mode int

const (
	// ModeRunning allows stepping.
	ModeRunning Mode = iota
	// ModeWaitForKey blocks stepping until CompleteWaitForKey is called.
	ModeWaitForKey
	// ModePaused blocks stepping until the driver resumes or single-steps.
	ModePaused
)

func (m Mode) String() string {
	switch m {
	case ModeRunning:
		return "running"
	case ModeWaitForKey:
		return "waiting for key"
	case ModePaused:
		return "paused"
	}
	return "unknown"
}

// VM is the whole machine state. It is owned by a single driver goroutine:
// every step, snapshot read and key event must come from the same goroutine
// or be serialized externally. A step is atomic, there is no blocking inside
// it; "waiting" for a key is a mode flag the driver checks, not a call that
// suspends.
type VM struct {
	mem   [MemorySize]byte
	regs  [16]byte
	pc    uint16
	index uint16 // address register I
	stack []uint16
	vram  [DisplayWidth * DisplayHeight]byte
	keys  Keyboard
	delay uint8

	mode    Mode
	waitReg uint8

	// redraw is set whenever an instruction mutates vram. The renderer
	// clears it after presenting a frame; the core never clears it itself.
	redraw bool

	history []Instruction

	logger *log.Logger
}

// New returns a machine with zeroed memory except for the glyph table and
// with PC at the ROM load offset.
func New(logger *log.Logger) *VM {
	vm := &VM{
		pc:     pcInit,
		logger: logger,
	}
	copy(vm.mem[fontBase:], fontSet[:])
	return vm
}

// LoadROM copies a raw ROM image into memory at the load offset. Images that
// would run past the end of memory are rejected.
func (vm *VM) LoadROM(rom []byte) error {
	if len(rom) > MemorySize-pcInit {
		return fmt.Errorf("ROM of %d bytes exceeds the %d bytes of program space", len(rom), MemorySize-pcInit)
	}
	copy(vm.mem[pcInit:], rom)
	return nil
}

// Step runs one fetch-decode-execute cycle. In ModeWaitForKey it does
// nothing; the driver is expected not to call it in ModePaused except to
// realize a single-step request. Decode failures return a *DecodeError,
// fatal machine conditions return ErrStackUnderflow or a *MemoryError.
func (vm *VM) Step() error {
	if vm.mode == ModeWaitForKey {
		return nil
	}

	word, err := vm.fetch()
	if err != nil {
		return err
	}

	in, err := Decode(word)
	if err != nil {
		return err
	}

	vm.logger.Debug("executing instruction",
		log.Hex("pc", vm.pc-2),
		log.Hex("opcode", word),
		log.Stringer("instr", in),
	)

	vm.history = append(vm.history, in)
	if len(vm.history) > historySize {
		vm.history = vm.history[1:]
	}

	return vm.execute(in)
}

// fetch reads the instruction word at PC and advances PC by 2 before the
// instruction executes; jumps overwrite PC afterwards.
func (vm *VM) fetch() (uint16, error) {
	if int(vm.pc)+1 >= MemorySize {
		return 0, &MemoryError{Addr: uint32(vm.pc)}
	}
	word := uint16(vm.mem[vm.pc])<<8 | uint16(vm.mem[vm.pc+1])
	vm.pc += 2
	return word, nil
}

func (vm *VM) execute(instruction Instruction) error {
	switch in := instruction.(type) {
	case Clear:
		for i := range vm.vram {
			vm.vram[i] = 0
		}
		vm.redraw = true

	case Return:
		if len(vm.stack) == 0 {
			return fmt.Errorf("return at 0x%03X: %w", vm.pc-2, ErrStackUnderflow)
		}
		vm.pc = vm.stack[len(vm.stack)-1]
		vm.stack = vm.stack[:len(vm.stack)-1]

	case Jump:
		vm.pc = in.Addr

	case Call:
		vm.stack = append(vm.stack, vm.pc)
		vm.pc = in.Addr

	case SkipEq:
		if vm.regs[in.Reg] == in.Value {
			vm.pc += 2
		}

	case SkipNeq:
		if vm.regs[in.Reg] != in.Value {
			vm.pc += 2
		}

	case SkipEqReg:
		if vm.regs[in.X] == vm.regs[in.Y] {
			vm.pc += 2
		}

	case SkipNeqReg:
		if vm.regs[in.X] != vm.regs[in.Y] {
			vm.pc += 2
		}

	case LoadImm:
		vm.regs[in.Reg] = in.Value

	case AddImm:
		vm.regs[in.Reg] += in.Value

	case Copy:
		vm.regs[in.X] = vm.regs[in.Y]

	// The bitwise ops clear VF, matching the behavior of the original
	// COSMAC VIP interpreter.
	case Or:
		vm.regs[in.X] |= vm.regs[in.Y]
		vm.regs[0xF] = 0
	case And:
		vm.regs[in.X] &= vm.regs[in.Y]
		vm.regs[0xF] = 0
	case Xor:
		vm.regs[in.X] ^= vm.regs[in.Y]
		vm.regs[0xF] = 0

	case AddReg:
		sum := uint16(vm.regs[in.X]) + uint16(vm.regs[in.Y])
		vm.regs[in.X] = uint8(sum)
		vm.regs[0xF] = 0
		if sum > 0xFF {
			vm.regs[0xF] = 1
		}

	case SubReg:
		x, y := vm.regs[in.X], vm.regs[in.Y]
		vm.regs[in.X] = x - y
		vm.regs[0xF] = 0
		if x >= y { // no borrow
			vm.regs[0xF] = 1
		}

	case SubRegN:
		x, y := vm.regs[in.X], vm.regs[in.Y]
		vm.regs[in.X] = y - x
		vm.regs[0xF] = 0
		if y >= x {
			vm.regs[0xF] = 1
		}

	// Shifts operate on Vy and store into Vx; VF receives the bit shifted
	// out, taken before Vx is overwritten.
	case ShiftRight:
		v := vm.regs[in.Y]
		vm.regs[in.X] = v >> 1
		vm.regs[0xF] = v & 0x01
	case ShiftLeft:
		v := vm.regs[in.Y]
		vm.regs[in.X] = v << 1
		vm.regs[0xF] = v >> 7

	case LoadI:
		vm.index = in.Addr

	case JumpV0:
		// Classic behavior: only V0 participates, not Vx.
		vm.pc = in.Addr + uint16(vm.regs[0x0])

	case DrawSprite:
		return vm.drawSprite(in)

	case SkipIfKeyDown:
		key := vm.regs[in.Reg]
		vm.logger.Debug("key check", log.Uint8("key", key), log.Stringer("keyboard", vm.keys))
		if vm.keys.IsDown(key) {
			vm.pc += 2
		}

	case SkipIfKeyUp:
		key := vm.regs[in.Reg]
		vm.logger.Debug("key check", log.Uint8("key", key), log.Stringer("keyboard", vm.keys))
		if !vm.keys.IsDown(key) {
			vm.pc += 2
		}

	case ReadDelayTimer:
		vm.regs[in.Reg] = vm.delay

	case SetDelayTimer:
		vm.delay = vm.regs[in.Reg]
		vm.logger.Debug("set delay timer", log.Uint8("value", vm.delay))

	case WaitForKey:
		vm.mode = ModeWaitForKey
		vm.waitReg = in.Reg

	case AddToI:
		vm.index += uint16(vm.regs[in.Reg])

	case LoadFontChar:
		vm.index = fontBase + fontGlyphSize*uint16(vm.regs[in.Reg])

	case StoreBCD:
		end := uint32(vm.index) + 2
		if end >= MemorySize {
			return &MemoryError{Addr: end}
		}
		v := vm.regs[in.Reg]
		vm.mem[vm.index] = v / 100
		vm.mem[vm.index+1] = (v % 100) / 10
		vm.mem[vm.index+2] = v % 10

	// The register block ops advance I past the copied block, as the later
	// CHIP-8 interpreters (and the test ROMs this was verified against) do.
	case StoreRegisters:
		end := uint32(vm.index) + uint32(in.Reg)
		if end >= MemorySize {
			return &MemoryError{Addr: end}
		}
		for i := uint16(0); i <= uint16(in.Reg); i++ {
			vm.mem[vm.index+i] = vm.regs[i]
		}
		vm.index += uint16(in.Reg) + 1

	case LoadRegisters:
		end := uint32(vm.index) + uint32(in.Reg)
		if end >= MemorySize {
			return &MemoryError{Addr: end}
		}
		for i := uint16(0); i <= uint16(in.Reg); i++ {
			vm.regs[i] = vm.mem[vm.index+i]
		}
		vm.index += uint16(in.Reg) + 1
	}

	return nil
}

// drawSprite XORs sprite rows into vram. Start coordinates wrap once when
// they begin outside the display; pixels running off the edge mid-sprite are
// dropped, not wrapped. VF reports whether any lit pixel was cleared.
func (vm *VM) drawSprite(in DrawSprite) error {
	startX := uint16(vm.regs[in.X])
	startY := uint16(vm.regs[in.Y])
	if startX >= DisplayWidth {
		startX %= DisplayWidth
	}
	if startY >= DisplayHeight {
		startY %= DisplayHeight
	}

	end := uint32(vm.index) + uint32(in.Len)
	if end > MemorySize {
		return &MemoryError{Addr: end - 1}
	}
	sprite := vm.mem[vm.index:end]

	vm.logger.Debug("drawing sprite",
		log.Uint8("rows", in.Len),
		log.Uint16("x", startX),
		log.Uint16("y", startY),
	)

	vm.regs[0xF] = 0
	for r, row := range sprite {
		y := startY + uint16(r)
		for bit := uint16(0); bit < 8; bit++ {
			x := startX + bit
			index, ok := VRAMIndex(x, y)
			if !ok {
				continue
			}

			pixel := (row >> (7 - bit)) & 1
			old := vm.vram[index]
			vm.vram[index] = old ^ pixel
			if old == 1 && pixel == 1 {
				vm.regs[0xF] = 1
			}
		}
	}

	vm.redraw = true
	return nil
}

// VRAMIndex converts display coordinates to a row-major vram index. The
// second return value is false for coordinates outside the display.
func VRAMIndex(x, y uint16) (int, bool) {
	if x >= DisplayWidth || y >= DisplayHeight {
		return 0, false
	}
	return int(DisplayWidth*y + x), true
}

// TickDelayTimer decrements the delay timer once, flooring at zero. The
// driver's clock calls this at DelayTimerFrequency regardless of how fast
// instructions step.
func (vm *VM) TickDelayTimer() {
	if vm.delay > 0 {
		vm.delay--
	}
}

// CompleteWaitForKey finishes a WaitForKey instruction: the input layer
// calls it when it observes a key release while the machine is waiting. The
// released key lands in the register named by the instruction and the
// machine runs again. Outside ModeWaitForKey it does nothing.
func (vm *VM) CompleteWaitForKey(key uint8) {
	if vm.mode != ModeWaitForKey {
		return
	}
	vm.logger.Debug("wait for key completed", log.Uint8("key", key), log.Uint8("register", vm.waitReg))
	vm.regs[vm.waitReg] = key
	vm.mode = ModeRunning
}

// Pause suspends execution by external command. Only the Running state can
// be paused; a pending key wait is not abandoned.
func (vm *VM) Pause() {
	if vm.mode == ModeRunning {
		vm.mode = ModePaused
	}
}

// Resume returns a paused machine to the Running state.
func (vm *VM) Resume() {
	if vm.mode == ModePaused {
		vm.mode = ModeRunning
	}
}

// Mode returns the current execution mode.
func (vm *VM) Mode() Mode {
	return vm.mode
}

// WaitRegister returns the register a pending WaitForKey will write to.
func (vm *VM) WaitRegister() uint8 {
	return vm.waitReg
}

// Registers returns a snapshot of the register file.
func (vm *VM) Registers() [16]uint8 {
	return vm.regs
}

// PC returns the program counter.
func (vm *VM) PC() uint16 {
	return vm.pc
}

// AddressRegister returns the address register I.
func (vm *VM) AddressRegister() uint16 {
	return vm.index
}

// DelayTimer returns the delay timer value.
func (vm *VM) DelayTimer() uint8 {
	return vm.delay
}

// Keyboard returns the keypad state for the input layer to mutate.
func (vm *VM) Keyboard() *Keyboard {
	return &vm.keys
}

// Memory returns the live memory. Callers share the driver's exclusive
// access; the slice must not be touched concurrently with a step.
func (vm *VM) Memory() []byte {
	return vm.mem[:]
}

// VRAM returns the live display buffer, one byte per pixel, row-major. The
// same exclusive-access rule as Memory applies; reading it together with
// Redraw between steps yields a consistent frame.
func (vm *VM) VRAM() []byte {
	return vm.vram[:]
}

// Redraw reports whether vram changed since the renderer last cleared the
// flag.
func (vm *VM) Redraw() bool {
	return vm.redraw
}

// ClearRedraw is called by the renderer once a frame has been presented.
func (vm *VM) ClearRedraw() {
	vm.redraw = false
}

// History returns a copy of the most recently executed instructions, oldest
// first, capped to a small window.
func (vm *VM) History() []Instruction {
	history := make([]Instruction, len(vm.history))
	copy(history, vm.history)
	return history
}
