package main

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"tc-chip8/chip8"
)

const inputInterval time.Duration = time.Millisecond * 20

// keypad maps the classic emulator key block to the 16 hex keys:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var keypad = map[sdl.Keycode]uint8{
	sdl.K_1: 0x1, sdl.K_2: 0x2, sdl.K_3: 0x3, sdl.K_4: 0xC,
	sdl.K_q: 0x4, sdl.K_w: 0x5, sdl.K_e: 0x6, sdl.K_r: 0xD,
	sdl.K_a: 0x7, sdl.K_s: 0x8, sdl.K_d: 0x9, sdl.K_f: 0xE,
	sdl.K_z: 0xA, sdl.K_x: 0x0, sdl.K_c: 0xB, sdl.K_v: 0xF,
}

type keyboard struct {
	lastPoll time.Time
}

func newKeyboard() *keyboard {
	return &keyboard{lastPoll: time.Now()}
}

func (k *keyboard) tick(vm *chip8.VM) {
	if time.Since(k.lastPoll) < inputInterval {
		return
	}
	k.lastPoll = time.Now()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.QuitEvent:
			quit()
		case *sdl.KeyboardEvent:
			switch t.Type {
			case sdl.KEYDOWN:
				k.keyDown(vm, t.Keysym.Sym)
			case sdl.KEYUP:
				k.keyUp(vm, t.Keysym.Sym)
			}
		}
	}
}

func (k *keyboard) keyDown(vm *chip8.VM, sym sdl.Keycode) {
	switch sym {
	case sdl.K_ESCAPE:
		quit()
	case sdl.K_F1:
		fmt.Println("=== Emulator keys ===")
		fmt.Println("F1\tShow this help")
		fmt.Println("F2\tPause into the debug console")
		fmt.Println("F3\tResume running")
		fmt.Println("F4\tTurbo speed toggle")
		fmt.Println("Esc\tQuit")
	case sdl.K_F2:
		vm.Pause()
	case sdl.K_F3:
		vm.Resume()
	case sdl.K_F4:
		turbo = !turbo
		if turbo {
			fmt.Println("Turbo enabled: speed unlimited")
		} else {
			fmt.Println("Turbo disabled")
		}
	default:
		if key, ok := keypad[sym]; ok {
			vm.Keyboard().SetDown(key)
		}
	}
}

// keyUp releases the key and, when the machine is blocked on a key wait,
// completes the wait with the released key.
func (k *keyboard) keyUp(vm *chip8.VM, sym sdl.Keycode) {
	key, ok := keypad[sym]
	if !ok {
		return
	}

	vm.Keyboard().SetUp(key)
	if vm.Mode() == chip8.ModeWaitForKey {
		vm.CompleteWaitForKey(key)
	}
}

func (k *keyboard) cleanup() {}
