package main

import (
	"fmt"
	"os"

	"tc-chip8/chip8"
)

// debugCommand captures a self-describing debug command.
type debugCommand interface {
	describe() string
	run(vm *chip8.VM, args []string)
}

type debugBlob struct {
	desc string
	f    func(*chip8.VM, []string)
}

var debugCommands = map[string]debugCommand{
	"r": newCommand("Dump the (r)egisters, PC, I, delay timer and mode", cmdRegs),
	"q": newCommand("(Q)uit the emulator", func(*chip8.VM, []string) { quit() }),

	"c": newCommand("(C)ontinue execution", func(vm *chip8.VM, args []string) {
		vm.Resume()
	}),

	"s": newCommand("(S)tep forward, run next instruction", cmdStep),

	"b": newCommand("Set a new (b)reakpoint at the given (hex) location",
		singleHexArg("No breakpoint location specified (needs hex number)",
			"Error parsing the location", func(vm *chip8.VM, loc uint16) {
				breakpoints = append(breakpoints, loc)
				fmt.Printf("Breakpoint set at PC = %03x\n", loc)
			})),

	"m": newCommand("Print a byte from (m)emory",
		singleHexArg("No memory location specified", "Error parsing location",
			func(vm *chip8.VM, loc uint16) {
				if int(loc) >= chip8.MemorySize {
					fmt.Printf("Address %03x out of range\n", loc)
					return
				}
				x := vm.Memory()[loc]
				fmt.Printf("[%03x] = %02x (%d)\n", loc, x, x)
			})),

	"k": newCommand("Show the (k)eyboard state", func(vm *chip8.VM, args []string) {
		fmt.Println(vm.Keyboard().String())
	}),

	"h": newCommand("Show the recent instruction (h)istory", func(vm *chip8.VM, args []string) {
		for _, in := range vm.History() {
			fmt.Println(in)
		}
	}),

	"d": newCommand("(D)ump memory to the given file in binary",
		func(vm *chip8.VM, args []string) {
			if len(args) < 2 {
				fmt.Println("No filename given")
				return
			}
			if err := os.WriteFile(args[1], vm.Memory(), 0o644); err != nil {
				fmt.Printf("Could not write file: %v\n", err)
			}
		}),
}

var breakpoints []uint16

func atBreakpoint(pc uint16) bool {
	for _, b := range breakpoints {
		if b == pc {
			return true
		}
	}
	return false
}

func newCommand(desc string, f func(*chip8.VM, []string)) debugCommand {
	d := new(debugBlob)
	d.desc = desc
	d.f = f
	return d
}

func (dbg *debugBlob) describe() string {
	return dbg.desc
}

func (dbg *debugBlob) run(vm *chip8.VM, args []string) {
	dbg.f(vm, args)
}

// cmdStep runs exactly one instruction while paused; the machine stays
// paused afterwards.
func cmdStep(vm *chip8.VM, args []string) {
	if err := vm.Step(); err != nil {
		fmt.Printf("step failed: %v\n", err)
		return
	}
	if history := vm.History(); len(history) > 0 {
		fmt.Printf("%03x  %s\n", vm.PC(), history[len(history)-1])
	}
}

func cmdRegs(vm *chip8.VM, args []string) {
	regs := vm.Registers()
	for i, v := range regs {
		fmt.Printf("V%X  %02x (%d)\n", i, v, v)
	}
	fmt.Printf("PC  %03x\n", vm.PC())
	fmt.Printf(" I  %03x\n", vm.AddressRegister())
	fmt.Printf("DT  %02x (%d)\n", vm.DelayTimer(), vm.DelayTimer())
	if vm.Mode() == chip8.ModeWaitForKey {
		fmt.Printf("mode: %s (V%X)\n", vm.Mode(), vm.WaitRegister())
	} else {
		fmt.Printf("mode: %s\n", vm.Mode())
	}
}

func singleHexArg(notSpecifiedMsg, parseErrorMsg string,
	cmd func(vm *chip8.VM, arg uint16)) func(*chip8.VM, []string) {
	return func(vm *chip8.VM, args []string) {
		if len(args) <= 1 {
			fmt.Println(notSpecifiedMsg)
			return
		}

		var x uint16
		_, err := fmt.Sscanf(args[1], "%x", &x)
		if err != nil {
			fmt.Printf(parseErrorMsg+": %v\n", err)
			return
		}

		cmd(vm, x)
	}
}
