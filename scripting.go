package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/log"

	"tc-chip8/chip8"
)

// Script files drive test ROMs unattended: one command per line, run before
// the main loop starts.
//
//	run 500        step 500 instructions
//	press a        hold hex key A
//	release a      release hex key A
//	timer 10       tick the delay timer 10 times
//	regs           dump the register file
//	dump mem.bin   write memory to a file
//	quit           exit the emulator

type scriptCommand func(vm *chip8.VM, args []string, logger *log.Logger)

var scriptCommands = map[string]scriptCommand{
	"run":     cmdRunSteps,
	"press":   cmdPress,
	"release": cmdRelease,
	"timer":   cmdTimer,
	"regs":    func(vm *chip8.VM, args []string, logger *log.Logger) { cmdRegs(vm, args) },
	"dump":    cmdDump,
	"quit":    func(vm *chip8.VM, args []string, logger *log.Logger) { quit() },
}

func runScript(vm *chip8.VM, file string, logger *log.Logger) {
	contents, err := os.ReadFile(file)
	if err != nil {
		logger.Fatal("reading script file", log.Err(err))
	}

	for _, line := range strings.Split(string(contents), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		args := strings.Split(line, " ")
		cmd, ok := scriptCommands[args[0]]
		if !ok {
			logger.Fatal("unknown script command", log.String("command", args[0]))
		}
		cmd(vm, args[1:], logger)
	}
}

func cmdRunSteps(vm *chip8.VM, args []string, logger *log.Logger) {
	if len(args) < 1 {
		logger.Fatal("'run' requires an argument giving the step count")
	}
	steps, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		logger.Fatal("'run' requires a positive integer argument", log.Err(err))
	}

	for i := uint64(0); i < steps; i++ {
		if err := vm.Step(); err != nil {
			handleStepError(vm, err, logger)
			return
		}
	}
}

func cmdPress(vm *chip8.VM, args []string, logger *log.Logger) {
	vm.Keyboard().SetDown(scriptKey(args, logger))
}

// cmdRelease mirrors the real input path: releasing a key also completes a
// pending key wait.
func cmdRelease(vm *chip8.VM, args []string, logger *log.Logger) {
	key := scriptKey(args, logger)
	vm.Keyboard().SetUp(key)
	if vm.Mode() == chip8.ModeWaitForKey {
		vm.CompleteWaitForKey(key)
	}
}

func cmdTimer(vm *chip8.VM, args []string, logger *log.Logger) {
	if len(args) < 1 {
		logger.Fatal("'timer' requires an argument giving the tick count")
	}
	ticks, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		logger.Fatal("'timer' requires a positive integer argument", log.Err(err))
	}

	for i := uint64(0); i < ticks; i++ {
		vm.TickDelayTimer()
	}
}

func cmdDump(vm *chip8.VM, args []string, logger *log.Logger) {
	if len(args) < 1 {
		logger.Fatal("'dump' requires a filename as an argument")
	}
	if err := os.WriteFile(args[0], vm.Memory(), 0o644); err != nil {
		logger.Fatal("writing memory dump", log.Err(err))
	}
}

func scriptKey(args []string, logger *log.Logger) uint8 {
	if len(args) < 1 {
		logger.Fatal("key command requires a hex key 0-f as an argument")
	}
	key, err := strconv.ParseUint(args[0], 16, 8)
	if err != nil || key > 0xF {
		logger.Fatal("invalid key, expected a single hex digit 0-f", log.String("key", args[0]))
	}
	return uint8(key)
}
