// Command tc-chip8 is a CHIP-8 emulator: it loads a ROM image, opens an SDL2
// display and keypad, and drives the virtual machine at a configurable
// instruction rate with a 60Hz delay timer clock.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/retroenv/retrogolib/log"

	"tc-chip8/chip8"
)

var turbo = false

func main() {
	deviceList := flag.String("hw", "display,keyboard,clock",
		"List of hardware devices. See -dump-hw for a list of devices.")
	dumpDevices := flag.Bool("dump-hw", false,
		"Dump a list of hardware devices and exit.")
	hz := flag.Int("hz", 700, "Instruction rate in steps per second.")
	turboFlag := flag.Bool("turbo", false, "True to run at unlimited speed. Default: false.")
	debug := flag.Bool("debug", false, "Start paused in the debug console.")
	trace := flag.Bool("trace", false, "Log every decoded instruction.")
	quiet := flag.Bool("quiet", false, "Only log errors.")
	script := flag.String("script", "", "Script file to run before starting.")

	flag.Parse()

	logger := newLogger(*trace, *quiet)

	if *dumpDevices {
		dumpDeviceList()
		return
	}

	romFile := flag.Arg(0)
	if romFile == "" {
		fmt.Printf("Missing required ROM file name!\n")
		fmt.Printf("Usage: %s [options] <ROM file>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	rom, err := os.ReadFile(romFile)
	if err != nil {
		logger.Fatal("reading ROM file", log.Err(err))
	}

	vm := chip8.New(logger)
	if err := vm.LoadROM(rom); err != nil {
		logger.Fatal("loading ROM", log.String("file", romFile), log.Err(err))
	}

	for _, name := range strings.Split(*deviceList, ",") {
		dt, ok := deviceTypes[name]
		if !ok {
			fmt.Printf("Unknown device: %s\n", name)
			dumpDeviceList()
			os.Exit(1)
		}
		activeDevices = append(activeDevices, dt())
	}

	turbo = *turboFlag

	if *script != "" {
		runScript(vm, *script, logger)
	}
	if *debug {
		vm.Pause()
	}

	inputReader = bufio.NewReader(os.Stdin)
	run(vm, *hz, logger)
}

func newLogger(trace, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if trace {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

var inputReader *bufio.Reader

// run is the cycle driver. It paces instruction stepping off a 10ms ticker,
// ticks every device each iteration, and drops into the debug console
// whenever the machine is paused. All machine access happens on this
// goroutine, one step or snapshot at a time.
func run(vm *chip8.VM, hz int, logger *log.Logger) {
	ticker := time.Tick(10 * time.Millisecond)
	stepsPerTick := hz / 100
	if stepsPerTick < 1 {
		stepsPerTick = 1
	}
	steps := 0

	for {
		for vm.Mode() != chip8.ModePaused {
			for _, d := range activeDevices {
				d.tick(vm)
			}

			if vm.Mode() == chip8.ModeRunning {
				if atBreakpoint(vm.PC()) {
					fmt.Printf("Hit breakpoint at PC = %03x\n", vm.PC())
					vm.Pause()
					break
				}

				if err := vm.Step(); err != nil {
					handleStepError(vm, err, logger)
				}
			}

			steps++
			if !turbo && steps >= stepsPerTick {
				<-ticker
				steps = 0
			}
		}

		debugConsole(vm)
	}
}

// handleStepError applies the error policy: decode failures are logged and
// pause into the console, machine corruption ends the session.
func handleStepError(vm *chip8.VM, err error, logger *log.Logger) {
	var decodeErr *chip8.DecodeError
	if errors.As(err, &decodeErr) {
		logger.Error("unknown instruction, pausing",
			log.Hex("opcode", decodeErr.Word),
			log.Hex("pc", vm.PC()),
		)
		vm.Pause()
		return
	}

	cleanupDevices()
	logger.Fatal("emulation halted", log.Err(err))
}

func debugConsole(vm *chip8.VM) {
	// Print the prompt and handle the input.
	fmt.Printf("%03x debug> ", vm.PC())
	in, err := inputReader.ReadString('\n')
	if err != nil {
		fmt.Printf("error while reading input: %v\n", err)
		return
	}

	args := strings.Split(strings.TrimSpace(in), " ")
	if cmd, ok := debugCommands[args[0]]; ok {
		cmd.run(vm, args)
		return
	}

	fmt.Printf("Unknown command '%s'\n", args[0])
	fmt.Printf("Commands:\n")
	for key, dbg := range debugCommands {
		fmt.Printf("%s\t%s\n", key, dbg.describe())
	}
}

func quit() {
	cleanupDevices()
	os.Exit(0)
}

func cleanupDevices() {
	for _, d := range activeDevices {
		d.cleanup()
	}
}
