package main

import (
	"fmt"

	"tc-chip8/chip8"
)

// device is the interface to the hardware surrounding the machine. Devices
// are ticked from the driver loop between steps.
type device interface {
	tick(vm *chip8.VM)
	cleanup()
}

var deviceTypes = map[string]func() device{
	"display":  func() device { return newDisplay() },
	"keyboard": func() device { return newKeyboard() },
	"clock":    func() device { return newClock() },
}

var deviceDescriptions = map[string]string{
	"display":  "SDL2 display window, 64x32 pixels scaled up",
	"keyboard": "16-key hex keypad fed by SDL2 key events",
	"clock":    "60Hz delay timer clock",
}

var activeDevices []device

func dumpDeviceList() {
	for name, desc := range deviceDescriptions {
		fmt.Printf("%-20s %s\n", name, desc)
	}
}
