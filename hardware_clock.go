package main

import (
	"time"

	"tc-chip8/chip8"
)

const timerInterval = time.Second / chip8.DelayTimerFrequency

// clock decrements the machine's delay timer at a fixed 60Hz, catching up on
// missed intervals. Its cadence is wall-clock based and independent of how
// fast the driver steps instructions.
type clock struct {
	lastTick time.Time
}

func newClock() *clock {
	return &clock{lastTick: time.Now()}
}

func (c *clock) tick(vm *chip8.VM) {
	for time.Since(c.lastTick) >= timerInterval {
		vm.TickDelayTimer()
		c.lastTick = c.lastTick.Add(timerInterval)
	}
}

func (c *clock) cleanup() {}
