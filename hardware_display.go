package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"tc-chip8/chip8"
)

const (
	displayScale  = 10
	frameInterval = 20 * time.Millisecond // repaint at most 50 times a second
)

// Pixel colors in ARGB8888 byte order (B, G, R, A).
var (
	pixelOn  = [4]byte{0x99, 0x66, 0x66, 0xff}
	pixelOff = [4]byte{0x3d, 0x29, 0x29, 0xff}
)

type display struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	lastFrame time.Time
}

func newDisplay() *display {
	d := new(display)
	d.lastFrame = time.Now()

	runtime.LockOSThread() // Latch this goroutine to the same thread for SDL.
	sdl.Init(sdl.INIT_VIDEO)
	window, err := sdl.CreateWindow("CHIP-8", sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED, chip8.DisplayWidth*displayScale,
		chip8.DisplayHeight*displayScale, sdl.WINDOW_SHOWN)
	if err != nil {
		panic(fmt.Errorf("failed to create window: %v", err))
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		panic(fmt.Errorf("failed to create renderer: %v", err))
	}

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ARGB8888,
		sdl.TEXTUREACCESS_STREAMING, chip8.DisplayWidth, chip8.DisplayHeight)
	if err != nil {
		panic(fmt.Errorf("failed to create texture: %v", err))
	}

	d.window = window
	d.renderer = renderer
	d.texture = texture
	return d
}

// tick repaints the window when the machine has flagged a redraw, then
// clears the flag. Frames are throttled independently of the step rate.
func (d *display) tick(vm *chip8.VM) {
	if !vm.Redraw() || time.Since(d.lastFrame) < frameInterval {
		return
	}

	pixels, pitch, err := d.texture.Lock(nil)
	if err != nil {
		panic(fmt.Errorf("error locking texture: %v", err))
	}
	if pitch != chip8.DisplayWidth*4 {
		panic(fmt.Errorf("unexpected pitch: %d", pitch))
	}

	vram := vm.VRAM()
	for y := uint16(0); y < chip8.DisplayHeight; y++ {
		for x := uint16(0); x < chip8.DisplayWidth; x++ {
			index, _ := chip8.VRAMIndex(x, y)
			color := pixelOff
			if vram[index] == 1 {
				color = pixelOn
			}
			copy(pixels[index*4:], color[:])
		}
	}

	// Fully painted, now flip the texture onto the window.
	d.texture.Unlock()
	if err := d.renderer.Clear(); err != nil {
		panic(fmt.Errorf("failed to clear renderer: %v", err))
	}
	err = d.renderer.Copy(d.texture,
		&sdl.Rect{W: chip8.DisplayWidth, H: chip8.DisplayHeight},
		&sdl.Rect{W: chip8.DisplayWidth * displayScale, H: chip8.DisplayHeight * displayScale})
	if err != nil {
		panic(fmt.Errorf("failed to copy texture: %v", err))
	}

	d.renderer.Present()
	vm.ClearRedraw()
	d.lastFrame = time.Now()
}

func (d *display) cleanup() {
	d.texture.Destroy()
	d.renderer.Destroy()
	d.window.Destroy()
	sdl.Quit()
}
