//go:build !test

// Package sdl implements a desktop display driver on top of
// SDL2: the RGBA surface is streamed into a texture scaled up
// to the window, and keyboard events are forwarded as physical
// key codes.
package sdl

import (
	"image"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/crispvm/go-chip8/internal/chip8"
	"github.com/crispvm/go-chip8/internal/keypad"
	"github.com/crispvm/go-chip8/pkg/display"
	"github.com/crispvm/go-chip8/pkg/display/event"
	"github.com/crispvm/go-chip8/pkg/utils"
)

func init() {
	// SDL event handling must run on the main thread
	runtime.LockOSThread()

	driver := &sdlDriver{}
	display.Install("sdl", driver, []display.DriverOption{
		{
			Name:        "scale",
			Default:     16.0,
			Value:       &driver.scale,
			Type:        "float",
			Description: "Scale the window by this factor",
		},
	})
}

// keyCodes maps SDL scancodes to the KeyboardEvent-style codes
// of the shared binding table.
var keyCodes = map[sdl.Scancode]string{
	sdl.SCANCODE_W: "KeyW",
	sdl.SCANCODE_Q: "KeyQ",
	sdl.SCANCODE_K: "KeyK",
	sdl.SCANCODE_J: "KeyJ",
	sdl.SCANCODE_2: "Digit2",
	sdl.SCANCODE_3: "Digit3",
	sdl.SCANCODE_E: "KeyE",
	sdl.SCANCODE_A: "KeyA",
	sdl.SCANCODE_S: "KeyS",
	sdl.SCANCODE_D: "KeyD",
	sdl.SCANCODE_F: "KeyF",
	sdl.SCANCODE_Z: "KeyZ",
	sdl.SCANCODE_X: "KeyX",
	sdl.SCANCODE_C: "KeyC",
	sdl.SCANCODE_V: "KeyV",
}

// sdlDriver implements a barebones display driver using SDL2.
type sdlDriver struct {
	scale float64

	emu display.Emulator

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	lastFrame []byte
}

func (s *sdlDriver) Initialize(e display.Emulator) {
	s.emu = e
}

// Start starts the display driver.
func (s *sdlDriver) Start(fb <-chan []byte, evts <-chan event.Event, inputs chan<- display.Input) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return err
	}

	var err error
	s.window, err = sdl.CreateWindow(
		"go-chip8",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(chip8.Width*s.scale), int32(chip8.Height*s.scale),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		return err
	}

	s.renderer, err = sdl.CreateRenderer(s.window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return err
	}

	s.texture, err = s.renderer.CreateTexture(sdl.PIXELFORMAT_RGBA32, sdl.TEXTUREACCESS_STREAMING, chip8.Width, chip8.Height)
	if err != nil {
		return err
	}

	s.lastFrame = make([]byte, 4*chip8.Width*chip8.Height)

	pollTicker := time.NewTicker(time.Millisecond * 100) // to handle when paused
	defer pollTicker.Stop()

	// draw loop
	for {
		select {
		case f := <-fb:
			if quit := s.pollEvents(inputs); quit {
				return nil
			}
			copy(s.lastFrame, f)

			if err := s.texture.Update(nil, f, 4*chip8.Width); err != nil {
				return err
			}
			if err := s.renderer.Clear(); err != nil {
				return err
			}
			if err := s.renderer.Copy(s.texture, nil, nil); err != nil {
				return err
			}
			s.renderer.Present()
		case e := <-evts:
			switch e.Type {
			case event.Title:
				s.window.SetTitle(e.Data.(string))
			case event.Quit:
				if err, ok := e.Data.(error); ok {
					return err
				}
				return nil
			}
		case <-pollTicker.C:
			if quit := s.pollEvents(inputs); quit {
				return nil
			}
		}
	}
}

// pollEvents drains the SDL event queue, forwarding bound keys
// and handling the driver's own hotkeys. It reports whether the
// user asked to quit.
func (s *sdlDriver) pollEvents(inputs chan<- display.Input) bool {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			s.emu.SendCommand(display.Close)
			return true
		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				continue
			}

			if code, ok := keyCodes[ev.Keysym.Scancode]; ok && keypad.DefaultBindings.Mapped(code) {
				select {
				case inputs <- display.Input{Code: code, Pressed: ev.Type == sdl.KEYDOWN}:
				default:
					// queue full; drop rather than stall the UI thread
				}
				continue
			}

			if ev.Type != sdl.KEYDOWN {
				continue
			}
			switch ev.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE:
				if s.emu.Status().IsRunning() {
					s.emu.SendCommand(display.Pause)
				} else if s.emu.Status().IsPaused() {
					s.emu.SendCommand(display.Resume)
				}
			case sdl.SCANCODE_F5:
				s.emu.SendCommand(display.Reset)
			case sdl.SCANCODE_F11:
				_ = utils.CopyImage(utils.ScaleImage(s.frameImage(), 10))
			case sdl.SCANCODE_F12:
				_ = utils.SaveImage(utils.ScaleImage(s.frameImage(), 10))
			}
		}
	}

	return false
}

func (s *sdlDriver) frameImage() *image.RGBA {
	return &image.RGBA{
		Pix:    s.lastFrame,
		Stride: 4 * chip8.Width,
		Rect:   image.Rect(0, 0, chip8.Width, chip8.Height),
	}
}

// Stop stops the display driver.
func (s *sdlDriver) Stop() error {
	if s.texture != nil {
		_ = s.texture.Destroy()
	}
	if s.renderer != nil {
		_ = s.renderer.Destroy()
	}
	if s.window != nil {
		_ = s.window.Destroy()
	}
	sdl.Quit()

	return nil
}
