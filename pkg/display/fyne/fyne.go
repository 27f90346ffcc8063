//go:build !test

// Package fyne implements a display driver using the Fyne
// toolkit: the RGBA surface is copied into a raster canvas and
// keyboard events are captured through the desktop canvas.
package fyne

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/crispvm/go-chip8/internal/chip8"
	"github.com/crispvm/go-chip8/pkg/display"
	"github.com/crispvm/go-chip8/pkg/display/event"
	"github.com/crispvm/go-chip8/pkg/utils"
)

func init() {
	driver := &fyneDriver{}
	display.Install("fyne", driver, []display.DriverOption{
		{
			Name:        "scale",
			Default:     16.0,
			Value:       &driver.scale,
			Type:        "float",
			Description: "Scale the window by this factor",
		},
	})
}

// keyCodes maps fyne key names to the KeyboardEvent-style codes
// of the shared binding table.
var keyCodes = map[fyne.KeyName]string{
	fyne.KeyW: "KeyW",
	fyne.KeyQ: "KeyQ",
	fyne.KeyK: "KeyK",
	fyne.KeyJ: "KeyJ",
	fyne.Key2: "Digit2",
	fyne.Key3: "Digit3",
	fyne.KeyE: "KeyE",
	fyne.KeyA: "KeyA",
	fyne.KeyS: "KeyS",
	fyne.KeyD: "KeyD",
	fyne.KeyF: "KeyF",
	fyne.KeyZ: "KeyZ",
	fyne.KeyX: "KeyX",
	fyne.KeyC: "KeyC",
	fyne.KeyV: "KeyV",
}

type fyneDriver struct {
	scale float64

	emu display.Emulator

	app    fyne.App
	window fyne.Window
	img    *image.RGBA
	raster *canvas.Raster
}

func (f *fyneDriver) Initialize(e display.Emulator) {
	f.emu = e
}

// Start starts the display driver. It blocks in the fyne event
// loop until the window is closed or the frame loop quits.
func (f *fyneDriver) Start(fb <-chan []byte, evts <-chan event.Event, inputs chan<- display.Input) error {
	f.app = app.New()
	f.window = f.app.NewWindow("go-chip8")
	f.window.SetPadded(false)
	f.window.SetFixedSize(true)

	f.img = image.NewRGBA(image.Rect(0, 0, chip8.Width, chip8.Height))
	f.raster = canvas.NewRasterFromImage(f.img)
	f.raster.ScaleMode = canvas.ImageScalePixels
	f.raster.SetMinSize(fyne.NewSize(float32(chip8.Width*f.scale), float32(chip8.Height*f.scale)))

	f.window.SetContent(f.raster)

	if desk, ok := f.window.Canvas().(desktop.Canvas); ok {
		desk.SetOnKeyDown(func(e *fyne.KeyEvent) {
			if code, ok := keyCodes[e.Name]; ok {
				select {
				case inputs <- display.Input{Code: code, Pressed: true}:
				default:
				}
				return
			}

			switch e.Name {
			case fyne.KeyEscape:
				if f.emu.Status().IsRunning() {
					f.emu.SendCommand(display.Pause)
				} else if f.emu.Status().IsPaused() {
					f.emu.SendCommand(display.Resume)
				}
			case fyne.KeyR:
				f.emu.SendCommand(display.Reset)
			case fyne.KeyY:
				_ = utils.SaveImage(utils.ScaleImage(f.img, 10))
			case fyne.KeyU:
				_ = utils.CopyImage(utils.ScaleImage(f.img, 10))
			}
		})
		desk.SetOnKeyUp(func(e *fyne.KeyEvent) {
			if code, ok := keyCodes[e.Name]; ok {
				select {
				case inputs <- display.Input{Code: code, Pressed: false}:
				default:
				}
			}
		})
	}

	f.window.SetCloseIntercept(func() {
		f.emu.SendCommand(display.Close)
		f.app.Quit()
	})

	done := make(chan error, 1)
	go f.drainLoop(fb, evts, done)

	f.window.Show()
	f.app.Run()

	select {
	case err := <-done:
		return err
	default:
		// the window was closed before the frame loop quit
		return nil
	}
}

// drainLoop consumes frames and events until the frame loop
// quits, then delivers the loop's fault on done exactly once
// before tearing the window down.
func (f *fyneDriver) drainLoop(fb <-chan []byte, evts <-chan event.Event, done chan<- error) {
	for {
		select {
		case frame := <-fb:
			copy(f.img.Pix, frame)
			f.raster.Refresh()
		case e := <-evts:
			switch e.Type {
			case event.Title:
				f.window.SetTitle(e.Data.(string))
			case event.Quit:
				err, _ := e.Data.(error)
				done <- err
				f.app.Quit()
				return
			}
		}
	}
}

// Stop stops the display driver.
func (f *fyneDriver) Stop() error {
	if f.app != nil {
		f.app.Quit()
	}

	return nil
}
