package fyne

import (
	"errors"
	"image"
	"testing"
	"time"

	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"

	"github.com/crispvm/go-chip8/internal/chip8"
	"github.com/crispvm/go-chip8/internal/render"
	"github.com/crispvm/go-chip8/pkg/display/event"
)

func newTestDriver() *fyneDriver {
	f := &fyneDriver{scale: 1}
	f.app = test.NewApp()
	f.img = image.NewRGBA(image.Rect(0, 0, chip8.Width, chip8.Height))
	f.raster = canvas.NewRasterFromImage(f.img)
	f.window = test.NewWindow(f.raster)
	return f
}

func TestDrainLoopPresentsFrames(t *testing.T) {
	f := newTestDriver()
	fb := make(chan []byte)
	evts := make(chan event.Event, 2)
	done := make(chan error, 1)
	go f.drainLoop(fb, evts, done)

	frame := make([]byte, render.SurfaceSize)
	frame[0] = 0xFF
	fb <- frame
	evts <- event.Event{Type: event.Title, Data: "pong"}
	evts <- event.Event{Type: event.Quit}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected orderly shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("drain loop did not quit")
	}

	if f.img.Pix[0] != 0xFF {
		t.Error("expected the frame to be copied into the canvas image")
	}
	if f.window.Title() != "pong" {
		t.Errorf("expected window title %q, got %q", "pong", f.window.Title())
	}
}

func TestDrainLoopReportsFault(t *testing.T) {
	f := newTestDriver()
	evts := make(chan event.Event, 1)
	done := make(chan error, 1)
	go f.drainLoop(nil, evts, done)

	fault := errors.New("illegal opcode")
	evts <- event.Event{Type: event.Quit, Data: fault}

	select {
	case err := <-done:
		if !errors.Is(err, fault) {
			t.Errorf("expected the machine fault, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("drain loop did not quit")
	}
}
