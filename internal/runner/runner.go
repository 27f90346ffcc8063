// Package runner owns the frame loop: once per display refresh
// it drains pending input, advances the machine by one frame,
// renders the resulting pixel plane onto the persistent RGBA
// surface and hands the surface to the display driver. All
// machine mutation happens on the loop's goroutine; input
// events arriving from a driver are serialized through a
// bounded queue drained at the start of each iteration, so
// SetKey is never concurrent with Tick or Frame.
package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/crispvm/go-chip8/internal/keypad"
	"github.com/crispvm/go-chip8/internal/render"
	"github.com/crispvm/go-chip8/pkg/display"
	"github.com/crispvm/go-chip8/pkg/display/event"
	"github.com/crispvm/go-chip8/pkg/emulator"
	"github.com/crispvm/go-chip8/pkg/log"
	"github.com/crispvm/go-chip8/pkg/perf"
)

// FrameTime is the nominal duration of one display refresh.
const FrameTime = time.Second / 60

// Machine is the capability surface of the virtual machine the
// loop drives. The runner owns the handle exclusively; nothing
// else may mutate the machine while the loop runs.
type Machine interface {
	// Tick advances the machine by one display frame's worth
	// of cycles.
	Tick() error
	// Frame returns a snapshot of the machine's display plane.
	Frame() []byte
	// SetKey updates the machine's input latch.
	SetKey(key uint8, pressed bool)
	// Reset returns the machine to its power-on state with the
	// loaded program intact.
	Reset()
}

// Runner drives a Machine through the frame loop. Its state
// machine is Idle until Start, Running while the loop turns,
// and terminally Stopped (orderly shutdown) or Errored
// (machine fault).
type Runner struct {
	machine  Machine
	bindings keypad.Bindings
	surface  *render.Surface
	recorder *perf.Recorder
	title    string

	interval time.Duration
	commands chan emulator.CommandPacket

	mu      sync.Mutex
	status  emulator.Status
	started bool

	log.Logger
}

// Opt is a configuration option for the Runner.
type Opt func(*Runner)

// WithLogger sets the logger of the frame loop.
func WithLogger(l log.Logger) Opt {
	return func(r *Runner) {
		r.Logger = l
	}
}

// WithBindings sets the key binding table used to translate
// physical key events.
func WithBindings(b keypad.Bindings) Opt {
	return func(r *Runner) {
		r.bindings = b
	}
}

// WithRecorder attaches a frame time recorder to the loop.
func WithRecorder(rec *perf.Recorder) Opt {
	return func(r *Runner) {
		r.recorder = rec
	}
}

// WithTitle sets the title announced to the display driver.
func WithTitle(title string) Opt {
	return func(r *Runner) {
		r.title = title
	}
}

// New returns an Idle Runner owning the given machine.
func New(m Machine, opts ...Opt) *Runner {
	r := &Runner{
		machine:  m,
		bindings: keypad.DefaultBindings,
		surface:  render.NewSurface(),
		interval: FrameTime,
		commands: make(chan emulator.CommandPacket, 8),
		status:   emulator.Idle,
		title:    "go-chip8",
		Logger:   log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Status returns the current state of the frame loop.
func (r *Runner) Status() emulator.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *Runner) setStatus(s emulator.Status) {
	r.mu.Lock()
	r.status = s
	r.mu.Unlock()
}

// SendCommand sends a command packet to the frame loop. It
// never blocks; commands sent to a loop that is not running
// are reported as errors in the response.
func (r *Runner) SendCommand(cmd emulator.CommandPacket) emulator.ResponsePacket {
	if r.Status().Terminal() {
		return emulator.ResponsePacket{Command: cmd.Command, Error: fmt.Errorf("runner: frame loop has terminated")}
	}
	select {
	case r.commands <- cmd:
		return emulator.ResponsePacket{Command: cmd.Command}
	default:
		return emulator.ResponsePacket{Command: cmd.Command, Error: fmt.Errorf("runner: command queue full")}
	}
}

// Start runs the frame loop until the context is cancelled,
// a Close command arrives, or the machine faults. It must be
// called at most once; a second call is a caller error. On a
// machine fault the loop stops scheduling further iterations,
// transitions to Errored and returns the fault after surfacing
// it on the events channel.
func (r *Runner) Start(ctx context.Context, fb chan<- []byte, events chan<- event.Event, inputs <-chan display.Input) error {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return fmt.Errorf("runner: frame loop started twice")
	}
	r.started = true
	r.status = emulator.Running
	r.mu.Unlock()

	r.sendEvent(events, event.Event{Type: event.Title, Data: r.title})

	refresh := time.NewTicker(r.interval)
	defer refresh.Stop()

	paused := false
	frames := 0

	for {
		select {
		case <-ctx.Done():
			r.setStatus(emulator.Stopped)
			r.sendEvent(events, event.Event{Type: event.Quit})
			return nil
		case cmd := <-r.commands:
			switch cmd.Command {
			case emulator.CommandPause:
				paused = true
				r.setStatus(emulator.Paused)
			case emulator.CommandResume:
				paused = false
				r.setStatus(emulator.Running)
			case emulator.CommandReset:
				r.machine.Reset()
				r.sendEvent(events, event.Event{Type: event.Title, Data: r.title})
			case emulator.CommandClose:
				r.setStatus(emulator.Stopped)
				r.sendEvent(events, event.Event{Type: event.Quit})
				return nil
			}
		case <-refresh.C:
			start := time.Now()

			// apply pending input before the machine advances
			r.drainInputs(inputs)

			if paused {
				continue
			}

			if err := r.machine.Tick(); err != nil {
				r.setStatus(emulator.Errored)
				r.Errorf("machine fault: %v", err)
				r.sendEvent(events, event.Event{Type: event.Quit, Data: err})
				return err
			}

			// the plane rendered is always the one produced by
			// the tick of this same iteration
			render.Render(r.machine.Frame(), r.surface)

			// publish a snapshot so queued frames are not
			// clobbered by the next render
			frame := make([]byte, render.SurfaceSize)
			copy(frame, r.surface.Bytes())

			select {
			case fb <- frame:
			case <-ctx.Done():
				r.setStatus(emulator.Stopped)
				r.sendEvent(events, event.Event{Type: event.Quit})
				return nil
			}

			if r.recorder != nil {
				r.recorder.Record(time.Since(start))
			}

			frames++
			if frames%60 == 0 {
				if r.recorder != nil {
					r.sendEvent(events, event.Event{Type: event.FrameTime, Data: r.recorder.Average()})
				}
				r.sendEvent(events, event.Event{Type: event.Title, Data: fmt.Sprintf("%s | %d frames", r.title, frames)})
			}
		}
	}
}

// drainInputs applies every queued input event to the machine.
// A key without a binding is dropped, not treated as an error.
func (r *Runner) drainInputs(inputs <-chan display.Input) {
	for {
		select {
		case in := <-inputs:
			key, ok := r.bindings.Translate(in.Code)
			if !ok {
				r.Debugf("unbound key %q ignored", in.Code)
				continue
			}
			r.machine.SetKey(key, in.Pressed)
		default:
			return
		}
	}
}

// sendEvent delivers an event to the driver without blocking
// the loop; a driver that has stopped consuming events only
// loses notifications, never frames.
func (r *Runner) sendEvent(events chan<- event.Event, e event.Event) {
	select {
	case events <- e:
	default:
	}
}
