// Package event defines the various event types that can
// be sent to a display.Driver. This package is separate from
// the display package to avoid circular dependencies.
package event

// Type defines the various event types
// that can be sent to a display.Driver. The event type
// indicates to the display.Driver what action should be
// taken.
type Type int

const (
	// Quit is sent when the frame loop has reached a terminal
	// state and no further frames will be produced. Data
	// carries the fault as an error when the loop stopped on a
	// machine fault, and nil on an orderly shutdown.
	Quit Type = iota
	// FrameTime is periodically sent to the display.Driver to
	// indicate the recent time spent per frame iteration.
	FrameTime
	// Title is sent to the display.Driver to change the
	// title of the window. This can be used to display
	// custom information in the title bar, such as the
	// loaded program, or FPS.
	Title
)

// Event is the data structure that is sent to the display.Driver
// to indicate an event has occurred. Data may or may not
// contain any data, depending on the event type.
type Event struct {
	// Type is the type of event
	Type Type
	// Data is the data of the event
	Data interface{}
}
