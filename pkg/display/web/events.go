package web

// Type identifies a message sent between the server and a
// browser client. The first byte of every websocket message is
// its type.
type Type = uint8

const (
	// Frame carries a full RGBA frame, brotli compressed when
	// compression is enabled.
	Frame Type = iota
	// Title carries the window title as UTF-8 text.
	Title
	// KeyList carries the newline separated physical key codes
	// the server has bindings for. The client suppresses the
	// browser's default action only for these keys.
	KeyList
	// Quit informs the client that the frame loop has
	// terminated; an optional UTF-8 fault description follows.
	Quit
)

// Client message types.
const (
	// KeyEvent is followed by a pressed byte (0/1) and the
	// UTF-8 physical key code.
	KeyEvent Type = iota
	// PausePlay toggles the frame loop; followed by 0 to pause
	// and 1 to resume.
	PausePlay
	// Reset asks the server to reset the machine.
	Reset
	// Closing announces that the client is going away.
	Closing Type = 255
)
