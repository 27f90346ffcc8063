// Package keypad maps physical key identifiers onto the 16
// logical input lines of the CHIP-8 keypad. Physical keys are
// identified by their KeyboardEvent-style code ("KeyW",
// "Digit2", ...) so that every display driver can share one
// binding table regardless of its native key type.
package keypad

// Key represents one of the 16 logical input lines of the
// keypad, 0x0 through 0xF.
type Key = uint8

const (
	Key0 Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
)

// NumKeys is the number of logical input lines.
const NumKeys = 16

// Bindings is a fixed mapping from physical key code to
// logical key. It is immutable for the lifetime of the
// process; entries need not cover all 16 keys, and several
// physical keys may drive the same logical key.
type Bindings map[string]Key

// Translate returns the logical key bound to the given
// physical key code. The second return value reports whether
// a binding exists; callers must treat a missing binding as a
// no-op rather than defaulting to key 0.
func (b Bindings) Translate(code string) (Key, bool) {
	k, ok := b[code]
	return k, ok
}

// Mapped reports whether the given physical key code is bound
// to a logical key. Drivers use this to decide whether the
// native event's default action should be suppressed; keys
// outside the table are left to the host.
func (b Bindings) Mapped(code string) bool {
	_, ok := b[code]
	return ok
}

// Codes returns every physical key code in the table.
func (b Bindings) Codes() []string {
	codes := make([]string, 0, len(b))
	for code := range b {
		codes = append(codes, code)
	}
	return codes
}

// DefaultBindings is the stock keyboard layout. It follows the
// hexadecimal keypad convention with W/Q and K/J as the player
// paddle keys:
//
//	+---+---+---+---+      +---+---+---+---+
//	| 1 | 2 | 3 | C |      | W | 2 | 3 | K |
//	| 4 | 5 | 6 | D |  ->  | Q |   | E | J |
//	| 7 | 8 | 9 | E |      | A | S | D | F |
//	| A | 0 | B | F |      | Z | X | C | V |
//	+---+---+---+---+      +---+---+---+---+
//
// Logical key 0x5 is left unbound; W already drives 0x1.
var DefaultBindings = Bindings{
	"KeyW":   Key1, // player 1 up
	"KeyQ":   Key4, // player 1 down
	"KeyK":   KeyC, // player 2 up
	"KeyJ":   KeyD, // player 2 down
	"Digit2": Key2,
	"Digit3": Key3,
	"KeyE":   Key6,
	"KeyA":   Key7,
	"KeyS":   Key8,
	"KeyD":   Key9,
	"KeyF":   KeyE,
	"KeyZ":   KeyA,
	"KeyX":   Key0,
	"KeyC":   KeyB,
	"KeyV":   KeyF,
}
