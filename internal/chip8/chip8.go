// Package chip8 provides an emulation of the CHIP-8 virtual
// machine. The machine is driven through a narrow surface:
// LoadProgram primes it with a ROM image, Tick advances it by
// one display frame's worth of cycles, Frame snapshots the
// display plane and SetKey updates the input latch.
package chip8

import (
	"fmt"
	"math/rand"

	"github.com/crispvm/go-chip8/pkg/log"
)

const (
	// Width is the width of the display plane in pixels.
	Width = 64
	// Height is the height of the display plane in pixels.
	Height = 32

	// MemorySize is the size of the machine's RAM.
	MemorySize = 4096
	// ProgramStart is the address programs are loaded at; the
	// region below it is reserved for the interpreter.
	ProgramStart = 0x200
	// fontStart is the address the builtin font sprites are
	// loaded at.
	fontStart = 0x050

	// CyclesPerTick is the number of CPU cycles executed per
	// display frame. At 60 frames per second this clocks the
	// CPU at 600Hz.
	CyclesPerTick = 10

	stackDepth = 16
)

// Chip8 represents a CHIP-8 virtual machine. It contains all
// the components of the machine and is the main entry point
// for the emulation.
type Chip8 struct {
	ram     [MemorySize]uint8
	program []byte

	pc uint16
	i  uint16
	v  [16]uint8

	stack [stackDepth]uint16
	sp    uint8

	display [Width * Height]uint8
	keypad  [16]bool

	delayTimer uint8
	soundTimer uint8

	rand *rand.Rand

	log.Logger
}

// Opt is a configuration option for the machine.
type Opt func(c *Chip8)

// WithLogger sets the logger of the machine.
func WithLogger(l log.Logger) Opt {
	return func(c *Chip8) {
		c.Logger = l
	}
}

// WithRandSeed seeds the random source used by the RND
// instruction, for deterministic execution.
func WithRandSeed(seed int64) Opt {
	return func(c *Chip8) {
		c.rand = rand.New(rand.NewSource(seed))
	}
}

// New returns a new Chip8 with the builtin font loaded.
func New(opts ...Opt) *Chip8 {
	c := &Chip8{
		rand:   rand.New(rand.NewSource(1)),
		Logger: log.NewNullLogger(),
	}
	copy(c.ram[fontStart:], fontSet[:])

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// LoadProgram installs a ROM image at the program start
// address and points the program counter at it. The machine
// must be primed with a program before the first Tick.
func (c *Chip8) LoadProgram(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("chip8: empty program image")
	}
	if len(data) > MemorySize-ProgramStart {
		return fmt.Errorf("chip8: program image of %d bytes exceeds %d bytes of program memory", len(data), MemorySize-ProgramStart)
	}

	c.program = make([]byte, len(data))
	copy(c.program, data)

	copy(c.ram[ProgramStart:], data)
	c.pc = ProgramStart

	return nil
}

// Reset returns the machine to its power-on state with the
// loaded program intact, clearing registers, memory, timers,
// the display plane and the input latch.
func (c *Chip8) Reset() {
	c.ram = [MemorySize]uint8{}
	copy(c.ram[fontStart:], fontSet[:])
	copy(c.ram[ProgramStart:], c.program)

	c.pc = ProgramStart
	c.i = 0
	c.v = [16]uint8{}
	c.stack = [stackDepth]uint16{}
	c.sp = 0
	c.display = [Width * Height]uint8{}
	c.keypad = [16]bool{}
	c.delayTimer = 0
	c.soundTimer = 0
}

// Tick advances the machine by one display frame: CyclesPerTick
// fetch/execute cycles followed by a single timer step. A fault
// (illegal opcode, call stack exhaustion, memory access outside
// RAM) stops execution mid-frame and is returned; a faulted
// machine is not safe to resume without a reset.
func (c *Chip8) Tick() error {
	for i := 0; i < CyclesPerTick; i++ {
		op, err := c.fetch()
		if err != nil {
			return err
		}
		if err := c.execute(op); err != nil {
			return err
		}
	}
	c.tickTimers()

	return nil
}

// Frame returns a snapshot of the current display plane,
// row-major, one byte per pixel, 0 or 1. The returned slice is
// a fresh copy; it is not aliased by later ticks.
func (c *Chip8) Frame() []byte {
	plane := make([]byte, Width*Height)
	copy(plane, c.display[:])
	return plane
}

// SetKey updates the input latch for the given key. Keys
// outside 0x0-0xF are ignored.
func (c *Chip8) SetKey(key uint8, pressed bool) {
	if int(key) >= len(c.keypad) {
		return
	}
	c.keypad[key] = pressed
}

// Pressed reports the state of the input latch for the given
// key.
func (c *Chip8) Pressed(key uint8) bool {
	if int(key) >= len(c.keypad) {
		return false
	}
	return c.keypad[key]
}

// fetch reads the two byte opcode at the program counter and
// advances it.
func (c *Chip8) fetch() (uint16, error) {
	if int(c.pc)+1 >= len(c.ram) {
		return 0, fmt.Errorf("chip8: program counter 0x%04X outside memory", c.pc)
	}
	op := uint16(c.ram[c.pc])<<8 | uint16(c.ram[c.pc+1])
	c.pc += 2
	return op, nil
}

// tickTimers steps the delay and sound timers. Timers count
// down at the display refresh rate, once per Tick.
func (c *Chip8) tickTimers() {
	if c.delayTimer > 0 {
		c.delayTimer--
	}
	if c.soundTimer > 0 {
		c.soundTimer--
	}
}
