package display

import (
	"flag"
	"fmt"

	"github.com/crispvm/go-chip8/pkg/display/event"
	"github.com/crispvm/go-chip8/pkg/emulator"
)

// Input is a physical key event as produced by a display
// driver: the KeyboardEvent-style code of the key and whether
// it went down or up. Translation onto the virtual keypad
// happens on the frame loop's goroutine, never in the driver.
type Input struct {
	Code    string
	Pressed bool
}

// Driver is the interface that wraps the basic methods for a
// display driver.
type Driver interface {
	// Initialize initializes the display driver by attaching it to
	// the emulator that is using it.
	Initialize(emu Emulator)
	// Start the display driver. It blocks presenting frames
	// received on fb until the frame loop quits or the user
	// closes the display.
	Start(fb <-chan []byte, events <-chan event.Event, inputs chan<- Input) error
	// Stop the display driver.
	Stop() error
}

// Emulator is the interface that wraps the basic methods for an
// emulator to implement in order for the driver to be able to
// interact with it. This is used to allow the driver to
// control the emulator. The emulator is passed to the driver
// during initialization.
type Emulator interface {
	// SendCommand sends a command packet to the emulator.
	SendCommand(command emulator.CommandPacket) emulator.ResponsePacket
	// Status returns the status of the emulator.
	Status() emulator.Status
}

var (
	Pause  = emulator.CommandPacket{Command: emulator.CommandPause}
	Resume = emulator.CommandPacket{Command: emulator.CommandResume}
	Close  = emulator.CommandPacket{Command: emulator.CommandClose}
	Reset  = emulator.CommandPacket{Command: emulator.CommandReset}
)

// DriverOption is a display driver option. This is used to
// configure a display driver.
type DriverOption struct {
	Name        string // name of the option
	Default     any    // default value of the option
	Value       any    // pointer to the value of the option
	Description string // description of the option
	Type        string // "int", "bool", "string", "float"
}

// InstalledDriver is a driver that has been installed. This is
// used to allow drivers to register their name.
type InstalledDriver struct {
	Name    string
	Options []DriverOption
	Driver
}

// InstalledDrivers is a list of all the installed drivers. This
// variable is exported so that it can be used by the main
// program to determine which drivers can be used. Drivers should
// call display.Install in their init() function.
var InstalledDrivers []*InstalledDriver

// GetDriver returns the driver with the given name, or nil if
// no driver with that name is installed.
func GetDriver(name string) Driver {
	if name == "auto" && len(InstalledDrivers) > 0 {
		return InstalledDrivers[0]
	}
	for _, driver := range InstalledDrivers {
		if driver.Name == name {
			return driver.Driver
		}
	}

	return nil
}

// Install registers a display driver with the given name.
func Install(name string, driver Driver, options []DriverOption) {
	if InstalledDrivers == nil {
		InstalledDrivers = make([]*InstalledDriver, 0)
	}

	InstalledDrivers = append(InstalledDrivers, &InstalledDriver{
		Name:    name,
		Options: options,
		Driver:  driver,
	})
}

// RegisterFlags iterates through all the display driver
// options and registers them with the flag package, prefixed
// with the driver's name.
func RegisterFlags() {
	for _, driver := range InstalledDrivers {
		for _, opt := range driver.Options {
			name := fmt.Sprintf("%s-%s", driver.Name, opt.Name)
			switch opt.Type {
			case "string":
				flag.StringVar(opt.Value.(*string), name, opt.Default.(string), opt.Description)
			case "bool":
				flag.BoolVar(opt.Value.(*bool), name, opt.Default.(bool), opt.Description)
			case "int":
				flag.IntVar(opt.Value.(*int), name, opt.Default.(int), opt.Description)
			case "float":
				flag.Float64Var(opt.Value.(*float64), name, opt.Default.(float64), opt.Description)
			}
		}
	}
}
