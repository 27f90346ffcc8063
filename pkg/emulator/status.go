package emulator

// Status represents the lifecycle state of the frame
// loop. It can be one of the following:
//
//   - Idle
//   - Running
//   - Paused
//   - Stopped
//   - Errored
type Status int

const (
	// Idle represents the status of the frame loop
	// before it has been started.
	Idle Status = iota
	// Running represents the status of the frame loop
	// while it is advancing the machine and producing
	// frames.
	Running
	// Paused represents the status of the frame loop
	// when it has been suspended by the user. The
	// machine is not advanced while paused.
	Paused
	// Stopped represents the terminal status of the
	// frame loop after an orderly shutdown.
	Stopped
	// Errored represents the terminal status of the
	// frame loop after the machine has reported a
	// fault.
	Errored
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	case Stopped:
		return "Stopped"
	case Errored:
		return "Errored"
	default:
		return "Unknown"
	}
}

func (s Status) IsRunning() bool {
	return s == Running
}

func (s Status) IsPaused() bool {
	return s == Paused
}

func (s Status) IsErrored() bool {
	return s == Errored
}

// Terminal reports whether the status is one of the two
// terminal states.
func (s Status) Terminal() bool {
	return s == Stopped || s == Errored
}
