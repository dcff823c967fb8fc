package fiber

// State describes where a fiber is in its lifecycle.
type State int32

const (
	// StateSuspended means the fiber is parked at a switch point (or has
	// never been started) and can be resumed.
	StateSuspended State = iota
	// StateRunning means the fiber currently holds the run token. At most
	// one fiber per scheduler is Running at any instant.
	StateRunning
	// StateTerminated means the fiber's entry function has returned or the
	// fiber was stopped. It can never run again.
	StateTerminated
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateSuspended:
		return "suspended"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
