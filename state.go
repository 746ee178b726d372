package dispatchz

// State is the lifecycle phase of a dispatcher's worker.
type State int32

const (
	// StateStopped means the worker has not started. New starts the worker
	// eagerly, so a constructed dispatcher is never observed in this state.
	StateStopped State = iota
	// StateRunning means the worker is delivering records.
	StateRunning
	// StateDraining means Stop was called and the worker is finishing.
	StateDraining
	// StateTerminated means the worker goroutine has exited.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
