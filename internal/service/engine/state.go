package engine

// State is the observable phase of the engine.
type State int32

const (
	// Idle means Run has not been called yet.
	Idle State = iota
	// Waiting means the loop is running and the alarm has not fired.
	Waiting
	// Triggered means the alarm fired and waits for dismissal.
	Triggered
	// Dismissed means the user turned the alarm off; the loop has exited.
	Dismissed
	// Stopped means the loop exited on a stop request or cancellation.
	Stopped
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Waiting:
		return "waiting"
	case Triggered:
		return "triggered"
	case Dismissed:
		return "dismissed"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}
