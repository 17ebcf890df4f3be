package charge

// State is the phase of the hold/release cycle.
type State int

const (
	// StateIdle means the cycle has not started yet
	StateIdle State = iota
	// StateHeld means the hold key is down while the bar charges
	StateHeld
	// StateReleased means the key is up for the cooldown
	StateReleased
	// StateStopped is terminal; the key is up
	StateStopped
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateHeld:
		return "held"
	case StateReleased:
		return "released"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
