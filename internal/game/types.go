package game

// State is the run state of the Manager.
type State int

const (
	StatePlaying State = iota
	StatePaused
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}
