package state

// GameState represents the current state of the arena scene
type GameState int

const (
	StatePlaying GameState = iota
	StatePaused
	StateReplayFinished
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateReplayFinished:
		return "ReplayFinished"
	default:
		return "Unknown"
	}
}

// TogglePause switches between Playing and Paused. Other states are kept.
func (s GameState) TogglePause() GameState {
	switch s {
	case StatePlaying:
		return StatePaused
	case StatePaused:
		return StatePlaying
	default:
		return s
	}
}

// Simulating reports whether the arena advances in this state
func (s GameState) Simulating() bool {
	return s == StatePlaying
}
