package entity

// CombatState is the state of an actor's combat state machine
type CombatState int

const (
	StateIdle CombatState = iota
	StateAttacking
	StateHit
	StateDisabled
)

// String returns the string representation of the combat state
func (s CombatState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAttacking:
		return "Attacking"
	case StateHit:
		return "Hit"
	case StateDisabled:
		return "Disabled"
	default:
		return "Unknown"
	}
}

// Control selects how an actor's velocity is produced each tick
type Control int

const (
	// ControlInput follows the per-tick intent vector (player)
	ControlInput Control = iota
	// ControlWander seeks random targets inside the move range
	ControlWander
	// ControlFree leaves the body entirely to the physics engine
	ControlFree
)

// String returns the string representation of the control mode
func (c Control) String() string {
	switch c {
	case ControlInput:
		return "input"
	case ControlWander:
		return "wander"
	case ControlFree:
		return "free"
	default:
		return "unknown"
	}
}

// ParseControl converts a config string to a Control.
// Unknown values fall back to ControlWander.
func ParseControl(s string) Control {
	switch s {
	case "input":
		return ControlInput
	case "free", "pinball":
		return ControlFree
	default:
		return ControlWander
	}
}
