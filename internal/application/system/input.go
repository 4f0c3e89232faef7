package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/younwookim/arena/internal/domain/entity"
)

// InputSystem reads the keyboard
type InputSystem struct{}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// KeyState holds the raw key state for one frame
type KeyState struct {
	Left           bool
	Right          bool
	Up             bool
	Down           bool
	Attack         bool
	AttackPressed  bool
	AttackReleased bool
	Pause          bool
}

// GetInput reads the current key state (WASD or arrows, Space to attack)
func (s *InputSystem) GetInput() KeyState {
	return KeyState{
		Left:           ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:          ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Up:             ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:           ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Attack:         ebiten.IsKeyPressed(ebiten.KeySpace),
		AttackPressed:  inpututil.IsKeyJustPressed(ebiten.KeySpace),
		AttackReleased: inpututil.IsKeyJustReleased(ebiten.KeySpace),
		Pause:          inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
}

// IntentFromKeys builds the per-tick intent. World y points up, so Up is +Y.
// Opposite keys cancel out.
func IntentFromKeys(k KeyState) entity.Intent {
	var move cp.Vector
	if k.Left {
		move.X--
	}
	if k.Right {
		move.X++
	}
	if k.Up {
		move.Y++
	}
	if k.Down {
		move.Y--
	}
	return entity.Intent{
		Move:           move,
		Attack:         k.Attack,
		AttackPressed:  k.AttackPressed,
		AttackReleased: k.AttackReleased,
	}
}
