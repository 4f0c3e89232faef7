// Package scene defines what the game loop drives each frame.
//
// The arena scene is the only implementation; game.Game swaps scenes when
// Update returns a successor.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen owned by the game loop, such as a running arena.
type Scene interface {
	// Update advances the scene by dt seconds (1/TPS).
	// A non-nil next replaces this scene; an error stops the game.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene.
	Draw(screen *ebiten.Image)

	// OnEnter runs each time the scene becomes current.
	OnEnter()

	// OnExit runs when the scene is replaced or the game closes.
	// Recordings are flushed and actors torn down here.
	OnExit()
}
