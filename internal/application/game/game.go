// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/arena/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	frames  uint64
	logger  *slog.Logger
}

// New creates a new Game with the given initial scene, stepping at
// framerate updates per second. The initial scene's OnEnter is called
// immediately.
func New(initialScene scene.Scene, screenW, screenH, framerate int, logger *slog.Logger) *Game {
	if framerate <= 0 {
		framerate = 60
	}
	if logger == nil {
		logger = slog.Default()
	}
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / float64(framerate),
		logger:  logger,
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	g.frames++
	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}

	// Handle scene transition
	if next != nil {
		g.logger.Debug("scene transition", "from", fmt.Sprintf("%T", g.current), "to", fmt.Sprintf("%T", next), "frame", g.frames)
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// Close exits the current scene. Call once after the run loop returns.
func (g *Game) Close() {
	g.current.OnExit()
	g.logger.Debug("game closed", "frames", g.frames)
}

// Current returns the active scene
func (g *Game) Current() scene.Scene {
	return g.current
}

// DT returns the fixed step in seconds
func (g *Game) DT() float64 {
	return g.dt
}
