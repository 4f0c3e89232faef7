package system

import (
	"github.com/jakecoffman/cp"
	"github.com/younwookim/arena/internal/domain/entity"
	"github.com/younwookim/arena/internal/infrastructure/config"
	"github.com/younwookim/arena/internal/infrastructure/physics"
)

// WallSegments converts a stage's wall config into world-space segments.
// The border sits inset from the screen edges of an origin-centred screen.
func WallSegments(cfg *config.StageConfig, screen entity.ScreenSize, inset float64) [][2]cp.Vector {
	var segs [][2]cp.Vector
	if cfg.Walls.Border {
		hw := screen.Width/2 - inset
		hh := screen.Height/2 - inset
		bl := cp.Vector{X: -hw, Y: -hh}
		br := cp.Vector{X: hw, Y: -hh}
		tr := cp.Vector{X: hw, Y: hh}
		tl := cp.Vector{X: -hw, Y: hh}
		segs = append(segs, [2]cp.Vector{bl, br}, [2]cp.Vector{br, tr}, [2]cp.Vector{tr, tl}, [2]cp.Vector{tl, bl})
	}
	for _, s := range cfg.Walls.Segments {
		segs = append(segs, [2]cp.Vector{
			{X: s.A.X, Y: s.A.Y},
			{X: s.B.X, Y: s.B.Y},
		})
	}
	return segs
}

// LoadWalls adds the stage's walls to world and returns how many were added
func LoadWalls(world *physics.World, cfg *config.StageConfig, screen entity.ScreenSize, inset, radius float64) int {
	segs := WallSegments(cfg, screen, inset)
	for _, s := range segs {
		world.AddWall(s[0], s[1], radius)
	}
	return len(segs)
}

// PlayerSpawn returns the stage's explicit spawn, or the centre of the move range
func PlayerSpawn(cfg *config.StageConfig, moveRange entity.Rect) cp.Vector {
	if cfg != nil && cfg.PlayerSpawn != nil {
		return cp.Vector{X: cfg.PlayerSpawn.X, Y: cfg.PlayerSpawn.Y}
	}
	return moveRange.Center()
}

// RectFromConfig converts a config rectangle
func RectFromConfig(r config.RectConfig) entity.Rect {
	return entity.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}
