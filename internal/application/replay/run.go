package replay

import (
	"github.com/jakecoffman/cp"
	"github.com/younwookim/arena/internal/application/system"
	"github.com/younwookim/arena/internal/domain/entity"
)

// Summary is the end state of a headless playback
type Summary struct {
	Frames      int
	Player      cp.Vector
	Enemies     []cp.Vector
	States      []entity.CombatState
	Hits        int
	Attacks     int
	Projectiles int
}

// Run steps sim through every remaining frame of r without rendering.
// Two runs of the same recording against the same config and seed must
// produce equal summaries.
func Run(sim *system.Simulation, r *Replayer, dt float64) Summary {
	var sum Summary

	combat := sim.Combat()
	prevHit, prevAttack := combat.OnHit, combat.OnAttack
	combat.OnHit = func(a *entity.Actor) {
		sum.Hits++
		if prevHit != nil {
			prevHit(a)
		}
	}
	combat.OnAttack = func(a *entity.Actor) {
		sum.Attacks++
		if prevAttack != nil {
			prevAttack(a)
		}
	}
	defer func() { combat.OnHit, combat.OnAttack = prevHit, prevAttack }()

	for {
		keys, ok := r.GetInput()
		if !ok {
			break
		}
		sim.Step(system.IntentFromKeys(keys), dt)
		sum.Frames++
	}

	sum.Player = sim.Player().Position()
	for _, e := range sim.Enemies() {
		sum.Enemies = append(sum.Enemies, e.Position())
		sum.States = append(sum.States, e.State)
	}
	sum.Projectiles = len(sim.Projectiles())
	return sum
}
