package system

import (
	"log/slog"
	"math/rand"

	"github.com/younwookim/arena/internal/application/schedule"
	"github.com/younwookim/arena/internal/domain/entity"
)

// WanderSystem picks random targets inside an actor's move range
type WanderSystem struct {
	sched  *schedule.Scheduler
	rng    *rand.Rand
	logger *slog.Logger
}

// NewWanderSystem creates a new wander system
func NewWanderSystem(sched *schedule.Scheduler, rng *rand.Rand, logger *slog.Logger) *WanderSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &WanderSystem{sched: sched, rng: rng, logger: logger}
}

// Start picks a first target and re-picks every MoveInterval.
// Re-picks are skipped while the actor is attacking.
func (s *WanderSystem) Start(a *entity.Actor) schedule.TaskID {
	s.Pick(a)
	if a.MoveInterval <= 0 {
		return 0
	}
	return s.sched.Every(a.ID, a.MoveInterval, func() {
		if a.State == entity.StateAttacking || !a.IsActive() {
			return
		}
		s.Pick(a)
	})
}

// Pick samples a uniform point inside the actor's move range
func (s *WanderSystem) Pick(a *entity.Actor) {
	a.Target = a.MoveRange.At(s.rng.Float64(), s.rng.Float64())
	a.HasTarget = true
	s.logger.Debug("wander target", "actor", a.ID, "x", a.Target.X, "y", a.Target.Y)
}
