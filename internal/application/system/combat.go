package system

import (
	"log/slog"

	"github.com/jakecoffman/cp"
	"github.com/younwookim/arena/internal/application/schedule"
	"github.com/younwookim/arena/internal/domain/entity"
	"github.com/younwookim/arena/internal/domain/vec"
)

// HitReceiver reacts to incoming hits
type HitReceiver interface {
	ReceiveHit(a *entity.Actor, hit entity.Hit) (accepted bool, err error)
}

// CombatSystem runs the per-actor Idle/Attacking/Hit state machine
type CombatSystem struct {
	sched   *schedule.Scheduler
	spawner entity.Spawner
	logger  *slog.Logger

	// Active clip-finished subscription per actor
	finish map[entity.ID]func()
	// Continuous-fire and attack-cadence timers per actor
	fire    map[entity.ID]schedule.TaskID
	cadence map[entity.ID]schedule.TaskID

	// Event callbacks
	OnAttack func(a *entity.Actor)
	OnHit    func(a *entity.Actor)
}

var _ HitReceiver = (*CombatSystem)(nil)

// NewCombatSystem creates a new combat system
func NewCombatSystem(sched *schedule.Scheduler, spawner entity.Spawner, logger *slog.Logger) *CombatSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &CombatSystem{
		sched:   sched,
		spawner: spawner,
		logger:  logger,
		finish:  make(map[entity.ID]func()),
		fire:    make(map[entity.ID]schedule.TaskID),
		cadence: make(map[entity.ID]schedule.TaskID),
	}
}

// SetSpawner sets the projectile spawner
func (s *CombatSystem) SetSpawner(spawner entity.Spawner) {
	s.spawner = spawner
}

// PlayIdle starts the idle clip
func (s *CombatSystem) PlayIdle(a *entity.Actor) {
	if a == nil || a.Animator == nil {
		return
	}
	a.Animator.Play(a.Clips.Idle)
}

// RequestAttack enters Attacking from Idle. Requests in any other state are
// ignored. A projectile actor fires exactly one projectile on entry.
func (s *CombatSystem) RequestAttack(a *entity.Actor) error {
	if a == nil || a.State != entity.StateIdle {
		return nil
	}

	if err := s.checkAttack(a); err != nil {
		s.logger.Error("attack aborted", "actor", a.ID, "err", err)
		return err
	}

	// Fire before changing state so a failed spawn leaves the actor Idle
	if err := s.fireProjectile(a); err != nil {
		return err
	}

	a.State = entity.StateAttacking
	a.Animator.Play(a.Clips.Attack)
	s.subscribe(a, entity.StateAttacking)

	if s.OnAttack != nil {
		s.OnAttack(a)
	}
	return nil
}

func (s *CombatSystem) checkAttack(a *entity.Actor) error {
	if a.Animator == nil {
		return entity.Missing(a.ID, "animator")
	}
	if !a.FiresProjectiles() {
		return nil
	}
	if a.ShootOffset == nil {
		return entity.Missing(a.ID, "shoot point")
	}
	if s.spawner == nil {
		return entity.Missing(a.ID, "spawner")
	}
	return nil
}

// fireProjectile spawns one projectile for projectile actors
func (s *CombatSystem) fireProjectile(a *entity.Actor) error {
	if !a.FiresProjectiles() {
		return nil
	}
	if s.spawner == nil {
		err := entity.Missing(a.ID, "spawner")
		s.logger.Error("fire aborted", "actor", a.ID, "err", err)
		return err
	}

	p, err := s.spawner.Spawn(a)
	if err != nil {
		s.logger.Error("fire aborted", "actor", a.ID, "err", err)
		return err
	}
	s.logger.Debug("projectile fired", "actor", a.ID, "projectile", p.ID, "type", p.Type)
	return nil
}

// ReceiveHit enters Hit from Idle or Attacking. Hits while already Hit (or
// torn down) are ignored and reported as not accepted. The shove is deferred
// to the post-physics phase; the state change and hit clip are immediate.
func (s *CombatSystem) ReceiveHit(a *entity.Actor, hit entity.Hit) (bool, error) {
	if a == nil || a.State == entity.StateHit || !a.IsActive() {
		return false, nil
	}

	s.scheduleImpulse(a, hit)

	if a.Animator == nil {
		err := entity.Missing(a.ID, "animator")
		s.logger.Error("hit reaction skipped", "actor", a.ID, "err", err)
		return true, err
	}

	s.unsubscribe(a)
	a.State = entity.StateHit
	a.Animator.Play(a.Clips.Hit)
	s.subscribe(a, entity.StateHit)

	if s.OnHit != nil {
		s.OnHit(a)
	}
	return true, nil
}

func (s *CombatSystem) scheduleImpulse(a *entity.Actor, hit entity.Hit) {
	if a.Body == nil || (hit.Impulse == 0 && hit.RotationForce == 0) {
		return
	}

	impulse := vec.Scale(vec.Normalize(hit.Knockback), hit.Impulse)
	rotation := hit.RotationForce
	var point cp.Vector
	hasPoint := hit.Point != nil
	if hasPoint {
		point = *hit.Point
	}

	s.sched.Defer(a.ID, func() {
		if a.Body == nil || !a.IsActive() {
			return
		}
		a.Body.WakeUp()
		at := a.Body.Position()
		if hasPoint {
			at = point
		}
		if !vec.IsZero(impulse) {
			a.Body.ApplyLinearImpulse(impulse, at, true)
		}
		if rotation != 0 {
			a.Body.ApplyAngularImpulse(rotation, true)
		}
	})
}

// subscribe registers the single clip-finished handler for state
func (s *CombatSystem) subscribe(a *entity.Actor, state entity.CombatState) {
	s.unsubscribe(a)
	s.finish[a.ID] = a.Animator.OnceFinished(func() {
		delete(s.finish, a.ID)
		s.clipFinished(a, state)
	})
}

func (s *CombatSystem) unsubscribe(a *entity.Actor) {
	if cancel, ok := s.finish[a.ID]; ok {
		delete(s.finish, a.ID)
		if cancel != nil {
			cancel()
		}
	}
}

// clipFinished is the only way out of Attacking and Hit
func (s *CombatSystem) clipFinished(a *entity.Actor, from entity.CombatState) {
	if a.State != from {
		return
	}
	a.State = entity.StateIdle
	s.PlayIdle(a)
}

// HoldAttack attacks now and, for continuous-fire actors, keeps firing every
// FireInterval until ReleaseAttack.
func (s *CombatSystem) HoldAttack(a *entity.Actor) error {
	if a == nil {
		return nil
	}
	if !a.ContinuousFire {
		return s.RequestAttack(a)
	}
	if _, held := s.fire[a.ID]; held {
		return nil
	}

	err := s.RequestAttack(a)
	if id := s.sched.Every(a.ID, a.FireInterval, func() { s.fireTick(a) }); id != 0 {
		s.fire[a.ID] = id
	}
	return err
}

func (s *CombatSystem) fireTick(a *entity.Actor) {
	switch a.State {
	case entity.StateIdle:
		_ = s.RequestAttack(a)
	case entity.StateAttacking:
		// Extra shot without replaying the clip
		_ = s.fireProjectile(a)
	}
}

// ReleaseAttack stops continuous fire
func (s *CombatSystem) ReleaseAttack(a *entity.Actor) {
	if a == nil {
		return
	}
	if id, ok := s.fire[a.ID]; ok {
		s.sched.Cancel(id)
		delete(s.fire, a.ID)
	}
}

// IsHolding reports whether continuous fire is active
func (s *CombatSystem) IsHolding(a *entity.Actor) bool {
	_, ok := s.fire[a.ID]
	return ok
}

// StartAttackCadence requests an attack every AttackInterval
func (s *CombatSystem) StartAttackCadence(a *entity.Actor) schedule.TaskID {
	if a == nil || a.AttackInterval <= 0 {
		return 0
	}
	if id, ok := s.cadence[a.ID]; ok {
		return id
	}
	id := s.sched.Every(a.ID, a.AttackInterval, func() {
		_ = s.RequestAttack(a)
	})
	s.cadence[a.ID] = id
	return id
}

// Teardown cancels everything the actor owns and disables it
func (s *CombatSystem) Teardown(a *entity.Actor) {
	if a == nil {
		return
	}
	s.unsubscribe(a)
	delete(s.fire, a.ID)
	delete(s.cadence, a.ID)
	n := s.sched.CancelOwner(a.ID)
	a.State = entity.StateDisabled
	s.logger.Debug("actor torn down", "actor", a.ID, "cancelledTasks", n)
}
