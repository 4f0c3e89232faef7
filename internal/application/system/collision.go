package system

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/younwookim/arena/internal/application/schedule"
	"github.com/younwookim/arena/internal/domain/entity"
	"github.com/younwookim/arena/internal/domain/vec"
	"github.com/younwookim/arena/internal/infrastructure/config"
)

// CollisionSystem turns contact reports into bounces and knockback.
// Contact handlers run inside the physics step, so every body mutation is
// deferred to the post-physics phase.
type CollisionSystem struct {
	bounce    config.BounceConfig
	knockback config.KnockbackConfig
	screen    entity.Screen
	sched     *schedule.Scheduler
	hits      HitReceiver
	rng       *rand.Rand
	logger    *slog.Logger
}

// NewCollisionSystem creates a new collision system
func NewCollisionSystem(cfg *config.CombatConfig, screen entity.Screen, sched *schedule.Scheduler, hits HitReceiver, rng *rand.Rand, logger *slog.Logger) *CollisionSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &CollisionSystem{
		bounce:    cfg.Bounce,
		knockback: cfg.Knockback,
		screen:    screen,
		sched:     sched,
		hits:      hits,
		rng:       rng,
		logger:    logger,
	}
}

// OnWallContact schedules a bounce for actors that bounce off walls.
// The impact velocity is sampled here, before the solver resolves the
// contact; only the mutation waits for the post-physics phase.
func (s *CollisionSystem) OnWallContact(a *entity.Actor, c entity.Contact) {
	if a == nil || !a.Bounces || !a.IsActive() || a.Body == nil {
		return
	}
	normal := c.Normal
	vel := a.Body.Velocity()
	if vec.Length(vel) < s.bounce.MinSpeed {
		return
	}
	s.sched.Defer(a.ID, func() {
		s.applyBounce(a, normal, vel)
	})
}

func (s *CollisionSystem) applyBounce(a *entity.Actor, contactNormal, vel cp.Vector) {
	if !a.IsActive() || a.Body == nil {
		return
	}
	body := a.Body

	if vec.IsZero(contactNormal) {
		s.logger.Debug("contact normal unavailable, using nearest edge", "actor", a.ID)
	}
	w, h := s.screen.Size()
	n, ok := BounceNormal(contactNormal, body.Position(), w/2, h/2, s.bounce.EdgeDeadZone)
	if !ok {
		s.logger.Debug("bounce skipped, inside edge dead zone", "actor", a.ID)
		return
	}

	out, ok := BounceVelocity(vel, n, s.bounce, s.rng)
	if !ok {
		return
	}

	body.WakeUp()
	body.SetVelocity(out)
	if s.bounce.AngularJitter > 0 && s.rng != nil {
		body.ApplyAngularImpulse((s.rng.Float64()*2-1)*s.bounce.AngularJitter, true)
	}
}

// BounceNormal returns the unit direction to bounce along. contactNormal
// points from the body into the wall and is inverted. When it is zero the
// nearest screen edge decides, unless pos is within deadZone of the centre.
func BounceNormal(contactNormal, pos cp.Vector, halfW, halfH, deadZone float64) (cp.Vector, bool) {
	if !vec.IsZero(contactNormal) {
		return vec.Normalize(contactNormal.Neg()), true
	}

	if math.Abs(pos.X) <= deadZone && math.Abs(pos.Y) <= deadZone {
		return vec.Zero, false
	}

	left := pos.X + halfW
	right := halfW - pos.X
	bottom := pos.Y + halfH
	top := halfH - pos.Y

	n := cp.Vector{X: 1}
	best := left
	if right < best {
		best, n = right, cp.Vector{X: -1}
	}
	if bottom < best {
		best, n = bottom, cp.Vector{Y: 1}
	}
	if top < best {
		n = cp.Vector{Y: -1}
	}
	return n, true
}

// BounceVelocity computes the post-bounce velocity along normal.
// It returns false when vel is below the minimum bounce speed. The result
// is never slower than cfg.Floor, jitter included.
func BounceVelocity(vel, normal cp.Vector, cfg config.BounceConfig, rng *rand.Rand) (cp.Vector, bool) {
	speed := vec.Length(vel)
	if speed < cfg.MinSpeed {
		return vel, false
	}
	n := vec.Normalize(normal)
	if vec.IsZero(n) {
		return vel, false
	}

	bounceSpeed := math.Max(speed*cfg.Strength, cfg.Floor)
	out := vec.Scale(n, bounceSpeed)

	if cfg.RandomFactor > 0 && rng != nil {
		jitter := cfg.RandomFactor * bounceSpeed
		out.X += (rng.Float64()*2 - 1) * jitter
		out.Y += (rng.Float64()*2 - 1) * jitter
	}

	if l := vec.Length(out); l < cfg.Floor && l >= vec.Epsilon {
		out = vec.Scale(out, cfg.Floor/l)
	}
	return out, true
}

// KnockbackImpulses splits an exchange of magnitude impulse along n, which
// points from the initiator to the struck body.
func KnockbackImpulses(n cp.Vector, impulse float64) (toStruck, toInitiator cp.Vector) {
	n = vec.Normalize(n)
	return vec.Scale(n, impulse), vec.Scale(n, -impulse)
}

// OnBodyContact resolves a body-to-body knockback. The struck actor flinches
// immediately; both shoves land in the post-physics phase. Nothing is applied
// when the struck actor ignores the hit.
func (s *CollisionSystem) OnBodyContact(initiator, struck *entity.Actor, c entity.Contact) {
	if initiator == nil || struck == nil || !initiator.IsActive() {
		return
	}

	n := vec.Normalize(c.Normal)
	if vec.IsZero(n) {
		n = vec.Normalize(struck.Position().Sub(initiator.Position()))
	}
	if vec.IsZero(n) {
		s.logger.Debug("knockback skipped, bodies coincide", "initiator", initiator.ID, "struck", struck.ID)
		return
	}

	initPoint, struckPoint := initiator.Position(), struck.Position()
	if c.HasPoint {
		initPoint, struckPoint = c.Point, c.OtherPoint
	}

	accepted, _ := s.hits.ReceiveHit(struck, entity.Hit{
		Knockback:     n,
		Impulse:       s.knockback.BodyImpulse,
		RotationForce: s.knockback.BodyRotationForce,
		Point:         &struckPoint,
	})
	if !accepted || initiator.Body == nil || s.knockback.BodyImpulse == 0 {
		return
	}

	_, back := KnockbackImpulses(n, s.knockback.BodyImpulse)
	s.sched.Defer(initiator.ID, func() {
		if !initiator.IsActive() || initiator.Body == nil {
			return
		}
		initiator.Body.WakeUp()
		initiator.Body.ApplyLinearImpulse(back, initPoint, true)
		initiator.Recoil = s.knockback.RecoilTime
	})
}
