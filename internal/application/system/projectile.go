package system

import (
	"errors"
	"log/slog"

	"github.com/younwookim/arena/internal/application/schedule"
	"github.com/younwookim/arena/internal/domain/entity"
	"github.com/younwookim/arena/internal/domain/vec"
	"github.com/younwookim/arena/internal/infrastructure/config"
	"github.com/younwookim/arena/internal/infrastructure/physics"
)

// ActorLookup resolves an actor by ID, nil if unknown
type ActorLookup func(id entity.ID) *entity.Actor

// ProjectileSystem spawns projectiles and runs their lifecycle
type ProjectileSystem struct {
	templates map[string]config.ProjectileConfig
	world     *physics.World // nil runs without physics bodies
	screen    entity.Screen
	sched     *schedule.Scheduler
	ids       *entity.IDSource
	hits      HitReceiver
	actors    ActorLookup
	logger    *slog.Logger

	projectiles []*entity.Projectile
	byID        map[entity.ID]*entity.Projectile
	bodies      map[entity.ID]*physics.Body
}

var _ entity.Spawner = (*ProjectileSystem)(nil)

// NewProjectileSystem creates a new projectile system
func NewProjectileSystem(
	templates map[string]config.ProjectileConfig,
	world *physics.World,
	screen entity.Screen,
	sched *schedule.Scheduler,
	ids *entity.IDSource,
	hits HitReceiver,
	actors ActorLookup,
	logger *slog.Logger,
) *ProjectileSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectileSystem{
		templates:   templates,
		world:       world,
		screen:      screen,
		sched:       sched,
		ids:         ids,
		hits:        hits,
		actors:      actors,
		logger:      logger,
		projectiles: make([]*entity.Projectile, 0, 32),
		byID:        make(map[entity.ID]*entity.Projectile),
		bodies:      make(map[entity.ID]*physics.Body),
	}
}

// Spawn creates a projectile from the owner's template at its shoot point,
// heading along the owner's facing.
func (s *ProjectileSystem) Spawn(owner *entity.Actor) (*entity.Projectile, error) {
	if owner == nil {
		return nil, errors.New("spawn: nil owner")
	}
	tpl, ok := s.templates[owner.ProjectileType]
	if !ok {
		return nil, entity.Missing(owner.ID, "projectile template "+owner.ProjectileType)
	}
	pos, ok := owner.ShootPoint()
	if !ok {
		return nil, entity.Missing(owner.ID, "shoot point")
	}

	p := entity.NewProjectile(s.ids.Next(), owner.ID, pos, owner.Facing, entity.ProjectileSpec{
		Speed:          tpl.Speed,
		Lifetime:       tpl.Lifetime,
		KnockbackForce: tpl.KnockbackForce,
		RotationForce:  tpl.RotationForce,
		Width:          tpl.Body.Width,
		Height:         tpl.Body.Height,
	})
	p.Type = owner.ProjectileType

	if s.world != nil {
		body := s.world.AddBody(p.ID, entity.TagProjectile, physics.BodySpec{
			Width:        tpl.Body.Width,
			Height:       tpl.Body.Height,
			Mass:         tpl.Body.Mass,
			LockRotation: true,
			Sensor:       true,
		}, pos)
		p.Body = body
		s.bodies[p.ID] = body
	}

	s.projectiles = append(s.projectiles, p)
	s.byID[p.ID] = p
	return p, nil
}

// Update ages, moves and culls every live projectile
func (s *ProjectileSystem) Update(dt float64) {
	w, h := s.screen.Size()
	for _, p := range s.projectiles {
		if p.Destroying {
			continue
		}
		if p.Tick(dt) {
			s.RequestDestroy(p)
			continue
		}
		p.Translate(dt)
		if p.OutOfScreen(w, h) {
			s.RequestDestroy(p)
		}
	}
}

// OnContact handles a projectile touching an enemy or a wall.
// Enemies are knocked back along the projectile-to-enemy vector.
func (s *ProjectileSystem) OnContact(c entity.Contact) {
	p := s.byID[c.SelfOwner]
	if p == nil || p.Destroying || c.OtherOwner == p.Owner {
		return
	}

	switch c.OtherTag {
	case entity.TagEnemy:
		if target := s.lookup(c.OtherOwner); target != nil && s.hits != nil {
			dir := vec.Normalize(target.Position().Sub(p.Position()))
			hit := entity.Hit{
				Knockback:     dir,
				Impulse:       p.KnockbackForce,
				RotationForce: p.RotationForce,
			}
			if c.HasPoint {
				point := c.OtherPoint
				hit.Point = &point
			}
			_, _ = s.hits.ReceiveHit(target, hit)
		}
		s.RequestDestroy(p)
	case entity.TagWall:
		s.RequestDestroy(p)
	}
}

func (s *ProjectileSystem) lookup(id entity.ID) *entity.Actor {
	if s.actors == nil {
		return nil
	}
	return s.actors(id)
}

// RequestDestroy marks p and removes it in the next post-physics phase.
// Repeated requests are ignored.
func (s *ProjectileSystem) RequestDestroy(p *entity.Projectile) {
	if p == nil || p.Destroying {
		return
	}
	p.Destroying = true
	s.sched.Defer(p.ID, func() { s.destroy(p) })
}

func (s *ProjectileSystem) destroy(p *entity.Projectile) {
	s.sched.CancelOwner(p.ID)
	if body, ok := s.bodies[p.ID]; ok {
		s.world.Remove(body)
		delete(s.bodies, p.ID)
	}
	delete(s.byID, p.ID)
	for i, q := range s.projectiles {
		if q == p {
			s.projectiles = append(s.projectiles[:i], s.projectiles[i+1:]...)
			break
		}
	}
	s.logger.Debug("projectile destroyed", "projectile", p.ID, "age", p.Age)
}

// Clear destroys every projectile immediately. Not for use inside a physics step.
func (s *ProjectileSystem) Clear() {
	for len(s.projectiles) > 0 {
		p := s.projectiles[len(s.projectiles)-1]
		p.Destroying = true
		s.destroy(p)
	}
}

// Projectiles returns the live projectiles
func (s *ProjectileSystem) Projectiles() []*entity.Projectile {
	return s.projectiles
}

// Get returns a live projectile by ID
func (s *ProjectileSystem) Get(id entity.ID) *entity.Projectile {
	return s.byID[id]
}
