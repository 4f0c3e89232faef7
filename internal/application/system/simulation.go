package system

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/younwookim/arena/internal/application/schedule"
	"github.com/younwookim/arena/internal/domain/entity"
	"github.com/younwookim/arena/internal/infrastructure/anim"
	"github.com/younwookim/arena/internal/infrastructure/config"
	"github.com/younwookim/arena/internal/infrastructure/physics"
)

// Simulation owns the arena: physics world, actors, projectiles and the
// systems that drive them, stepped once per frame.
type Simulation struct {
	config *config.GameConfig
	stage  *config.StageConfig
	screen entity.ScreenSize
	rng    *rand.Rand
	logger *slog.Logger

	ids   entity.IDSource
	sched *schedule.Scheduler
	world *physics.World

	locomotion  *LocomotionSystem
	combat      *CombatSystem
	collision   *CollisionSystem
	projectiles *ProjectileSystem
	wander      *WanderSystem

	player    *entity.Actor
	enemies   []*entity.Actor
	actors    map[entity.ID]*entity.Actor
	order     []*entity.Actor
	animators map[entity.ID]*anim.Player

	tick uint64
}

// NewSimulation builds the arena described by cfg and stage
func NewSimulation(cfg *config.GameConfig, stage *config.StageConfig, rng *rand.Rand, logger *slog.Logger) (*Simulation, error) {
	if cfg == nil || cfg.Combat == nil || cfg.Entities == nil {
		return nil, errors.New("simulation: incomplete config")
	}
	if stage == nil {
		stage = &config.StageConfig{ID: "empty", Walls: config.WallsConfig{Border: true}}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Simulation{
		config: cfg,
		stage:  stage,
		screen: entity.ScreenSize{
			Width:  float64(cfg.Combat.Display.ScreenWidth),
			Height: float64(cfg.Combat.Display.ScreenHeight),
		},
		rng:       rng,
		logger:    logger,
		sched:     schedule.NewScheduler(),
		world:     physics.NewWorld(),
		actors:    make(map[entity.ID]*entity.Actor),
		animators: make(map[entity.ID]*anim.Player),
	}

	s.combat = NewCombatSystem(s.sched, nil, logger)
	s.projectiles = NewProjectileSystem(cfg.Entities.Projectiles, s.world, s.screen, s.sched, &s.ids, s.combat, s.Actor, logger)
	s.combat.SetSpawner(s.projectiles)
	s.collision = NewCollisionSystem(cfg.Combat, s.screen, s.sched, s.combat, rng, logger)
	s.wander = NewWanderSystem(s.sched, rng, logger)
	s.locomotion = NewLocomotionSystem(cfg.Combat.Locomotion, s.wander)

	n := LoadWalls(s.world, stage, s.screen, cfg.Combat.Physics.WallInset, cfg.Combat.Physics.WallRadius)
	logger.Debug("walls loaded", "stage", stage.ID, "count", n)

	if err := s.spawnActors(); err != nil {
		return nil, err
	}
	s.wireContacts()
	s.start()

	logger.Info("simulation ready", "stage", stage.ID, "enemies", len(s.enemies))
	return s, nil
}

func (s *Simulation) spawnActors() error {
	pc := s.config.Entities.Player
	moveRange := RectFromConfig(pc.MoveRange)
	s.player = s.newActor("player", entity.TagPlayer, pc, PlayerSpawn(s.stage, moveRange), 0, moveRange)

	for i, spawn := range s.stage.Enemies {
		ec, ok := s.config.Entities.Enemies[spawn.Type]
		if !ok {
			return fmt.Errorf("failed to spawn enemy %d: unknown type %q", i, spawn.Type)
		}
		moveRange := RectFromConfig(ec.MoveRange)
		if spawn.MoveRange != nil {
			moveRange = RectFromConfig(*spawn.MoveRange)
		}
		pos := cp.Vector{X: spawn.X, Y: spawn.Y}
		facing := spawn.Facing * math.Pi / 180
		s.enemies = append(s.enemies, s.newActor(spawn.Type, entity.TagEnemy, ec, pos, facing, moveRange))
	}
	return nil
}

func (s *Simulation) newActor(typeName string, tag entity.Tag, ac config.ActorConfig, pos cp.Vector, facing float64, moveRange entity.Rect) *entity.Actor {
	a := &entity.Actor{
		ID:               s.ids.Next(),
		Type:             typeName,
		Tag:              tag,
		Pos:              pos,
		State:            entity.StateIdle,
		Control:          entity.ParseControl(ac.Control),
		MoveRange:        moveRange,
		MoveSpeed:        ac.MoveSpeed,
		AttackInterval:   ac.AttackInterval,
		MoveInterval:     ac.MoveInterval,
		FireInterval:     ac.FireInterval,
		ContinuousFire:   ac.ContinuousFire,
		LockMoveOnAttack: ac.LockMoveOnAttack,
		Bounces:          ac.Bounces,
		Clips: entity.Clips{
			Idle:   ac.Animations.Idle,
			Attack: ac.Animations.Attack,
			Hit:    ac.Animations.Hit,
		},
		ProjectileType: ac.Projectile,
		Facing:         facing,
	}
	if ac.ShootOffset != nil {
		a.ShootOffset = &cp.Vector{X: ac.ShootOffset.X, Y: ac.ShootOffset.Y}
	}

	player := anim.NewPlayer(s.config.Entities.Clips)
	a.Animator = player
	s.animators[a.ID] = player

	a.Body = s.world.AddBody(a.ID, tag, bodySpec(ac.Body), pos)
	if a.Control == entity.ControlFree && ac.LaunchSpeed > 0 {
		a.Body.SetVelocity(cp.ForAngle(s.rng.Float64() * 2 * math.Pi).Mult(ac.LaunchSpeed))
	}

	s.actors[a.ID] = a
	s.order = append(s.order, a)
	return a
}

func bodySpec(b config.BodyConfig) physics.BodySpec {
	return physics.BodySpec{
		Width:          b.Width,
		Height:         b.Height,
		Mass:           b.Mass,
		LinearDamping:  b.LinearDamping,
		AngularDamping: b.AngularDamping,
		Elasticity:     b.Elasticity,
		Friction:       b.Friction,
		LockRotation:   b.LockRotation,
	}
}

func (s *Simulation) wireContacts() {
	wall := func(c entity.Contact) {
		s.collision.OnWallContact(s.Actor(c.SelfOwner), c)
	}
	s.world.OnContact(entity.TagEnemy, entity.TagWall, wall)
	s.world.OnContact(entity.TagPlayer, entity.TagWall, wall)
	s.world.OnContact(entity.TagPlayer, entity.TagEnemy, func(c entity.Contact) {
		s.collision.OnBodyContact(s.Actor(c.SelfOwner), s.Actor(c.OtherOwner), c)
	})
	s.world.OnContact(entity.TagProjectile, entity.TagEnemy, s.projectiles.OnContact)
	s.world.OnContact(entity.TagProjectile, entity.TagWall, s.projectiles.OnContact)
}

func (s *Simulation) start() {
	for _, a := range s.order {
		s.combat.PlayIdle(a)
		if a.Tag != entity.TagEnemy {
			continue
		}
		s.combat.StartAttackCadence(a)
		if a.Control == entity.ControlWander {
			s.wander.Start(a)
		}
	}
}

// Step advances the arena by dt seconds with the player's intent
func (s *Simulation) Step(intent entity.Intent, dt float64) {
	s.tick++

	for _, a := range s.order {
		if p, ok := s.animators[a.ID]; ok && a.IsActive() {
			p.Update(dt)
		}
	}

	s.sched.Advance(dt)
	s.handleAttack(intent)

	for _, a := range s.order {
		in := entity.Intent{}
		if a == s.player {
			in = intent
		}
		s.locomotion.Update(a, in, dt)
	}

	substeps := s.config.Combat.Physics.Substeps
	if substeps < 1 {
		substeps = 1
	}
	for i := 0; i < substeps; i++ {
		s.world.Step(dt / float64(substeps))
	}

	// Post-physics phase
	s.sched.Drain()

	s.projectiles.Update(dt)
}

func (s *Simulation) handleAttack(intent entity.Intent) {
	p := s.player
	if p == nil || !p.IsActive() {
		return
	}
	if p.ContinuousFire {
		if intent.AttackPressed {
			_ = s.combat.HoldAttack(p)
		}
		if intent.AttackReleased {
			s.combat.ReleaseAttack(p)
		}
		return
	}
	if intent.AttackPressed {
		_ = s.combat.RequestAttack(p)
	}
}

// Shutdown tears down every actor and projectile
func (s *Simulation) Shutdown() {
	for _, a := range s.order {
		s.combat.Teardown(a)
	}
	s.projectiles.Clear()
	s.logger.Info("simulation stopped", "ticks", s.tick, "pendingTasks", s.sched.Pending())
}

// Actor returns an actor by ID, nil if unknown
func (s *Simulation) Actor(id entity.ID) *entity.Actor {
	return s.actors[id]
}

// Player returns the player actor
func (s *Simulation) Player() *entity.Actor { return s.player }

// Enemies returns the enemy actors in spawn order
func (s *Simulation) Enemies() []*entity.Actor { return s.enemies }

// Projectiles returns the live projectiles
func (s *Simulation) Projectiles() []*entity.Projectile { return s.projectiles.Projectiles() }

// Screen returns the visible area size
func (s *Simulation) Screen() entity.ScreenSize { return s.screen }

// Walls returns every wall segment
func (s *Simulation) Walls() [][2]cp.Vector { return s.world.Walls() }

// Tick returns the number of steps taken
func (s *Simulation) Tick() uint64 { return s.tick }

// Combat exposes the combat system for event hooks
func (s *Simulation) Combat() *CombatSystem { return s.combat }

// Clip returns the clip an actor is playing
func (s *Simulation) Clip(id entity.ID) string {
	if p, ok := s.animators[id]; ok {
		return p.Current()
	}
	return ""
}
