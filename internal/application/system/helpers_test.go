package system

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/younwookim/arena/internal/domain/entity"
	"github.com/younwookim/arena/internal/infrastructure/config"
)

// testRNG returns a seeded RNG for deterministic tests
func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

type impulseCall struct {
	impulse cp.Vector
	point   cp.Vector
}

// fakeBody records impulses and treats the body as unit mass
type fakeBody struct {
	pos     cp.Vector
	vel     cp.Vector
	angVel  float64
	linear  []impulseCall
	angular []float64
	wakes   int
}

func (b *fakeBody) Position() cp.Vector      { return b.pos }
func (b *fakeBody) SetPosition(p cp.Vector)  { b.pos = p }
func (b *fakeBody) Velocity() cp.Vector      { return b.vel }
func (b *fakeBody) SetVelocity(v cp.Vector)  { b.vel = v }
func (b *fakeBody) AngularVelocity() float64 { return b.angVel }
func (b *fakeBody) WakeUp()                  { b.wakes++ }
func (b *fakeBody) Kind() entity.BodyKind    { return entity.BodyDynamic }

func (b *fakeBody) ApplyLinearImpulse(impulse, worldPoint cp.Vector, wake bool) {
	if wake {
		b.wakes++
	}
	b.linear = append(b.linear, impulseCall{impulse: impulse, point: worldPoint})
	b.vel = b.vel.Add(impulse)
}

func (b *fakeBody) ApplyAngularImpulse(magnitude float64, wake bool) {
	if wake {
		b.wakes++
	}
	b.angular = append(b.angular, magnitude)
	b.angVel += magnitude
}

// hitRecorder is a HitReceiver that records hits
type hitRecorder struct {
	hits   []entity.Hit
	actors []*entity.Actor
	accept bool
}

func (r *hitRecorder) ReceiveHit(a *entity.Actor, hit entity.Hit) (bool, error) {
	r.actors = append(r.actors, a)
	r.hits = append(r.hits, hit)
	return r.accept, nil
}

// pickCounter is a TargetPicker that counts picks
type pickCounter struct {
	picks int
	next  cp.Vector
}

func (p *pickCounter) Pick(a *entity.Actor) {
	p.picks++
	a.Target = p.next
	a.HasTarget = true
}

func createTestCombatConfig() *config.CombatConfig {
	cfg := &config.CombatConfig{
		Display: config.DisplayConfig{ScreenWidth: 960, ScreenHeight: 640},
		Bounce: config.BounceConfig{
			MinSpeed:      10,
			Strength:      1,
			Floor:         50,
			RandomFactor:  0.15,
			AngularJitter: 400,
			EdgeDeadZone:  5,
		},
		Knockback: config.KnockbackConfig{
			BodyImpulse:       150,
			BodyRotationForce: 0,
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func createTestGameConfig() *config.GameConfig {
	entities := &config.EntitiesConfig{
		Player: config.ActorConfig{
			Control:        "input",
			MoveSpeed:      200,
			MoveRange:      config.RectConfig{X: -400, Y: -280, Width: 800, Height: 560},
			ContinuousFire: true,
			FireInterval:   0.2,
			Projectile:     "playerSkill",
			ShootOffset:    &config.PointConfig{X: 30},
			Animations:     config.AnimationsConfig{Idle: "player_idle", Attack: "player_attack", Hit: "player_hit"},
			Body:           config.BodyConfig{Width: 40, Height: 40, Mass: 1, LockRotation: true},
		},
		Enemies: map[string]config.ActorConfig{
			"dummy": {
				Control:    "free",
				Animations: config.AnimationsConfig{Idle: "enemy_idle", Attack: "enemy_attack", Hit: "enemy_hit"},
				Body:       config.BodyConfig{Width: 40, Height: 40, Mass: 1, LockRotation: true, LinearDamping: 2},
			},
			"bumper": {
				Control:    "free",
				Bounces:    true,
				Animations: config.AnimationsConfig{Idle: "enemy_idle", Attack: "enemy_attack", Hit: "enemy_hit"},
				Body:       config.BodyConfig{Width: 40, Height: 40, Mass: 1, LockRotation: true, Elasticity: 1},
			},
			"slime": {
				Control:        "wander",
				MoveSpeed:      50,
				MoveRange:      config.RectConfig{X: 100, Y: 100, Width: 170, Height: 170},
				AttackInterval: 3,
				MoveInterval:   2,
				Animations:     config.AnimationsConfig{Idle: "enemy_idle", Attack: "enemy_attack", Hit: "enemy_hit"},
				Body:           config.BodyConfig{Width: 40, Height: 40, Mass: 1, LockRotation: true},
			},
		},
		Projectiles: map[string]config.ProjectileConfig{
			"playerSkill": {
				Speed:          800,
				Lifetime:       3,
				KnockbackForce: 120,
				RotationForce:  0,
				Body:           config.BodyConfig{Width: 20, Height: 10, Mass: 0.1},
			},
		},
		Clips: map[string]float64{
			"player_idle":   0,
			"player_attack": 0.25,
			"player_hit":    0.25,
			"enemy_idle":    0,
			"enemy_attack":  0.5,
			"enemy_hit":     0.25,
		},
	}
	entities.ApplyDefaults()

	return &config.GameConfig{
		Combat:   createTestCombatConfig(),
		Entities: entities,
	}
}
