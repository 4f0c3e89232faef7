package system

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/arena/internal/application/schedule"
	"github.com/younwookim/arena/internal/domain/entity"
	"github.com/younwookim/arena/internal/domain/vec"
	"github.com/younwookim/arena/internal/infrastructure/anim"
	"pgregory.net/rapid"
)

var testScreen = entity.ScreenSize{Width: 960, Height: 640}

func newBouncer(vel, pos cp.Vector) (*entity.Actor, *fakeBody) {
	body := &fakeBody{pos: pos, vel: vel}
	return &entity.Actor{
		ID:      3,
		Tag:     entity.TagEnemy,
		Body:    body,
		Control: entity.ControlFree,
		Bounces: true,
	}, body
}

func TestBounceVelocity(t *testing.T) {
	cfg := createTestCombatConfig().Bounce

	t.Run("below minimum speed does not bounce", func(t *testing.T) {
		vel := cp.Vector{X: -9}
		out, ok := BounceVelocity(vel, cp.Vector{X: 1}, cfg, testRNG())
		assert.False(t, ok)
		assert.Equal(t, vel, out)
	})

	t.Run("just above minimum speed is raised to the floor", func(t *testing.T) {
		out, ok := BounceVelocity(cp.Vector{X: -11}, cp.Vector{X: 1}, cfg, testRNG())
		require.True(t, ok)
		assert.GreaterOrEqual(t, vec.Length(out), cfg.Floor-1e-9)
		assert.Positive(t, out.X)
	})

	t.Run("fast bounce keeps its speed without jitter", func(t *testing.T) {
		noJitter := cfg
		noJitter.RandomFactor = 0
		out, ok := BounceVelocity(cp.Vector{X: 300, Y: 400}, cp.Vector{Y: -1}, noJitter, nil)
		require.True(t, ok)
		assert.InDelta(t, 0, out.X, 1e-9)
		assert.InDelta(t, -500, out.Y, 1e-9)
	})

	t.Run("zero normal does not bounce", func(t *testing.T) {
		_, ok := BounceVelocity(cp.Vector{X: 100}, cp.Vector{}, cfg, testRNG())
		assert.False(t, ok)
	})
}

func TestBounceVelocity_NeverBelowFloor(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := createTestCombatConfig().Bounce
		cfg.RandomFactor = rapid.Float64Range(0, 0.5).Draw(t, "randomFactor")
		speed := rapid.Float64Range(cfg.MinSpeed, 2000).Draw(t, "speed")
		velAngle := rapid.Float64Range(-math.Pi, math.Pi).Draw(t, "velAngle")
		normalAngle := rapid.Float64Range(-math.Pi, math.Pi).Draw(t, "normalAngle")
		seed := rapid.Int64().Draw(t, "seed")

		n := cp.ForAngle(normalAngle)
		out, ok := BounceVelocity(cp.ForAngle(velAngle).Mult(speed), n, cfg, rand.New(rand.NewSource(seed)))
		if !ok {
			t.Fatalf("speed %v should bounce", speed)
		}
		if l := vec.Length(out); l < cfg.Floor-1e-9 {
			t.Fatalf("bounce speed %v below floor %v", l, cfg.Floor)
		}
		if vec.Dot(out, n) <= 0 {
			t.Fatalf("bounce %v does not leave along normal %v", out, n)
		}
	})
}

func TestBounceNormal(t *testing.T) {
	tests := []struct {
		name    string
		contact cp.Vector
		pos     cp.Vector
		want    cp.Vector
		wantOK  bool
	}{
		{"contact normal is inverted", cp.Vector{X: 1}, cp.Vector{X: 470}, cp.Vector{X: -1}, true},
		{"nearest edge right", cp.Vector{}, cp.Vector{X: 400}, cp.Vector{X: -1}, true},
		{"nearest edge left", cp.Vector{}, cp.Vector{X: -470, Y: -10}, cp.Vector{X: 1}, true},
		{"nearest edge top", cp.Vector{}, cp.Vector{Y: 300}, cp.Vector{Y: -1}, true},
		{"nearest edge bottom", cp.Vector{}, cp.Vector{Y: -315}, cp.Vector{Y: 1}, true},
		{"inside dead zone", cp.Vector{}, cp.Vector{X: 2, Y: 3}, cp.Vector{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BounceNormal(tt.contact, tt.pos, 480, 320, 5)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}
}

func TestKnockbackImpulses_Symmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		angle := rapid.Float64Range(-math.Pi, math.Pi).Draw(t, "angle")
		scale := rapid.Float64Range(0.01, 100).Draw(t, "scale")
		impulse := rapid.Float64Range(0, 1000).Draw(t, "impulse")

		toStruck, toInitiator := KnockbackImpulses(cp.ForAngle(angle).Mult(scale), impulse)

		sum := toStruck.Add(toInitiator)
		if vec.Length(sum) > 1e-9 {
			t.Fatalf("impulses do not cancel: %v + %v", toStruck, toInitiator)
		}
		if math.Abs(vec.Length(toStruck)-impulse) > 1e-6 {
			t.Fatalf("struck impulse %v, want magnitude %v", toStruck, impulse)
		}
	})
}

func TestCollisionSystem_OnWallContact(t *testing.T) {
	newSystem := func(sched *schedule.Scheduler) *CollisionSystem {
		return NewCollisionSystem(createTestCombatConfig(), testScreen, sched, nil, testRNG(), nil)
	}

	t.Run("bounce waits for the post-physics phase", func(t *testing.T) {
		sched := schedule.NewScheduler()
		cs := newSystem(sched)
		a, body := newBouncer(cp.Vector{X: -200}, cp.Vector{X: -470})

		cs.OnWallContact(a, entity.Contact{Normal: cp.Vector{X: -1}})
		assert.Equal(t, cp.Vector{X: -200}, body.vel)
		assert.Empty(t, body.angular)

		require.Equal(t, 1, sched.Drain())
		assert.Positive(t, body.vel.X)
		assert.GreaterOrEqual(t, vec.Length(body.vel), 50.0)
		require.Len(t, body.angular, 1)
		assert.LessOrEqual(t, math.Abs(body.angular[0]), 400.0)
	})

	t.Run("bounce uses the impact velocity, not the solved one", func(t *testing.T) {
		sched := schedule.NewScheduler()
		cs := newSystem(sched)
		a, body := newBouncer(cp.Vector{X: -15}, cp.Vector{X: -470})

		cs.OnWallContact(a, entity.Contact{Normal: cp.Vector{X: -1}})
		// An inelastic wall halves the speed before the post-physics phase
		body.vel = cp.Vector{X: 7.5}

		require.Equal(t, 1, sched.Drain())
		assert.Positive(t, body.vel.X)
		assert.GreaterOrEqual(t, vec.Length(body.vel), 50.0-1e-9)
	})

	t.Run("low speed contact is suppressed", func(t *testing.T) {
		sched := schedule.NewScheduler()
		cs := newSystem(sched)
		a, body := newBouncer(cp.Vector{X: -9}, cp.Vector{X: -470})

		cs.OnWallContact(a, entity.Contact{Normal: cp.Vector{X: -1}})
		assert.Zero(t, sched.PendingDeferred())
		sched.Drain()

		assert.Equal(t, cp.Vector{X: -9}, body.vel)
		assert.Empty(t, body.angular)
	})

	t.Run("slow bounce is raised to the floor", func(t *testing.T) {
		sched := schedule.NewScheduler()
		cs := newSystem(sched)
		a, body := newBouncer(cp.Vector{Y: 11}, cp.Vector{Y: 310})

		cs.OnWallContact(a, entity.Contact{Normal: cp.Vector{Y: 1}})
		sched.Drain()

		assert.GreaterOrEqual(t, vec.Length(body.vel), 50.0-1e-9)
		assert.Negative(t, body.vel.Y)
	})

	t.Run("missing normal falls back to the nearest edge", func(t *testing.T) {
		sched := schedule.NewScheduler()
		cs := newSystem(sched)
		a, body := newBouncer(cp.Vector{Y: 120}, cp.Vector{X: 10, Y: 315})

		cs.OnWallContact(a, entity.Contact{})
		sched.Drain()

		assert.Negative(t, body.vel.Y)
	})

	t.Run("dead zone skips the bounce", func(t *testing.T) {
		sched := schedule.NewScheduler()
		cs := newSystem(sched)
		a, body := newBouncer(cp.Vector{X: 120}, cp.Vector{X: 1, Y: 1})

		cs.OnWallContact(a, entity.Contact{})
		sched.Drain()

		assert.Equal(t, cp.Vector{X: 120}, body.vel)
	})

	t.Run("non-bouncing actors are ignored", func(t *testing.T) {
		sched := schedule.NewScheduler()
		cs := newSystem(sched)
		a, _ := newBouncer(cp.Vector{X: -200}, cp.Vector{X: -470})
		a.Bounces = false

		cs.OnWallContact(a, entity.Contact{Normal: cp.Vector{X: -1}})
		assert.Zero(t, sched.PendingDeferred())
	})
}

func TestCollisionSystem_OnBodyContact(t *testing.T) {
	setup := func() (*schedule.Scheduler, *CollisionSystem, *CombatSystem) {
		sched := schedule.NewScheduler()
		combat := NewCombatSystem(sched, nil, nil)
		cs := NewCollisionSystem(createTestCombatConfig(), testScreen, sched, combat, testRNG(), nil)
		return sched, cs, combat
	}
	newPair := func() (*entity.Actor, *fakeBody, *entity.Actor, *fakeBody) {
		pb := &fakeBody{}
		player := &entity.Actor{ID: 1, Tag: entity.TagPlayer, Body: pb,
			Animator: anim.NewPlayer(testClipDurations()), Clips: testClips}
		eb := &fakeBody{pos: cp.Vector{X: 40}}
		enemy := &entity.Actor{ID: 2, Tag: entity.TagEnemy, Body: eb,
			Animator: anim.NewPlayer(testClipDurations()), Clips: testClips}
		return player, pb, enemy, eb
	}

	t.Run("equal and opposite impulses after drain", func(t *testing.T) {
		sched, cs, _ := setup()
		player, pb, enemy, eb := newPair()

		cs.OnBodyContact(player, enemy, entity.Contact{
			Normal:     cp.Vector{X: 1},
			Point:      cp.Vector{X: 20},
			OtherPoint: cp.Vector{X: 21},
			HasPoint:   true,
		})

		assert.Equal(t, entity.StateHit, enemy.State)
		assert.Empty(t, pb.linear)
		assert.Empty(t, eb.linear)

		require.Equal(t, 2, sched.Drain())
		require.Len(t, eb.linear, 1)
		require.Len(t, pb.linear, 1)
		assert.Equal(t, cp.Vector{X: 150}, eb.linear[0].impulse)
		assert.Equal(t, cp.Vector{X: 21}, eb.linear[0].point)
		assert.Equal(t, cp.Vector{X: -150}, pb.linear[0].impulse)
		assert.Equal(t, cp.Vector{X: 20}, pb.linear[0].point)
		assert.True(t, vec.IsZero(eb.linear[0].impulse.Add(pb.linear[0].impulse)))
		assert.Equal(t, 0.2, player.Recoil)
		assert.Zero(t, enemy.Recoil)
	})

	t.Run("missing normal uses the position delta", func(t *testing.T) {
		sched, cs, _ := setup()
		player, pb, enemy, eb := newPair()
		eb.pos = cp.Vector{Y: -25}

		cs.OnBodyContact(player, enemy, entity.Contact{})
		sched.Drain()

		require.Len(t, eb.linear, 1)
		assert.InDelta(t, -150, eb.linear[0].impulse.Y, 1e-9)
		assert.Equal(t, eb.pos, eb.linear[0].point)
		require.Len(t, pb.linear, 1)
		assert.InDelta(t, 150, pb.linear[0].impulse.Y, 1e-9)
	})

	t.Run("struck actor already hit gets nothing", func(t *testing.T) {
		sched, cs, _ := setup()
		player, pb, enemy, eb := newPair()
		enemy.State = entity.StateHit

		cs.OnBodyContact(player, enemy, entity.Contact{Normal: cp.Vector{X: 1}})

		assert.Zero(t, sched.Drain())
		assert.Empty(t, pb.linear)
		assert.Empty(t, eb.linear)
	})

	t.Run("rejected hit skips the recoil", func(t *testing.T) {
		sched := schedule.NewScheduler()
		recorder := &hitRecorder{accept: false}
		cs := NewCollisionSystem(createTestCombatConfig(), testScreen, sched, recorder, testRNG(), nil)
		player, pb, enemy, _ := newPair()

		cs.OnBodyContact(player, enemy, entity.Contact{Normal: cp.Vector{X: 1}})

		require.Len(t, recorder.hits, 1)
		assert.Equal(t, cp.Vector{X: 1}, recorder.hits[0].Knockback)
		assert.Zero(t, sched.Drain())
		assert.Empty(t, pb.linear)
		assert.Zero(t, player.Recoil)
	})
}
