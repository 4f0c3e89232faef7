package replay

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/arena/internal/application/system"
	"github.com/younwookim/arena/internal/infrastructure/config"
)

// createTestReplayData creates replay data where the player walks right and fires once
func createTestReplayData(frames int, seed int64) ReplayData {
	data := ReplayData{
		Version: Version,
		Seed:    seed,
		Stage:   "test",
		Frames:  make([]FrameInput, frames),
	}
	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameInput{F: i, R: i < frames/2, U: i%3 == 0}
	}
	if frames > 10 {
		data.Frames[5].A, data.Frames[5].AP = true, true
		data.Frames[6].AR = true
	}
	return data
}

func createTestGameConfig() *config.GameConfig {
	combat := &config.CombatConfig{
		Bounce:    config.BounceConfig{RandomFactor: 0.15, AngularJitter: 400, EdgeDeadZone: 5},
		Knockback: config.KnockbackConfig{BodyImpulse: 150},
	}
	combat.ApplyDefaults()

	entities := &config.EntitiesConfig{
		Player: config.ActorConfig{
			Control:     "input",
			MoveSpeed:   200,
			MoveRange:   config.RectConfig{X: -400, Y: -280, Width: 800, Height: 560},
			Projectile:  "skill",
			ShootOffset: &config.PointConfig{X: 30},
			Animations:  config.AnimationsConfig{Idle: "idle", Attack: "attack", Hit: "hit"},
			Body:        config.BodyConfig{Width: 40, Height: 40, Mass: 1, LockRotation: true},
		},
		Enemies: map[string]config.ActorConfig{
			"slime": {
				Control:        "wander",
				MoveSpeed:      60,
				MoveRange:      config.RectConfig{X: 100, Y: -200, Width: 250, Height: 150},
				AttackInterval: 2,
				MoveInterval:   1,
				Animations:     config.AnimationsConfig{Idle: "idle", Attack: "attack", Hit: "hit"},
				Body:           config.BodyConfig{Width: 40, Height: 40, Mass: 1, LockRotation: true},
			},
		},
		Projectiles: map[string]config.ProjectileConfig{
			"skill": {Speed: 600, Lifetime: 2, KnockbackForce: 100, Body: config.BodyConfig{Width: 16, Height: 8, Mass: 0.1}},
		},
		Clips: map[string]float64{"idle": 0, "attack": 0.3, "hit": 0.2},
	}
	entities.ApplyDefaults()

	return &config.GameConfig{Combat: combat, Entities: entities}
}

func TestFrameInput_JSONKeys(t *testing.T) {
	raw, err := json.Marshal(FrameInput{F: 3, L: true, AP: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"f":3,"l":true,"ap":true}`, string(raw))
}

func TestReplayer_GetInput(t *testing.T) {
	data := ReplayData{
		Version: Version,
		Seed:    42,
		Stage:   "test",
		Frames: []FrameInput{
			{F: 0, L: true},
			{F: 1, R: true, U: true, A: true, AP: true},
			{F: 2, D: true, AR: true},
		},
	}

	replayer := NewReplayer(data)
	assert.Equal(t, int64(42), replayer.Seed())
	assert.Equal(t, "test", replayer.Stage())
	assert.Equal(t, 3, replayer.TotalFrames())

	input, ok := replayer.GetInput()
	require.True(t, ok)
	assert.True(t, input.Left)
	assert.False(t, input.Right)

	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.True(t, input.Right)
	assert.True(t, input.Up)
	assert.True(t, input.Attack)
	assert.True(t, input.AttackPressed)

	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.True(t, input.Down)
	assert.True(t, input.AttackReleased)
	assert.Equal(t, 3, replayer.CurrentFrame())
	assert.True(t, replayer.Done())

	_, ok = replayer.GetInput()
	assert.False(t, ok)

	replayer.Reset()
	assert.Zero(t, replayer.CurrentFrame())
	assert.False(t, replayer.Done())
}

func TestRecorderAndReplayer(t *testing.T) {
	recorder := NewRecorder(99, "arena")
	inputs := []system.KeyState{
		{Left: true},
		{Right: true, Attack: true, AttackPressed: true},
		{Up: true, AttackReleased: true},
		{},
	}
	for _, in := range inputs {
		recorder.RecordFrame(in)
	}
	require.Equal(t, 4, recorder.FrameCount())

	var buf bytes.Buffer
	require.NoError(t, recorder.Encode(&buf))

	data, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(99), data.Seed)
	assert.Equal(t, "arena", data.Stage)
	assert.Equal(t, Version, data.Version)

	replayer := NewReplayer(*data)
	for i, want := range inputs {
		got, ok := replayer.GetInput()
		require.True(t, ok)
		assert.Equal(t, want, got, "frame %d", i)
	}
}

func TestRecorder_Stop(t *testing.T) {
	recorder := NewRecorder(1, "arena")
	assert.True(t, recorder.IsRecording())

	recorder.RecordFrame(system.KeyState{Left: true})
	recorder.Stop()
	recorder.RecordFrame(system.KeyState{Right: true})

	assert.False(t, recorder.IsRecording())
	assert.Equal(t, 1, recorder.FrameCount())
	assert.Equal(t, 0, recorder.Data().Frames[0].F)
}

func TestRecorder_SaveAndLoad(t *testing.T) {
	t.Run("empty recording is not saved", func(t *testing.T) {
		err := NewRecorder(1, "arena").Save(filepath.Join(t.TempDir(), "empty.json"))
		assert.Error(t, err)
	})

	t.Run("round trip through a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "replay.json")
		recorder := NewRecorder(7, "arena")
		recorder.RecordFrame(system.KeyState{Down: true})
		require.NoError(t, recorder.Save(path))

		data, err := LoadReplay(path)
		require.NoError(t, err)
		require.Len(t, data.Frames, 1)
		assert.True(t, data.Frames[0].D)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadReplay(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("corrupt data", func(t *testing.T) {
		_, err := Decode(strings.NewReader("{frames"))
		assert.Error(t, err)
	})
}

func TestGenerateFilename(t *testing.T) {
	name := GenerateFilename()
	assert.True(t, strings.HasPrefix(name, "replay_"))
	assert.True(t, strings.HasSuffix(name, ".json"))
}

func TestRun_Deterministic(t *testing.T) {
	stage := &config.StageConfig{
		ID:      "test",
		Enemies: []config.EnemySpawnConfig{{Type: "slime", X: 200, Y: -120}},
		Walls:   config.WallsConfig{Border: true},
	}
	data := createTestReplayData(240, 12345)

	play := func() Summary {
		sim, err := system.NewSimulation(createTestGameConfig(), stage,
			rand.New(rand.NewSource(data.Seed)), slog.New(slog.DiscardHandler))
		require.NoError(t, err)
		return Run(sim, NewReplayer(data), 1.0/60)
	}

	first := play()
	second := play()

	assert.Equal(t, 240, first.Frames)
	assert.Positive(t, first.Attacks)
	assert.Greater(t, first.Player.X, 0.0)
	require.Len(t, first.Enemies, 1)
	assert.Equal(t, first, second)
}
