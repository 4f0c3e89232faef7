// Package arena provides the combat arena scene.
package arena

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/younwookim/arena/internal/application/replay"
	"github.com/younwookim/arena/internal/application/scene"
	"github.com/younwookim/arena/internal/application/state"
	"github.com/younwookim/arena/internal/application/system"
	"github.com/younwookim/arena/internal/domain/entity"
	"github.com/younwookim/arena/internal/infrastructure/config"
	"github.com/younwookim/arena/internal/infrastructure/physics"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorWall       = color.RGBA{80, 80, 100, 255}
	colorPlayer     = color.RGBA{100, 200, 100, 255}
	colorEnemy      = color.RGBA{200, 100, 100, 255}
	colorAttacking  = color.RGBA{255, 200, 100, 255}
	colorHit        = color.RGBA{255, 255, 255, 255}
	colorProjectile = color.RGBA{255, 215, 0, 255}
	colorTarget     = color.RGBA{100, 100, 200, 128}
)

const (
	shakeIntensity = 4.0
	shakeDecay     = 0.85
)

// Options configures a new arena scene
type Options struct {
	Config     *config.GameConfig
	Stage      *config.StageConfig
	Seed       int64
	RecordPath string           // non-empty records input to this file
	Replay     *replay.Replayer // non-nil plays back recorded input
	Logger     *slog.Logger
	Debug      bool
}

// Arena is the combat arena scene
type Arena struct {
	sim      *system.Simulation
	input    *system.InputSystem
	state    state.GameState
	logger   *slog.Logger
	screenW  int
	screenH  int
	dt       float64
	debug    bool
	stageID  string
	seed     int64
	replayer *replay.Replayer

	// Feedback
	shake float64

	// Input recording
	recorder   *replay.Recorder
	recordPath string
}

var _ scene.Scene = (*Arena)(nil)

// New creates a new arena scene
func New(opts Options) (*Arena, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	seed := opts.Seed
	if opts.Replay != nil {
		seed = opts.Replay.Seed()
	}

	sim, err := system.NewSimulation(opts.Config, opts.Stage, rand.New(rand.NewSource(seed)), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create arena: %w", err)
	}

	display := opts.Config.Combat.Display
	a := &Arena{
		sim:        sim,
		input:      system.NewInputSystem(),
		state:      state.StatePlaying,
		logger:     logger,
		screenW:    display.ScreenWidth,
		screenH:    display.ScreenHeight,
		dt:         1.0 / float64(display.Framerate),
		debug:      opts.Debug,
		seed:       seed,
		replayer:   opts.Replay,
		recordPath: opts.RecordPath,
	}
	if opts.Stage != nil {
		a.stageID = opts.Stage.ID
	}

	if opts.RecordPath != "" && opts.Replay == nil {
		a.recorder = replay.NewRecorder(seed, a.stageID)
		logger.Info("recording enabled", "file", opts.RecordPath, "seed", seed)
	}

	sim.Combat().OnHit = func(*entity.Actor) {
		a.shake = shakeIntensity
	}

	return a, nil
}

// Update advances the arena by one frame (implements scene.Scene)
func (a *Arena) Update(_ float64) (scene.Scene, error) {
	a.update(a.input.GetInput())
	return nil, nil // nil = stay on this scene
}

// update runs one frame against the live key state. Pause always comes
// from the keyboard; movement and attacks come from the replay when one
// is playing.
func (a *Arena) update(live system.KeyState) {
	if live.Pause {
		a.state = a.state.TogglePause()
	}
	if !a.state.Simulating() {
		return
	}

	keys := live
	if a.replayer != nil {
		var ok bool
		keys, ok = a.replayer.GetInput()
		if !ok {
			a.state = state.StateReplayFinished
			a.logger.Info("replay finished", "frames", a.replayer.TotalFrames(), "tick", a.sim.Tick())
			return
		}
	}

	// F5: Save recording manually
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		a.saveRecording()
	}

	a.step(keys)
}

// step records and applies one frame of input
func (a *Arena) step(keys system.KeyState) {
	if a.recorder != nil {
		a.recorder.RecordFrame(keys)
	}
	a.sim.Step(system.IntentFromKeys(keys), a.dt)

	a.shake *= shakeDecay
	if a.shake < 0.1 {
		a.shake = 0
	}
}

// saveRecording saves the current recording to file
func (a *Arena) saveRecording() {
	if a.recorder == nil {
		return
	}

	filename := a.recordPath
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := a.recorder.Save(filename); err != nil {
		a.logger.Error("failed to save recording", "file", filename, "err", err)
		return
	}
	a.logger.Info("recording saved", "file", filename, "frames", a.recorder.FrameCount())
}

// OnEnter is called when entering this scene
func (a *Arena) OnEnter() {
	a.logger.Info("arena entered", "stage", a.stageID, "seed", a.seed, "replay", a.replayer != nil)
}

// OnExit saves any recording and tears the arena down
func (a *Arena) OnExit() {
	if a.recorder != nil {
		a.recorder.Stop()
		a.saveRecording()
	}
	a.sim.Shutdown()
}

// State returns the scene state
func (a *Arena) State() state.GameState { return a.state }

// Simulation returns the running simulation
func (a *Arena) Simulation() *system.Simulation { return a.sim }

// Recorder returns the input recorder, nil when not recording
func (a *Arena) Recorder() *replay.Recorder { return a.recorder }

// Shake returns the current screen shake intensity
func (a *Arena) Shake() float64 { return a.shake }

// Draw renders the arena (implements scene.Scene)
func (a *Arena) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	// Shake follows the tick so rendering never draws from the simulation RNG
	var ox, oy float64
	if a.shake > 0 {
		t := float64(a.sim.Tick())
		ox = math.Sin(t*1.7) * a.shake
		oy = math.Cos(t*2.3) * a.shake
	}

	for _, w := range a.sim.Walls() {
		x0, y0 := a.toScreen(w[0], ox, oy)
		x1, y1 := a.toScreen(w[1], ox, oy)
		vector.StrokeLine(screen, x0, y0, x1, y1, 4, colorWall, false)
	}

	for _, e := range a.sim.Enemies() {
		if a.debug && e.HasTarget {
			tx, ty := a.toScreen(e.Target, ox, oy)
			vector.StrokeRect(screen, tx-3, ty-3, 6, 6, 1, colorTarget, false)
		}
		a.drawActor(screen, e, colorEnemy, ox, oy)
	}
	a.drawActor(screen, a.sim.Player(), colorPlayer, ox, oy)

	for _, p := range a.sim.Projectiles() {
		x, y := a.toScreen(p.Position(), ox, oy)
		w, h := float32(p.Width), float32(p.Height)
		vector.DrawFilledRect(screen, x-w/2, y-h/2, w, h, colorProjectile, false)
	}

	a.drawUI(screen)
}

// toScreen maps origin-centred y-up world coordinates to screen pixels
func (a *Arena) toScreen(p cp.Vector, ox, oy float64) (float32, float32) {
	return float32(p.X + float64(a.screenW)/2 + ox), float32(float64(a.screenH)/2 - p.Y + oy)
}

func (a *Arena) drawActor(screen *ebiten.Image, act *entity.Actor, base color.Color, ox, oy float64) {
	if act == nil || !act.IsActive() {
		return
	}

	clr := base
	switch act.State {
	case entity.StateAttacking:
		clr = colorAttacking
	case entity.StateHit:
		clr = colorHit
	}

	w, h, angle := 32.0, 32.0, 0.0
	if b, ok := act.Body.(*physics.Body); ok {
		spec := b.Spec()
		w, h, angle = spec.Width, spec.Height, b.Angle()
	}

	cx, cy := a.toScreen(act.Position(), ox, oy)
	if math.Abs(angle) < 1e-3 {
		vector.DrawFilledRect(screen, cx-float32(w/2), cy-float32(h/2), float32(w), float32(h), clr, false)
		return
	}

	// Rotated outline
	rot := cp.ForAngle(angle)
	corners := [4]cp.Vector{{X: -w / 2, Y: -h / 2}, {X: w / 2, Y: -h / 2}, {X: w / 2, Y: h / 2}, {X: -w / 2, Y: h / 2}}
	for i := range corners {
		c0 := act.Position().Add(corners[i].Rotate(rot))
		c1 := act.Position().Add(corners[(i+1)%4].Rotate(rot))
		x0, y0 := a.toScreen(c0, ox, oy)
		x1, y1 := a.toScreen(c1, ox, oy)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, clr, false)
	}
}

func (a *Arena) drawUI(screen *ebiten.Image) {
	player := a.sim.Player()
	text := fmt.Sprintf("Tick: %d  Player: %s  Enemies: %d  Projectiles: %d",
		a.sim.Tick(), player.State, len(a.sim.Enemies()), len(a.sim.Projectiles()))
	if a.replayer != nil {
		text += fmt.Sprintf("\nReplay: %d/%d", a.replayer.CurrentFrame(), a.replayer.TotalFrames())
	} else if a.recorder != nil {
		text += fmt.Sprintf("\nREC %d (F5 to save)", a.recorder.FrameCount())
	}
	if a.debug {
		for _, e := range a.sim.Enemies() {
			pos := e.Position()
			text += fmt.Sprintf("\n#%d %s %s (%.0f, %.0f) clip=%s", e.ID, e.Type, e.State, pos.X, pos.Y, a.sim.Clip(e.ID))
		}
	}
	ebitenutil.DebugPrint(screen, text)

	switch a.state {
	case state.StatePaused:
		ebitenutil.DebugPrintAt(screen, "PAUSED - ESC to resume", a.screenW/2-70, a.screenH/2-20)
	case state.StateReplayFinished:
		ebitenutil.DebugPrintAt(screen, "REPLAY FINISHED", a.screenW/2-50, a.screenH/2-20)
	}
}
