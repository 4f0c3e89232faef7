package main

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/arena/internal/application/game"
	"github.com/younwookim/arena/internal/application/replay"
	"github.com/younwookim/arena/internal/application/scene/arena"
	"github.com/younwookim/arena/internal/application/system"
	"github.com/younwookim/arena/internal/infrastructure/config"
)

type options struct {
	record    string
	replay    string
	stage     string
	seed      int64
	configDir string
	headless  bool
	debug     bool
}

func main() {
	// Parse command line flags
	var opts options
	flag.StringVar(&opts.record, "record", "", "Record input to file (e.g., -record replay.json)")
	flag.StringVar(&opts.replay, "replay", "", "Play back a recorded input file")
	flag.StringVar(&opts.stage, "stage", "arena", "Stage to load from stages/")
	flag.Int64Var(&opts.seed, "seed", 0, "RNG seed (0 = current time)")
	flag.StringVar(&opts.configDir, "config", "", "Config directory (default: embedded configs)")
	flag.BoolVar(&opts.headless, "headless", false, "With -replay: simulate without a window and print the result")
	flag.BoolVar(&opts.debug, "debug", false, "Debug logging and overlay")
	flag.Parse()

	logger := newLogger(os.Stderr, opts.debug)
	slog.SetDefault(logger)

	if err := run(opts, logger); err != nil {
		logger.Error("arena failed", "err", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newLoader reads configs from dir, or from the embedded set when dir is empty
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

func run(opts options, logger *slog.Logger) error {
	loader, err := newLoader(opts.configDir)
	if err != nil {
		return err
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var data *replay.ReplayData
	if opts.replay != "" {
		data, err = replay.LoadReplay(opts.replay)
		if err != nil {
			return err
		}
		// A recording always replays on the stage it was made on
		if data.Stage != "" {
			opts.stage = data.Stage
		}
		logger.Info("replay loaded", "file", opts.replay, "frames", len(data.Frames), "seed", data.Seed)
	}

	stageCfg, err := loader.LoadStage(opts.stage)
	if err != nil {
		return err
	}

	if opts.headless {
		if data == nil {
			return fmt.Errorf("-headless requires -replay")
		}
		_, err := runHeadless(os.Stdout, cfg, stageCfg, *data, logger)
		return err
	}

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	arenaOpts := arena.Options{
		Config:     cfg,
		Stage:      stageCfg,
		Seed:       seed,
		RecordPath: opts.record,
		Logger:     logger,
		Debug:      opts.debug,
	}
	if data != nil {
		arenaOpts.Replay = replay.NewReplayer(*data)
	}

	scn, err := arena.New(arenaOpts)
	if err != nil {
		return err
	}

	display := cfg.Combat.Display
	g := game.New(scn, display.ScreenWidth, display.ScreenHeight, display.Framerate, logger)
	defer g.Close()

	// Set up ebiten
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Arena - " + stageCfg.Name)
	ebiten.SetTPS(display.Framerate)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("game loop: %w", err)
	}
	return nil
}

// runHeadless plays a recording through a fresh simulation and prints the outcome
func runHeadless(w io.Writer, cfg *config.GameConfig, stage *config.StageConfig, data replay.ReplayData, logger *slog.Logger) (replay.Summary, error) {
	sim, err := system.NewSimulation(cfg, stage, rand.New(rand.NewSource(data.Seed)), logger)
	if err != nil {
		return replay.Summary{}, err
	}
	defer sim.Shutdown()

	sum := replay.Run(sim, replay.NewReplayer(data), 1.0/float64(cfg.Combat.Display.Framerate))

	fmt.Fprintf(w, "stage=%s seed=%d frames=%d attacks=%d hits=%d projectiles=%d\n",
		stage.ID, data.Seed, sum.Frames, sum.Attacks, sum.Hits, sum.Projectiles)
	fmt.Fprintf(w, "player=(%.2f, %.2f)\n", sum.Player.X, sum.Player.Y)
	for i, e := range sum.Enemies {
		fmt.Fprintf(w, "enemy[%d]=(%.2f, %.2f) %s\n", i, e.X, e.Y, sum.States[i])
	}
	return sum, nil
}
