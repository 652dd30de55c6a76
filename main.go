package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drizzle/config"
	"github.com/pthm-cable/drizzle/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N physics steps (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Physics steps per update call (higher = faster headless runs)")
	debug := flag.Bool("debug", false, "Log lifecycle events at debug level")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Config:         cfg,
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib window
		g := game.NewGameWithOptions(opts)
		defer g.Unload()

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"width", cfg.Screen.Width,
			"height", cfg.Screen.Height,
			"max_ticks", *maxTicks,
			"steps_per_update", *stepsPerUpdate,
		)

		for {
			g.UpdateHeadless()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				ledger := g.Ledger()
				slog.Info("max ticks reached",
					"tick", g.Tick(),
					"rain_spawned", ledger.RainSpawned(),
					"rain_retired", ledger.RainRetired(),
					"max_splash_age_ms", ledger.MaxSplashAge.Milliseconds(),
				)
				return
			}
		}
	}

	// Graphical mode
	if cfg.Screen.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}
