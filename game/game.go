// Package game ties the rain simulation to the window: fixed-step updates,
// input, rendering and telemetry output.
package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drizzle/config"
	"github.com/pthm-cable/drizzle/inspector"
	"github.com/pthm-cable/drizzle/renderer"
	"github.com/pthm-cable/drizzle/systems"
	"github.com/pthm-cable/drizzle/telemetry"
	"github.com/pthm-cable/drizzle/ui"
)

// Options configures a new game.
type Options struct {
	Config         *config.Config // nil = config.Cfg()
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = config telemetry.stats_window
	OutputDir      string
	Headless       bool
	StepsPerUpdate int

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete game state.
type Game struct {
	cfg *config.Config
	sim *systems.Simulation

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// State
	headless       bool
	paused         bool
	stepsPerUpdate int
	showHUD        bool
	showInspector  bool

	// Rendering (nil in headless mode)
	sky         *renderer.SkyRenderer
	drops       *renderer.DropRenderer
	hud         *ui.HUD
	controls    *ui.ControlsPanel
	inspectView *ui.InspectorPanel
	inspector   *inspector.Inspector

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game. In graphical mode the raylib window
// must already be open.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	w, h := float32(cfg.Screen.Width), float32(cfg.Screen.Height)
	if !opts.Headless {
		w, h = float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	collector := telemetry.NewCollector(statsWindow, cfg.Physics.DT)

	g := &Game{
		cfg:            cfg,
		sim:            systems.NewSimulation(cfg, systems.Viewport{Width: float64(w), Height: float64(h)}, opts.Seed, collector),
		collector:      collector,
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		headless:       opts.Headless,
		stepsPerUpdate: steps,
		showHUD:        true,
		screenWidth:    w,
		screenHeight:   h,
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "dir", opts.OutputDir, "error", err)
	} else if om != nil {
		g.outputManager = om
		if err := om.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config snapshot", "error", err)
		}
	}

	if !opts.Headless {
		g.sky = renderer.NewSkyRenderer(cfg.Render.SkyTop, cfg.Render.SkyBottom)
		g.drops = renderer.NewDropRenderer(cfg.Raindrop.Fill, cfg.Splash.Fill)
		g.hud = ui.NewHUD()
		g.controls = ui.NewControlsPanel(10, 120, 260)
		g.inspectView = ui.NewInspectorPanel()
		g.inspector = inspector.New(g.sim)
	}

	slog.Debug("game created",
		"seed", opts.Seed,
		"width", w,
		"height", h,
		"headless", opts.Headless,
		"output_dir", opts.OutputDir,
	)

	return g
}

// Update handles input and runs stepsPerUpdate fixed physics steps.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// UpdateHeadless runs stepsPerUpdate steps without polling input.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// step runs one fixed step with phase timing and telemetry.
func (g *Game) step() {
	g.perfCollector.StartStep()

	if ticks := g.sim.Step(g.perfCollector); ticks > 0 {
		slog.Debug("spawn tick",
			"step", g.sim.Steps(),
			"rain", g.sim.Registry.RainCount(),
			"splash", g.sim.Registry.SplashCount(),
		)
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndStep()
}

// Tick returns the number of physics steps run.
func (g *Game) Tick() int64 {
	return g.sim.Steps()
}

// Simulation exposes the underlying simulation.
func (g *Game) Simulation() *systems.Simulation {
	return g.sim
}

// Ledger returns the cumulative spawn and retirement counts.
func (g *Game) Ledger() telemetry.Ledger {
	return g.collector.Ledger()
}

// Unload releases output files.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output files", "error", err)
	}
}
