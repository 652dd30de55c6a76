package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drizzle/ui"
)

// Draw renders one frame.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()

	g.sky.Draw(int32(g.screenWidth), int32(g.screenHeight))
	g.drops.DrawObstacles(g.sim.Obstacles.All())
	g.drops.DrawDrops(g.sim.Registry)

	if g.showInspector {
		sel := g.inspector.Selection()
		if sel != nil {
			g.drops.DrawHighlight(sel.X, sel.Y)
		}
		g.inspectView.Draw(sel, int32(g.screenWidth))
	}

	if g.showHUD {
		g.drawUI()
	}

	rl.EndDrawing()
}

// drawUI renders the HUD and the control panel.
func (g *Game) drawUI() {
	ledger := g.collector.Ledger()
	perf := g.perfCollector.Stats()

	g.hud.Draw(ui.HUDData{
		Title:        g.cfg.Screen.Title,
		Rain:         g.sim.Registry.RainCount(),
		Splash:       g.sim.Registry.SplashCount(),
		Spawned:      ledger.RainSpawned(),
		Retired:      ledger.RainRetired(),
		SimTime:      g.sim.Now(),
		Steps:        g.sim.Steps(),
		Speed:        g.stepsPerUpdate,
		FPS:          rl.GetFPS(),
		Wind:         g.sim.Wind.Accel(),
		WindLimit:    g.cfg.Wind.Strength,
		Paused:       g.paused,
		ScreenWidth:  int32(g.screenWidth),
		ScreenHeight: int32(g.screenHeight),
	})
	g.hud.DrawPerf(perf, int32(g.screenWidth))

	actions := g.controls.Draw(g.cfg, g.paused)
	if actions.TogglePause {
		g.paused = !g.paused
	}
	if actions.Clear {
		g.clear()
	}
	if actions.Changed {
		g.cfg.Recompute()
	}

	g.hud.DrawControls(int32(g.screenHeight),
		"Click: Burst | SPACE: Pause | C: Clear | < >: Speed | H: HUD | I: Inspect | F11: Fullscreen")
}
