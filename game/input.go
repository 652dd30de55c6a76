package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drizzle/systems"
)

// handleInput processes keyboard, mouse and window events.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.clear()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		g.showHUD = !g.showHUD
	}
	if rl.IsKeyPressed(rl.KeyI) {
		g.showInspector = !g.showInspector
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	mouse := rl.GetMousePosition()
	if g.showInspector {
		g.inspector.Hover(float64(mouse.X), float64(mouse.Y))
	}

	// Clicks on the control panel belong to raygui
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !(g.showHUD && g.controls.Contains(mouse.X, mouse.Y)) {
		n := g.sim.Burst(float64(mouse.X), float64(mouse.Y))
		slog.Debug("burst", "x", mouse.X, "y", mouse.Y, "count", n)
	}
}

// handleResize rebuilds the obstacles when the window size changes.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.sim.Resize(systems.Viewport{Width: float64(w), Height: float64(h)})
	slog.Debug("viewport resized", "width", w, "height", h)
}

// clear retires every drop.
func (g *Game) clear() {
	rain, splash := g.sim.Clear()
	slog.Debug("cleared drops", "rain", rain, "splash", splash)
}
