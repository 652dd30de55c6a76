package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drizzle/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Rain         int
	Splash       int
	Spawned      int
	Retired      int
	SimTime      time.Duration
	Steps        int64
	Speed        int
	FPS          int32
	Wind         float64
	WindLimit    float64
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Rain: %d | Splash: %d | Spawned: %d | Retired: %d", data.Rain, data.Splash, data.Spawned, data.Retired),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Time: %s | Step: %d | Speed: %dx | FPS: %d | Wind: %+.0f",
			data.SimTime.Truncate(100*time.Millisecond), data.Steps, data.Speed, data.FPS, data.Wind),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)

	if data.WindLimit > 0 {
		h.renderer.DrawCenteredBar(10, 95, "Wind", float32(data.Wind), float32(data.WindLimit), 260)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// DrawPerf renders per-phase step timings in the top-right corner.
func (h *HUD) DrawPerf(stats telemetry.PerfStats, screenWidth int32) {
	const width = 230
	x := screenWidth - width - 10
	y := int32(10)

	rl.DrawText("Step Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s | p95: %s", stats.AvgStep.Round(time.Microsecond), stats.P95Step.Round(time.Microsecond)),
		x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases {
		avg := stats.PhaseAvg[phase]
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(fmt.Sprintf("%-10s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct), x, y, 12, color)
		y += 14
	}
}
