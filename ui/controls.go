package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drizzle/config"
)

const (
	controlsHeight   = 200
	maxWindStrength  = 400
	minSpawnInterval = 10
	maxSpawnInterval = 500
)

// ControlActions reports what the user did on the controls panel this frame.
type ControlActions struct {
	TogglePause bool
	Clear       bool
	Changed     bool // A config value was edited; derived values need recomputing
}

// ControlsPanel renders sliders and buttons for live tuning.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Contains reports whether a screen point falls inside the panel.
func (c *ControlsPanel) Contains(x, y float32) bool {
	return x >= float32(c.x) && x <= float32(c.x+c.width) &&
		y >= float32(c.y) && y <= float32(c.y+controlsHeight)
}

// Draw renders the panel and applies slider edits to cfg.
func (c *ControlsPanel) Draw(cfg *config.Config, paused bool) ControlActions {
	var actions ControlActions

	r := c.renderer
	padding := r.Theme.Padding
	r.DrawPanel(c.x, c.y, c.width, controlsHeight)

	x := float32(c.x + padding)
	y := float32(c.y + padding)
	sliderWidth := float32(c.width-padding*2) - 50

	rl.DrawText("Controls", int32(x), int32(y), 16, rl.White)
	y += 22

	// Spawn interval
	rl.DrawText("Spawn interval (ms)", int32(x), int32(y), 12, r.Theme.LabelColor)
	y += 14
	interval := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: sliderWidth, Height: 14},
		"", "",
		float32(cfg.Spawn.IntervalMS), minSpawnInterval, maxSpawnInterval,
	)
	rl.DrawText(fmt.Sprintf("%d", cfg.Spawn.IntervalMS), int32(x+sliderWidth+6), int32(y), 12, r.Theme.ValueColor)
	if v := int(interval); v != cfg.Spawn.IntervalMS {
		cfg.Spawn.IntervalMS = v
		actions.Changed = true
	}
	y += 22

	// Burst size
	rl.DrawText("Burst size", int32(x), int32(y), 12, r.Theme.LabelColor)
	y += 14
	burst := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: sliderWidth, Height: 14},
		"", "",
		float32(cfg.Burst.Count), 1, 60,
	)
	rl.DrawText(fmt.Sprintf("%d", cfg.Burst.Count), int32(x+sliderWidth+6), int32(y), 12, r.Theme.ValueColor)
	if v := int(burst); v != cfg.Burst.Count {
		cfg.Burst.Count = v
		actions.Changed = true
	}
	y += 22

	// Wind
	rl.DrawText("Wind strength (px/s²)", int32(x), int32(y), 12, r.Theme.LabelColor)
	y += 14
	wind := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: sliderWidth, Height: 14},
		"", "",
		float32(cfg.Wind.Strength), 0, maxWindStrength,
	)
	rl.DrawText(fmt.Sprintf("%.0f", cfg.Wind.Strength), int32(x+sliderWidth+6), int32(y), 12, r.Theme.ValueColor)
	if v := float64(int(wind)); v != cfg.Wind.Strength {
		cfg.Wind.Strength = v
		actions.Changed = true
	}
	y += 28

	buttonWidth := (float32(c.width) - float32(padding)*3) / 2
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: buttonWidth, Height: 26}, toggleText(paused, "Resume", "Pause")) {
		actions.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + buttonWidth + float32(padding), Y: y, Width: buttonWidth, Height: 26}, "Clear") {
		actions.Clear = true
	}

	return actions
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
