package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drizzle/config"
)

// SkyRenderer fills the screen with a vertical gradient.
type SkyRenderer struct {
	top, bottom rl.Color
}

// NewSkyRenderer creates a sky renderer.
func NewSkyRenderer(top, bottom config.Color) *SkyRenderer {
	return &SkyRenderer{top: toRL(top), bottom: toRL(bottom)}
}

// Draw clears the frame and paints the gradient.
func (s *SkyRenderer) Draw(width, height int32) {
	rl.ClearBackground(s.bottom)
	rl.DrawRectangleGradientV(0, 0, width, height, s.top, s.bottom)
}

func toRL(c config.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// withOpacity scales the color alpha by opacity in [0, 1].
func withOpacity(c rl.Color, opacity float32) rl.Color {
	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	c.A = uint8(float32(c.A) * opacity)
	return c
}
