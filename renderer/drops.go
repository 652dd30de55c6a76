package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drizzle/components"
	"github.com/pthm-cable/drizzle/config"
	"github.com/pthm-cable/drizzle/physics"
	"github.com/pthm-cable/drizzle/systems"
)

const rad2deg = 180 / 3.141592653589793

// DropRenderer draws obstacles, raindrops and splash drops.
type DropRenderer struct {
	rain   rl.Color
	splash rl.Color
}

// NewDropRenderer creates a drop renderer with base fill colors.
func NewDropRenderer(rain, splash config.Color) *DropRenderer {
	return &DropRenderer{rain: toRL(rain), splash: toRL(splash)}
}

// DrawObstacles renders the visible obstacles. Walls are invisible.
func (r *DropRenderer) DrawObstacles(obstacles []components.Obstacle) {
	for i := range obstacles {
		ob := &obstacles[i]
		if !ob.Visible {
			continue
		}
		fill := toRL(ob.Fill)
		switch ob.Shape {
		case components.ShapeCircle:
			center := rl.Vector2{X: float32(ob.X), Y: float32(ob.Y)}
			rl.DrawCircleV(center, float32(ob.Radius), fill)
			if ob.StrokeWidth > 0 {
				outer := float32(ob.Radius)
				rl.DrawRing(center, outer-float32(ob.StrokeWidth), outer, 0, 360, 48, toRL(ob.Stroke))
			}
		case components.ShapeRect:
			rec := rl.Rectangle{
				X:      float32(ob.X - ob.Width/2),
				Y:      float32(ob.Y - ob.Height/2),
				Width:  float32(ob.Width),
				Height: float32(ob.Height),
			}
			rl.DrawRectangleRec(rec, fill)
			if ob.StrokeWidth > 0 {
				rl.DrawRectangleLinesEx(rec, float32(ob.StrokeWidth), toRL(ob.Stroke))
			}
		}
	}
}

// DrawDrops renders every tracked drop at its body position.
func (r *DropRenderer) DrawDrops(reg *systems.Registry) {
	reg.EachRain(func(b *physics.Body, drop *components.Raindrop) {
		x, y := b.Position()
		rec := rl.Rectangle{X: float32(x), Y: float32(y), Width: drop.Width, Height: drop.Height}
		origin := rl.Vector2{X: drop.Width / 2, Y: drop.Height / 2}
		rl.DrawRectanglePro(rec, origin, float32(b.Angle()*rad2deg), withOpacity(r.rain, drop.Opacity))
	})

	reg.EachSplash(func(b *physics.Body, drop *components.SplashDrop) {
		x, y := b.Position()
		radius := drop.Radius
		if radius < 0.5 {
			radius = 0.5
		}
		rl.DrawCircleV(rl.Vector2{X: float32(x), Y: float32(y)}, radius, withOpacity(r.splash, drop.Opacity))
	})
}

// DrawHighlight outlines the inspected drop.
func (r *DropRenderer) DrawHighlight(x, y float64) {
	rl.DrawCircleLinesV(rl.Vector2{X: float32(x), Y: float32(y)}, 10, rl.Yellow)
}
