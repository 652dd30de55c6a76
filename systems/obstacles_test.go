package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/drizzle/components"
	"github.com/pthm-cable/drizzle/physics"
)

func TestObstaclesBuildLayout(t *testing.T) {
	r := newRig(t)
	r.obstacles.Build(testView)

	all := r.obstacles.All()
	if len(all) != 6 {
		t.Fatalf("built %d obstacles, want 6", len(all))
	}
	if got := r.world.Count(physics.KindObstacle); got != 6 {
		t.Errorf("world holds %d obstacles, want 6", got)
	}

	w, h := testView.Width, testView.Height
	rects := []struct {
		name       string
		x, y, w, h float64
	}{
		{"ground", w / 2, h - 5, w, 10},
		{"left wall", -25, h / 2, 50, h},
		{"right wall", w + 25, h / 2, 50, h},
	}
	for i, want := range rects {
		got := all[i]
		if got.Shape != components.ShapeRect || got.Visible {
			t.Errorf("%s: shape %v visible %v, want hidden rect", want.name, got.Shape, got.Visible)
		}
		if got.X != want.x || got.Y != want.y || got.Width != want.w || got.Height != want.h {
			t.Errorf("%s = (%v, %v, %vx%v), want (%v, %v, %vx%v)",
				want.name, got.X, got.Y, got.Width, got.Height, want.x, want.y, want.w, want.h)
		}
	}

	for i, cc := range r.cfg.Obstacles.Circles {
		got := all[3+i]
		if got.Shape != components.ShapeCircle || !got.Visible {
			t.Errorf("circle %d: shape %v visible %v", i, got.Shape, got.Visible)
		}
		if got.X != cc.FX*w || got.Y != cc.FY*h || got.Radius != cc.Radius {
			t.Errorf("circle %d = (%v, %v, r%v), want (%v, %v, r%v)", i, got.X, got.Y, got.Radius, cc.FX*w, cc.FY*h, cc.Radius)
		}
		if _, ok := r.obstacles.Circle(got.Body); !ok {
			t.Errorf("circle %d not found by body", i)
		}
	}

	if _, ok := r.obstacles.Circle(all[0].Body); ok {
		t.Error("ground reported as a circle")
	}
}

func TestObstaclesRebuildOnResize(t *testing.T) {
	r := newRig(t)
	r.obstacles.Build(Viewport{Width: 800, Height: 600})
	old := append([]components.Obstacle(nil), r.obstacles.All()...)

	next := Viewport{Width: 1280, Height: 1000}
	r.obstacles.Build(next)

	for _, ob := range old {
		if r.world.Contains(ob.Body) {
			t.Error("old obstacle body still in world after rebuild")
		}
		if _, ok := r.obstacles.Lookup(ob.Body); ok {
			t.Error("old obstacle still resolvable after rebuild")
		}
	}
	if got := r.world.Count(physics.KindObstacle); got != 6 {
		t.Errorf("world holds %d obstacles after rebuild, want 6", got)
	}

	for i, cc := range r.cfg.Obstacles.Circles {
		got := r.obstacles.All()[3+i]
		if math.Abs(got.X/next.Width-cc.FX) > 1e-9 || math.Abs(got.Y/next.Height-cc.FY) > 1e-9 {
			t.Errorf("circle %d at (%v, %v), not at fractions (%v, %v) of %+v", i, got.X, got.Y, cc.FX, cc.FY, next)
		}
	}
	if r.obstacles.Viewport() != next {
		t.Errorf("viewport = %+v, want %+v", r.obstacles.Viewport(), next)
	}
}
