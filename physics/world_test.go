package physics

import (
	"math"
	"testing"
)

var (
	rainMat   = Material{Density: 0.0001, Friction: 0.1, AirFriction: 0.005, FixedRotation: true}
	splashMat = Material{Density: 0.0005, Elasticity: 0.4, Friction: 0.1, AirFriction: 0.06}
	groundMat = Material{Elasticity: 1, Friction: 1}
)

func TestRainNeverCollidesWithRainOrSplash(t *testing.T) {
	w := NewWorld(600, 60)

	var pairs []Pair
	w.OnCollisionStart(func(batch []Pair) {
		pairs = append(pairs, batch...)
	})

	// Stack overlapping drops of both kinds with no obstacle in reach
	for i := 0; i < 10; i++ {
		w.Add(w.NewRect(KindRain, 100, 100+float64(i), 2, 14, rainMat))
		w.Add(w.NewCircle(KindSplash, 100, 100+float64(i), 1, splashMat))
	}

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60.0)
	}

	if len(pairs) != 0 {
		t.Errorf("expected no collision pairs between drops, got %d", len(pairs))
	}
}

func TestRainHitsGroundOnce(t *testing.T) {
	w := NewWorld(600, 60)
	ground := w.NewRect(KindObstacle, 200, 300, 400, 10, groundMat)
	w.Add(ground)

	drop := w.NewRect(KindRain, 200, 100, 2, 14, rainMat)
	w.Add(drop)
	w.SetVelocity(drop, 0, 4)

	var pairs []Pair
	w.OnCollisionStart(func(batch []Pair) {
		pairs = append(pairs, batch...)
	})

	for i := 0; i < 180 && len(pairs) == 0; i++ {
		w.Step(1.0 / 60.0)
	}

	if len(pairs) != 1 {
		t.Fatalf("expected 1 collision pair, got %d", len(pairs))
	}
	p := pairs[0]
	if p.Other(drop) != ground || p.Other(ground) != drop {
		t.Errorf("pair %+v does not join drop and ground", p)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	w := NewWorld(600, 60)
	drop := w.NewCircle(KindSplash, 10, 10, 1, splashMat)

	if w.Contains(drop) {
		t.Error("body should not be simulated before Add")
	}

	w.Add(drop)
	w.Add(drop) // second add is skipped
	if got := w.Count(KindSplash); got != 1 {
		t.Errorf("splash count after double add = %d, want 1", got)
	}

	if n := w.Remove(drop); n != 1 {
		t.Errorf("first Remove = %d, want 1", n)
	}
	if n := w.Remove(drop); n != 0 {
		t.Errorf("second Remove = %d, want 0", n)
	}
	if n := w.Remove(nil); n != 0 {
		t.Errorf("Remove(nil) = %d, want 0", n)
	}
	if got := w.Count(KindSplash); got != 0 {
		t.Errorf("splash count after remove = %d, want 0", got)
	}
}

func TestStaticBodiesCanBeReplaced(t *testing.T) {
	w := NewWorld(600, 60)
	first := w.NewCircle(KindObstacle, 50, 50, 40, groundMat)
	w.Add(first)
	w.Remove(first)

	second := w.NewCircle(KindObstacle, 80, 80, 40, groundMat)
	w.Add(second)

	if w.Contains(first) || !w.Contains(second) {
		t.Error("obstacle replacement left the world inconsistent")
	}
	if got := w.Count(KindObstacle); got != 1 {
		t.Errorf("obstacle count = %d, want 1", got)
	}
}

func TestVelocityInReferenceUnits(t *testing.T) {
	w := NewWorld(0, 60)
	drop := w.NewRect(KindRain, 0, 0, 2, 14, Material{Density: 0.0001, FixedRotation: true})
	w.Add(drop)
	w.SetVelocity(drop, 3, 4)

	vx, vy := drop.Velocity()
	if math.Abs(vx-3) > 1e-9 || math.Abs(vy-4) > 1e-9 {
		t.Errorf("velocity = (%v, %v), want (3, 4)", vx, vy)
	}

	// One reference frame moves the body by the velocity in px
	w.Step(1.0 / 60.0)
	x, y := drop.Position()
	if math.Abs(x-3) > 1e-6 || math.Abs(y-4) > 1e-6 {
		t.Errorf("position after one frame = (%v, %v), want (3, 4)", x, y)
	}
}

func TestAirFrictionPerReferenceFrame(t *testing.T) {
	w := NewWorld(0, 60)
	drop := w.NewCircle(KindSplash, 0, 0, 1, splashMat)
	w.Add(drop)
	w.SetVelocity(drop, 10, 0)

	w.Step(1.0 / 60.0)

	vx, _ := drop.Velocity()
	if math.Abs(vx-9.4) > 1e-6 {
		t.Errorf("vx after one frame = %v, want 9.4", vx)
	}
}

func TestFixedRotationDoesNotTumble(t *testing.T) {
	w := NewWorld(600, 60)
	w.Add(w.NewCircle(KindObstacle, 100, 200, 40, groundMat))

	// Lands off-centre on the circle
	drop := w.NewRect(KindRain, 110, 100, 2, 14, rainMat)
	w.Add(drop)
	for i := 0; i < 120; i++ {
		w.Step(1.0 / 60.0)
	}
	if drop.Angle() != 0 {
		t.Errorf("raindrop rotated to %v", drop.Angle())
	}
}

func TestWindShiftsGravity(t *testing.T) {
	w := NewWorld(600, 60)
	w.SetWind(-50)
	gx, gy := w.Gravity()
	if gx != -50 || gy != 600 {
		t.Errorf("gravity = (%v, %v), want (-50, 600)", gx, gy)
	}
}

func TestNearestFindsDrops(t *testing.T) {
	w := NewWorld(0, 60)
	w.Add(w.NewCircle(KindObstacle, 0, 0, 40, groundMat))
	drop := w.NewCircle(KindSplash, 200, 200, 1.5, splashMat)
	w.Add(drop)

	if got := w.Nearest(204, 200, 12); got != drop {
		t.Errorf("Nearest near drop = %v, want drop", got)
	}
	if got := w.Nearest(0, 0, 12); got != nil {
		t.Errorf("Nearest on obstacle = %v, want nil (obstacles are not drops)", got)
	}
	if got := w.Nearest(400, 400, 12); got != nil {
		t.Errorf("Nearest far away = %v, want nil", got)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindObstacle, "obstacle"},
		{KindRain, "rain"},
		{KindSplash, "splash"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
