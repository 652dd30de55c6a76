package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/drizzle/components"
	"github.com/pthm-cable/drizzle/physics"
)

// angleDiff returns a-b wrapped into [-pi, pi].
func angleDiff(a, b float64) float64 {
	return math.Remainder(a-b, 2*math.Pi)
}

func firstCircle(t *testing.T, o *Obstacles) components.Obstacle {
	t.Helper()
	for _, ob := range o.All() {
		if ob.Shape == components.ShapeCircle {
			return ob
		}
	}
	t.Fatal("no circle obstacle built")
	return components.Obstacle{}
}

func TestCollisionCircleHit(t *testing.T) {
	for _, deg := range []float64{-150, -90, -60, -10, 45} {
		r := newRig(t)
		r.obstacles.Build(testView)
		c := NewCollision(r.cfg, r.sp, r.obstacles, r.rng)
		circle := firstCircle(t, r.obstacles)

		theta := deg * math.Pi / 180
		x := circle.X + math.Cos(theta)*(circle.Radius+2)
		y := circle.Y + math.Sin(theta)*(circle.Radius+2)
		drop := r.sp.SpawnRain(x, y, components.OriginTick)

		c.Handle([]physics.Pair{{A: circle.Body, B: drop}})

		if r.reg.IsRain(drop) || r.world.Contains(drop) {
			t.Fatalf("%v°: struck raindrop not retired", deg)
		}
		if r.rec.rainRetired[components.CauseCircle] != 1 {
			t.Errorf("%v°: circle retirements = %d, want 1", deg, r.rec.rainRetired[components.CauseCircle])
		}

		ic := r.cfg.Impact.Circle
		splashes := r.reg.Splashes(nil)
		if n := len(splashes); n < ic.Splashes.Min || n > ic.Splashes.Max {
			t.Fatalf("%v°: %d splashes, want %d-%d", deg, n, ic.Splashes.Min, ic.Splashes.Max)
		}
		spread := r.cfg.Derived.SpreadRad + 1e-9
		for _, s := range splashes {
			sx, sy := s.Body.Position()
			a := math.Atan2(sy-y, sx-x)
			if d := angleDiff(a, theta); math.Abs(d) > spread {
				t.Errorf("%v°: splash direction off by %.1f°, want within ±%v°", deg, d*180/math.Pi, ic.SpreadDeg)
			}
			if dist := math.Hypot(sx-x, sy-y); dist < ic.Distance.Min-1e-9 || dist > ic.Distance.Max+1e-9 {
				t.Errorf("%v°: splash distance %v outside %+v", deg, dist, ic.Distance)
			}
			vx, _ := s.Body.Velocity()
			if vx != 0 && math.Signbit(vx) != math.Signbit(math.Cos(a)) {
				t.Errorf("%v°: splash vx %v not directed along %.1f°", deg, vx, a*180/math.Pi)
			}
		}

		rain := r.reg.Raindrops(nil)
		if len(rain) != 1 {
			t.Fatalf("%v°: %d raindrops after hit, want 1 deflected", deg, len(rain))
		}
		if rain[0].Drop.Origin != components.OriginDeflect {
			t.Errorf("%v°: origin = %v, want deflect", deg, rain[0].Drop.Origin)
		}
		dc := r.cfg.Impact.Deflect
		dx, dy := rain[0].Body.Position()
		a := math.Atan2(dy-y, dx-x)
		if d := angleDiff(a, theta); math.Abs(d) > r.cfg.Derived.DeflectRad+1e-9 {
			t.Errorf("%v°: deflect offset off by %.1f°, want within ±%v°", deg, d*180/math.Pi, dc.AngleDeg)
		}
		if dist := math.Hypot(dx-x, dy-y); dist < dc.Distance.Min-1e-9 || dist > dc.Distance.Max+1e-9 {
			t.Errorf("%v°: deflect distance %v outside %+v", deg, dist, dc.Distance)
		}
		if _, vy := rain[0].Body.Velocity(); vy < dc.SpeedY.Min-1e-9 || vy > dc.SpeedY.Max+1e-9 {
			t.Errorf("%v°: deflect vy %v outside %+v", deg, vy, dc.SpeedY)
		}
	}
}

func TestCollisionSurfaceHit(t *testing.T) {
	r := newRig(t)
	r.obstacles.Build(testView)
	c := NewCollision(r.cfg, r.sp, r.obstacles, r.rng)
	ground := r.obstacles.All()[0]

	x, y := 200.0, testView.Height-12
	drop := r.sp.SpawnRain(x, y, components.OriginTick)

	c.Handle([]physics.Pair{{A: drop, B: ground.Body}})

	if r.reg.IsRain(drop) {
		t.Fatal("struck raindrop not retired")
	}
	if r.reg.RainCount() != 0 {
		t.Errorf("surface hit left %d raindrops, want no deflection", r.reg.RainCount())
	}
	sc := r.cfg.Impact.Surface
	splashes := r.reg.Splashes(nil)
	if n := len(splashes); n < sc.Splashes.Min || n > sc.Splashes.Max {
		t.Fatalf("%d splashes, want %d-%d", n, sc.Splashes.Min, sc.Splashes.Max)
	}
	for _, s := range splashes {
		sx, sy := s.Body.Position()
		if math.Abs(sx-x) > sc.Jitter || sy != y-sc.Lift {
			t.Errorf("splash at (%v, %v), want (%v±%v, %v)", sx, sy, x, sc.Jitter, y-sc.Lift)
		}
		if _, vy := s.Body.Velocity(); vy >= 0 {
			t.Errorf("splash vy = %v, want upward", vy)
		}
	}
}

func TestCollisionRetiresOnceAcrossBatch(t *testing.T) {
	r := newRig(t)
	r.obstacles.Build(testView)
	c := NewCollision(r.cfg, r.sp, r.obstacles, r.rng)
	all := r.obstacles.All()
	ground, wall := all[0], all[1]

	drop := r.sp.SpawnRain(2, testView.Height-8, components.OriginTick)

	// Corner contact reports the drop twice in one batch
	c.Handle([]physics.Pair{
		{A: drop, B: ground.Body},
		{A: wall.Body, B: drop},
	})

	if got := sum(r.rec.rainRetired); got != 1 {
		t.Errorf("retirements = %d, want 1", got)
	}
	if n := r.reg.SplashCount(); n > r.cfg.Impact.Surface.Splashes.Max {
		t.Errorf("%d splashes, want a single impact's worth", n)
	}
}

func TestCollisionSkipsPairsWithoutRain(t *testing.T) {
	r := newRig(t)
	r.obstacles.Build(testView)
	c := NewCollision(r.cfg, r.sp, r.obstacles, r.rng)
	splash := r.sp.SpawnSplash(100, 100)
	circle := firstCircle(t, r.obstacles)

	c.Handle([]physics.Pair{{A: splash, B: circle.Body}})

	if !r.reg.IsSplash(splash) || r.reg.SplashCount() != 1 || r.reg.RainCount() != 0 {
		t.Error("pair without a raindrop changed the registry")
	}
}
