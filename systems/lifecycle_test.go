package systems

import (
	"testing"
	"time"

	"github.com/pthm-cable/drizzle/components"
)

func TestLifecycleRetiresOffscreenRainWithoutSplash(t *testing.T) {
	r := newRig(t)
	l := NewLifecycle(r.cfg, r.sp, r.rng)
	b := r.sp.SpawnRain(100, testView.Height+60, components.OriginTick)

	l.expireRain(testView)

	if r.reg.IsRain(b) || r.world.Contains(b) {
		t.Error("off-screen raindrop not retired")
	}
	if r.reg.SplashCount() != 0 {
		t.Errorf("off-screen retirement spawned %d splashes, want 0", r.reg.SplashCount())
	}
	if r.rec.rainRetired[components.CauseOffscreen] != 1 {
		t.Errorf("offscreen retirements = %d, want 1", r.rec.rainRetired[components.CauseOffscreen])
	}
}

func TestLifecycleNearBottomSplashes(t *testing.T) {
	r := newRig(t)
	l := NewLifecycle(r.cfg, r.sp, r.rng)
	x, y := 300.0, testView.Height-15
	b := r.sp.SpawnRain(x, y, components.OriginTick)

	l.expireRain(testView)

	if r.reg.IsRain(b) {
		t.Fatal("near-bottom raindrop not retired")
	}
	splashes := r.reg.Splashes(nil)
	if n := len(splashes); n < 1 || n > 3 {
		t.Fatalf("spawned %d splashes, want 1-3", n)
	}
	ec := r.cfg.Expiry
	for _, s := range splashes {
		sx, sy := s.Body.Position()
		if sx < x-ec.SplashJitter || sx > x+ec.SplashJitter {
			t.Errorf("splash x = %v, want within %v of %v", sx, ec.SplashJitter, x)
		}
		if sy != y-ec.SplashLift {
			t.Errorf("splash y = %v, want %v", sy, y-ec.SplashLift)
		}
	}
}

func TestLifecycleKeepsFallingRain(t *testing.T) {
	r := newRig(t)
	l := NewLifecycle(r.cfg, r.sp, r.rng)
	b := r.sp.SpawnRain(100, testView.Height/2, components.OriginTick)

	l.expireRain(testView)

	if !r.reg.IsRain(b) {
		t.Error("mid-screen raindrop was retired")
	}
}

func TestLifecycleSplashExpiry(t *testing.T) {
	tests := []struct {
		name  string
		y     float64
		vy    float64
		age   time.Duration
		cause components.Cause
		keep  bool
	}{
		{"young airborne", 300, -3, 100 * time.Millisecond, 0, true},
		{"aged", 300, -3, 1450 * time.Millisecond, components.CauseAged, false},
		{"offscreen", testView.Height + 60, 5, 0, components.CauseOffscreen, false},
		{"settled near floor", testView.Height - 10, 0.2, 0, components.CauseSettled, false},
		{"bouncing near floor", testView.Height - 10, -3, 0, 0, true},
		{"slow but high", 100, 0.2, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t)
			l := NewLifecycle(r.cfg, r.sp, r.rng)
			b := r.sp.SpawnSplashWithVelocity(100, tt.y, 0, tt.vy)
			r.sp.Advance(tt.age)

			l.expireSplashes(testView)

			if got := r.reg.IsSplash(b); got != tt.keep {
				t.Fatalf("kept = %v, want %v", got, tt.keep)
			}
			if !tt.keep && r.rec.splashRetired[tt.cause] != 1 {
				t.Errorf("retirement causes = %v, want one %v", r.rec.splashRetired, tt.cause)
			}
		})
	}
}

func TestLifecycleSpawnBatch(t *testing.T) {
	r := newRig(t)
	l := NewLifecycle(r.cfg, r.sp, r.rng)
	sc := r.cfg.Spawn

	for i := 0; i < 50; i++ {
		before := r.reg.RainCount()
		l.spawnBatch(testView)
		n := r.reg.RainCount() - before
		if n < sc.Batch.Min || n > sc.Batch.Max {
			t.Fatalf("batch of %d, want %d-%d", n, sc.Batch.Min, sc.Batch.Max)
		}
	}

	for _, ref := range r.reg.Raindrops(nil) {
		x, y := ref.Body.Position()
		if x < 0 || x >= testView.Width {
			t.Errorf("spawn x = %v outside [0, %v)", x, testView.Width)
		}
		if y < -sc.Height.Max || y > -sc.Height.Min {
			t.Errorf("spawn y = %v outside [%v, %v]", y, -sc.Height.Max, -sc.Height.Min)
		}
		if ref.Drop.Origin != components.OriginTick {
			t.Errorf("origin = %v, want tick", ref.Drop.Origin)
		}
	}
}

func TestLifecycleUpdateAccumulates(t *testing.T) {
	r := newRig(t)
	l := NewLifecycle(r.cfg, r.sp, r.rng)
	interval := r.cfg.Derived.SpawnInterval

	if n := l.Update(interval/2, testView); n != 0 {
		t.Errorf("half interval ran %d ticks, want 0", n)
	}
	if n := l.Update(interval/2, testView); n != 1 {
		t.Errorf("full interval ran %d ticks, want 1", n)
	}
	if n := l.Update(3*interval, testView); n != 3 {
		t.Errorf("three intervals ran %d ticks, want 3", n)
	}
	if r.reg.RainCount() < 4*r.cfg.Spawn.Batch.Min {
		t.Errorf("rain count %d after 4 ticks, want at least %d", r.reg.RainCount(), 4*r.cfg.Spawn.Batch.Min)
	}
}
