package systems

import (
	"math"
	"math/rand"
	"time"

	"github.com/pthm-cable/drizzle/components"
	"github.com/pthm-cable/drizzle/config"
)

// Lifecycle runs the periodic spawn tick: expire drops, then spawn a batch.
type Lifecycle struct {
	cfg *config.Config
	sp  *Spawner
	rng *rand.Rand

	elapsed time.Duration

	rainBuf   []RainRef
	splashBuf []SplashRef
}

// NewLifecycle creates the tick system.
func NewLifecycle(cfg *config.Config, sp *Spawner, rng *rand.Rand) *Lifecycle {
	return &Lifecycle{cfg: cfg, sp: sp, rng: rng}
}

// Update accumulates dt of simulation time and runs a tick for every full
// spawn interval. Returns the number of ticks run.
func (l *Lifecycle) Update(dt time.Duration, view Viewport) int {
	l.elapsed += dt
	ticks := 0
	for l.elapsed >= l.cfg.Derived.SpawnInterval {
		l.elapsed -= l.cfg.Derived.SpawnInterval
		l.Tick(view)
		ticks++
	}
	return ticks
}

// Tick expires raindrops and splashes, then spawns a new batch above the
// viewport.
func (l *Lifecycle) Tick(view Viewport) {
	l.expireRain(view)
	l.expireSplashes(view)
	l.spawnBatch(view)
}

func (l *Lifecycle) expireRain(view Viewport) {
	ec := &l.cfg.Expiry
	offscreen := view.Height + ec.OffscreenMargin
	bottom := view.Height - ec.BottomBand

	l.rainBuf = l.sp.Registry().Raindrops(l.rainBuf[:0])
	for _, r := range l.rainBuf {
		x, y := r.Body.Position()
		switch {
		case y > offscreen:
			l.sp.RetireRain(r.Body, components.CauseOffscreen)
		case y > bottom:
			l.sp.SplashAround(x, y, ec.BottomSplashes.Sample(l.rng), ec.SplashJitter, ec.SplashLift)
			l.sp.RetireRain(r.Body, components.CauseBottom)
		}
	}
}

// horizon is how far ahead splash ages are checked. Ticks land on step
// boundaries, so the gap between two ticks can exceed the spawn interval
// by up to one step.
func (l *Lifecycle) horizon() time.Duration {
	return l.cfg.Derived.SpawnInterval + l.cfg.Derived.StepDuration
}

func (l *Lifecycle) expireSplashes(view Viewport) {
	sc := &l.cfg.Splash
	now := l.sp.Now()
	maxAge := l.cfg.Derived.SplashMaxAge - l.horizon()
	offscreen := view.Height + l.cfg.Expiry.OffscreenMargin
	settle := view.Height - sc.SettleBand

	l.splashBuf = l.sp.Registry().Splashes(l.splashBuf[:0])
	for _, s := range l.splashBuf {
		_, y := s.Body.Position()
		_, vy := s.Body.Velocity()
		switch {
		case s.Drop.Age(now) > maxAge:
			l.sp.RetireSplash(s.Body, components.CauseAged)
		case y > offscreen:
			l.sp.RetireSplash(s.Body, components.CauseOffscreen)
		case y > settle && math.Abs(vy) < sc.SettleSpeed:
			l.sp.RetireSplash(s.Body, components.CauseSettled)
		}
	}
}

func (l *Lifecycle) spawnBatch(view Viewport) {
	n := l.cfg.Spawn.Batch.Sample(l.rng)
	for i := 0; i < n; i++ {
		x := l.rng.Float64() * view.Width
		y := -l.cfg.Spawn.Height.Sample(l.rng)
		l.sp.SpawnRain(x, y, components.OriginTick)
	}
}
