package systems

import (
	"math/rand"
	"time"

	"github.com/pthm-cable/drizzle/components"
	"github.com/pthm-cable/drizzle/config"
	"github.com/pthm-cable/drizzle/physics"
)

// Recorder receives drop lifecycle events.
type Recorder interface {
	RainSpawned(origin components.Origin)
	RainRetired(cause components.Cause)
	SplashSpawned()
	SplashRetired(cause components.Cause, age time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RainSpawned(components.Origin)                 {}
func (nopRecorder) RainRetired(components.Cause)                  {}
func (nopRecorder) SplashSpawned()                                {}
func (nopRecorder) SplashRetired(components.Cause, time.Duration) {}

// Spawner is the single entry point for creating and retiring drops.
// It owns the simulation clock that splash ages are measured against.
type Spawner struct {
	cfg     *config.Config
	rng     *rand.Rand
	factory *Factory
	reg     *Registry
	rec     Recorder

	now time.Duration
}

// NewSpawner creates a spawner. rec may be nil.
func NewSpawner(cfg *config.Config, world *physics.World, reg *Registry, rng *rand.Rand, rec Recorder) *Spawner {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Spawner{
		cfg:     cfg,
		rng:     rng,
		factory: NewFactory(cfg, world, rng),
		reg:     reg,
		rec:     rec,
	}
}

// SetRecorder replaces the event recorder. nil disables recording.
func (s *Spawner) SetRecorder(rec Recorder) {
	if rec == nil {
		rec = nopRecorder{}
	}
	s.rec = rec
}

// Now returns the simulation clock.
func (s *Spawner) Now() time.Duration { return s.now }

// Advance moves the simulation clock forward.
func (s *Spawner) Advance(d time.Duration) { s.now += d }

// Registry returns the drop registry.
func (s *Spawner) Registry() *Registry { return s.reg }

// SpawnRain creates and registers a raindrop with its default velocity.
func (s *Spawner) SpawnRain(x, y float64, origin components.Origin) *physics.Body {
	b, drop := s.factory.Raindrop(x, y, origin)
	drop.BornAt = s.now
	s.reg.AddRain(b, drop)
	s.rec.RainSpawned(origin)
	return b
}

// SpawnRainWithVelocity creates a raindrop and overrides its velocity
// (reference units).
func (s *Spawner) SpawnRainWithVelocity(x, y, vx, vy float64, origin components.Origin) *physics.Body {
	b, drop := s.factory.Raindrop(x, y, origin)
	drop.BornAt = s.now
	s.factory.world.SetVelocity(b, vx, vy)
	s.reg.AddRain(b, drop)
	s.rec.RainSpawned(origin)
	return b
}

// SpawnSplash creates and registers a splash drop with its default velocity.
func (s *Spawner) SpawnSplash(x, y float64) *physics.Body {
	b, drop := s.factory.Splash(x, y, s.now)
	s.reg.AddSplash(b, drop)
	s.rec.SplashSpawned()
	return b
}

// SpawnSplashWithVelocity creates a splash drop and overrides its velocity.
func (s *Spawner) SpawnSplashWithVelocity(x, y, vx, vy float64) *physics.Body {
	b, drop := s.factory.Splash(x, y, s.now)
	s.factory.world.SetVelocity(b, vx, vy)
	s.reg.AddSplash(b, drop)
	s.rec.SplashSpawned()
	return b
}

// SplashAround spawns n splash drops at (x ± jitter, y - lift).
func (s *Spawner) SplashAround(x, y float64, n int, jitter, lift float64) {
	spread := config.Centered(jitter)
	for i := 0; i < n; i++ {
		s.SpawnSplash(x+spread.Sample(s.rng), y-lift)
	}
}

// RetireRain removes a raindrop. Returns false if it was already gone.
func (s *Spawner) RetireRain(b *physics.Body, cause components.Cause) bool {
	if !s.reg.RemoveRain(b) {
		return false
	}
	s.rec.RainRetired(cause)
	return true
}

// RetireSplash removes a splash drop. Returns false if it was already gone.
func (s *Spawner) RetireSplash(b *physics.Body, cause components.Cause) bool {
	drop, ok := s.reg.Splash(b)
	if !ok {
		return false
	}
	age := drop.Age(s.now)
	s.reg.RemoveSplash(b)
	s.rec.SplashRetired(cause, age)
	return true
}

// Clear retires every drop.
func (s *Spawner) Clear() (rain, splash int) {
	for _, r := range s.reg.Raindrops(nil) {
		if s.RetireRain(r.Body, components.CauseCleared) {
			rain++
		}
	}
	for _, sp := range s.reg.Splashes(nil) {
		if s.RetireSplash(sp.Body, components.CauseCleared) {
			splash++
		}
	}
	return rain, splash
}
