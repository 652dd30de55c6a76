package systems

import (
	"math/rand"
	"time"

	"github.com/pthm-cable/drizzle/components"
	"github.com/pthm-cable/drizzle/config"
	"github.com/pthm-cable/drizzle/physics"
)

// Factory builds drop bodies with randomized parameters.
// Bodies are not part of the world until registered.
type Factory struct {
	cfg   *config.Config
	world *physics.World
	rng   *rand.Rand
}

// NewFactory creates a factory drawing from rng.
func NewFactory(cfg *config.Config, world *physics.World, rng *rand.Rand) *Factory {
	return &Factory{cfg: cfg, world: world, rng: rng}
}

// Raindrop builds an elongated raindrop centred at (x, y) with the default
// falling velocity.
func (f *Factory) Raindrop(x, y float64, origin components.Origin) (*physics.Body, components.Raindrop) {
	rc := &f.cfg.Raindrop
	w := rc.Width.Sample(f.rng)
	h := rc.Height.Sample(f.rng)

	b := f.world.NewRect(physics.KindRain, x, y, w, h, physics.Material{
		Density:       rc.Density,
		Friction:      rc.Friction,
		AirFriction:   rc.AirFriction,
		FixedRotation: true,
	})
	f.world.SetVelocity(b, rc.VelX.Sample(f.rng), rc.VelY.Sample(f.rng))

	return b, components.Raindrop{
		Width:   float32(w),
		Height:  float32(h),
		Opacity: float32(rc.Opacity.Sample(f.rng)),
		Origin:  origin,
	}
}

// Splash builds a small splash drop at (x, y) thrown upward, stamped with
// the simulation time now.
func (f *Factory) Splash(x, y float64, now time.Duration) (*physics.Body, components.SplashDrop) {
	sc := &f.cfg.Splash
	r := sc.Radius.Sample(f.rng)

	b := f.world.NewCircle(physics.KindSplash, x, y, r, physics.Material{
		Density:     sc.Density,
		Elasticity:  sc.Restitution,
		Friction:    sc.Friction,
		AirFriction: sc.AirFriction,
	})
	f.world.SetVelocity(b, sc.VelX.Sample(f.rng), sc.VelY.Sample(f.rng))

	return b, components.SplashDrop{
		Radius:  float32(r),
		Opacity: float32(sc.Opacity.Sample(f.rng)),
		BornAt:  now,
	}
}
