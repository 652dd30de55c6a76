package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/drizzle/components"
	"github.com/pthm-cable/drizzle/config"
	"github.com/pthm-cable/drizzle/physics"
)

// Collision turns raindrop contacts into splashes. A drop striking a
// decorative circle also sheds a deflected raindrop so rain appears to
// slide off curved surfaces.
type Collision struct {
	cfg       *config.Config
	sp        *Spawner
	obstacles *Obstacles
	rng       *rand.Rand
}

// NewCollision creates the collision handler.
func NewCollision(cfg *config.Config, sp *Spawner, obstacles *Obstacles, rng *rand.Rand) *Collision {
	return &Collision{cfg: cfg, sp: sp, obstacles: obstacles, rng: rng}
}

// Handle processes one step's collision-start pairs. Pairs whose raindrop
// was already retired earlier in the batch are skipped.
func (c *Collision) Handle(pairs []physics.Pair) {
	reg := c.sp.Registry()
	for _, p := range pairs {
		var drop *physics.Body
		switch {
		case reg.IsRain(p.A):
			drop = p.A
		case reg.IsRain(p.B):
			drop = p.B
		default:
			continue
		}
		other := p.Other(drop)

		if circle, ok := c.obstacles.Circle(other); ok {
			c.circleHit(drop, circle)
			c.sp.RetireRain(drop, components.CauseCircle)
		} else {
			c.surfaceHit(drop)
			c.sp.RetireRain(drop, components.CauseSurface)
		}
	}
}

func (c *Collision) circleHit(drop *physics.Body, circle components.Obstacle) {
	ic := &c.cfg.Impact.Circle
	x, y := drop.Position()
	theta := math.Atan2(y-circle.Y, x-circle.X)

	spread := config.Centered(c.cfg.Derived.SpreadRad)
	n := ic.Splashes.Sample(c.rng)
	for i := 0; i < n; i++ {
		a := theta + spread.Sample(c.rng)
		d := ic.Distance.Sample(c.rng)
		cos, sin := math.Cos(a), math.Sin(a)
		c.sp.SpawnSplashWithVelocity(
			x+cos*d, y+sin*d,
			cos*ic.Speed.Sample(c.rng),
			sin*ic.Lift.Sample(c.rng)-ic.LiftBias,
		)
	}

	dc := &c.cfg.Impact.Deflect
	a := theta + config.Centered(c.cfg.Derived.DeflectRad).Sample(c.rng)
	d := dc.Distance.Sample(c.rng)
	cos, sin := math.Cos(a), math.Sin(a)
	c.sp.SpawnRainWithVelocity(
		x+cos*d, y+sin*d,
		cos*dc.SpeedX.Sample(c.rng),
		dc.SpeedY.Sample(c.rng),
		components.OriginDeflect,
	)
}

func (c *Collision) surfaceHit(drop *physics.Body) {
	sc := &c.cfg.Impact.Surface
	x, y := drop.Position()
	c.sp.SplashAround(x, y, sc.Splashes.Sample(c.rng), sc.Jitter, sc.Lift)
}
