package systems

import (
	"math"
	"time"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/drizzle/config"
	"github.com/pthm-cable/drizzle/physics"
)

// Wind drifts rain sideways by steering the horizontal gravity component
// along a slow noise curve.
type Wind struct {
	cfg   *config.Config
	noise opensimplex.Noise
	accel float64
}

// NewWind creates a wind system seeded for reproducible gusts.
func NewWind(cfg *config.Config, seed int64) *Wind {
	return &Wind{cfg: cfg, noise: opensimplex.New(seed)}
}

// Update samples the gust at simulation time now and applies it to world.
func (w *Wind) Update(world *physics.World, now time.Duration) {
	wc := &w.cfg.Wind
	if wc.Strength == 0 {
		if w.accel != 0 {
			w.accel = 0
			world.SetWind(0)
		}
		return
	}
	n := w.noise.Eval2(now.Seconds()*wc.Frequency, 0)
	w.accel = wc.Strength * math.Max(-1, math.Min(1, n))
	world.SetWind(w.accel)
}

// Accel returns the last applied horizontal acceleration in px/s².
func (w *Wind) Accel() float64 { return w.accel }
