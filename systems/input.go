package systems

import (
	"math/rand"

	"github.com/pthm-cable/drizzle/components"
	"github.com/pthm-cable/drizzle/config"
)

// Burst spawns a cluster of fast raindrops around a pointer position.
func Burst(cfg *config.Config, sp *Spawner, rng *rand.Rand, x, y float64) int {
	bc := &cfg.Burst
	jitter := config.Centered(bc.Jitter)
	for i := 0; i < bc.Count; i++ {
		sp.SpawnRainWithVelocity(
			x+jitter.Sample(rng), y+jitter.Sample(rng),
			bc.VelX.Sample(rng), bc.VelY.Sample(rng),
			components.OriginBurst,
		)
	}
	return bc.Count
}
