package systems

import (
	"math/rand"
	"testing"
	"time"

	"github.com/pthm-cable/drizzle/components"
	"github.com/pthm-cable/drizzle/config"
	"github.com/pthm-cable/drizzle/physics"
)

var testView = Viewport{Width: 800, Height: 600}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

// countingRecorder tallies events and tracks the oldest retired splash.
type countingRecorder struct {
	rainSpawned   map[components.Origin]int
	rainRetired   map[components.Cause]int
	splashSpawned int
	splashRetired map[components.Cause]int
	maxSplashAge  time.Duration
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		rainSpawned:   make(map[components.Origin]int),
		rainRetired:   make(map[components.Cause]int),
		splashRetired: make(map[components.Cause]int),
	}
}

func (r *countingRecorder) RainSpawned(o components.Origin) { r.rainSpawned[o]++ }
func (r *countingRecorder) RainRetired(c components.Cause)  { r.rainRetired[c]++ }
func (r *countingRecorder) SplashSpawned()                  { r.splashSpawned++ }
func (r *countingRecorder) SplashRetired(c components.Cause, age time.Duration) {
	r.splashRetired[c]++
	if age > r.maxSplashAge {
		r.maxSplashAge = age
	}
}

// liveEntities returns the number of live entities in the registry's ECS world.
func liveEntities(reg *Registry) int {
	return reg.ecs.Stats().Entities.Used
}

func sum[K comparable](m map[K]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

// rig is a bare set of systems without the Simulation step loop.
type rig struct {
	cfg       *config.Config
	world     *physics.World
	reg       *Registry
	sp        *Spawner
	obstacles *Obstacles
	rng       *rand.Rand
	rec       *countingRecorder
}

func newRig(t *testing.T) *rig {
	t.Helper()
	cfg := testConfig(t)
	world := physics.NewWorld(cfg.Physics.Gravity, cfg.Physics.ReferenceRate)
	reg := NewRegistry(world)
	rng := rand.New(rand.NewSource(1))
	rec := newCountingRecorder()
	return &rig{
		cfg:       cfg,
		world:     world,
		reg:       reg,
		sp:        NewSpawner(cfg, world, reg, rng, rec),
		obstacles: NewObstacles(cfg, world),
		rng:       rng,
		rec:       rec,
	}
}

// newSplashes returns the splashes not present in before.
func newSplashes(reg *Registry, before []SplashRef) []SplashRef {
	seen := make(map[*physics.Body]bool, len(before))
	for _, s := range before {
		seen[s.Body] = true
	}
	var out []SplashRef
	for _, s := range reg.Splashes(nil) {
		if !seen[s.Body] {
			out = append(out, s)
		}
	}
	return out
}
