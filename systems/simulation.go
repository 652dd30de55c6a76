package systems

import (
	"math/rand"
	"time"

	"github.com/pthm-cable/drizzle/config"
	"github.com/pthm-cable/drizzle/physics"
	"github.com/pthm-cable/drizzle/telemetry"
)

// PhaseTimer receives phase boundaries within a step.
type PhaseTimer interface {
	StartPhase(phase string)
}

type nopTimer struct{}

func (nopTimer) StartPhase(string) {}

// Simulation wires the physics world and the drop systems into one
// fixed-step pipeline: wind, physics step, collision batch, spawn tick.
// It has no rendering dependencies so it runs headless.
type Simulation struct {
	Cfg       *config.Config
	World     *physics.World
	Registry  *Registry
	Spawner   *Spawner
	Obstacles *Obstacles
	Lifecycle *Lifecycle
	Collision *Collision
	Wind      *Wind

	rng   *rand.Rand
	view  Viewport
	steps int64
	ticks int64

	pairs []physics.Pair
}

// NewSimulation builds a simulation for view. rec may be nil.
func NewSimulation(cfg *config.Config, view Viewport, seed int64, rec Recorder) *Simulation {
	rng := rand.New(rand.NewSource(seed))
	world := physics.NewWorld(cfg.Physics.Gravity, cfg.Physics.ReferenceRate)
	reg := NewRegistry(world)
	sp := NewSpawner(cfg, world, reg, rng, rec)
	obstacles := NewObstacles(cfg, world)

	s := &Simulation{
		Cfg:       cfg,
		World:     world,
		Registry:  reg,
		Spawner:   sp,
		Obstacles: obstacles,
		Lifecycle: NewLifecycle(cfg, sp, rng),
		Collision: NewCollision(cfg, sp, obstacles, rng),
		Wind:      NewWind(cfg, seed),
		rng:       rng,
	}

	// Pairs are buffered so collision handling shows up as its own phase.
	world.OnCollisionStart(func(batch []physics.Pair) {
		s.pairs = append(s.pairs, batch...)
	})

	s.Resize(view)
	return s
}

// Step advances one fixed physics step. Returns the number of spawn ticks run.
func (s *Simulation) Step(timer PhaseTimer) int {
	if timer == nil {
		timer = nopTimer{}
	}
	dt := s.Cfg.Derived.StepDuration

	timer.StartPhase(telemetry.PhaseWind)
	s.Wind.Update(s.World, s.Spawner.Now())

	timer.StartPhase(telemetry.PhasePhysics)
	s.World.Step(s.Cfg.Physics.DT)
	s.Spawner.Advance(dt)

	timer.StartPhase(telemetry.PhaseCollision)
	if len(s.pairs) > 0 {
		s.Collision.Handle(s.pairs)
		s.pairs = s.pairs[:0]
	}

	timer.StartPhase(telemetry.PhaseLifecycle)
	ticks := s.Lifecycle.Update(dt, s.view)

	s.steps++
	s.ticks += int64(ticks)
	return ticks
}

// Resize rebuilds the obstacles for a new viewport.
func (s *Simulation) Resize(view Viewport) {
	s.view = view
	s.Obstacles.Build(view)
}

// Burst spawns a click burst at (x, y).
func (s *Simulation) Burst(x, y float64) int {
	return Burst(s.Cfg, s.Spawner, s.rng, x, y)
}

// Clear retires every drop.
func (s *Simulation) Clear() (rain, splash int) {
	return s.Spawner.Clear()
}

// View returns the current viewport.
func (s *Simulation) View() Viewport { return s.view }

// Now returns the simulation clock.
func (s *Simulation) Now() time.Duration { return s.Spawner.Now() }

// Steps returns the number of physics steps run.
func (s *Simulation) Steps() int64 { return s.steps }

// Ticks returns the number of spawn ticks run.
func (s *Simulation) Ticks() int64 { return s.ticks }
