// Package systems contains ECS systems for the simulation.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/drizzle/components"
	"github.com/pthm-cable/drizzle/physics"
)

// RainRef is a copy of one tracked raindrop, safe to hold while the
// registry is mutated.
type RainRef struct {
	Body *physics.Body
	Drop components.Raindrop
}

// SplashRef is a copy of one tracked splash drop.
type SplashRef struct {
	Body *physics.Body
	Drop components.SplashDrop
}

// Registry tracks the active drops. Every add and remove updates the ECS
// world and the physics world together, so the two never disagree.
type Registry struct {
	world *physics.World
	ecs   *ecs.World

	rainMap      *ecs.Map2[components.Raindrop, components.PhysicsBody]
	splashMap    *ecs.Map2[components.SplashDrop, components.PhysicsBody]
	rainFilter   *ecs.Filter2[components.Raindrop, components.PhysicsBody]
	splashFilter *ecs.Filter2[components.SplashDrop, components.PhysicsBody]

	entities map[*physics.Body]ecs.Entity

	numRain   int
	numSplash int
}

// NewRegistry creates an empty registry bound to a physics world.
func NewRegistry(world *physics.World) *Registry {
	w := ecs.NewWorld()
	return &Registry{
		world:        world,
		ecs:          w,
		rainMap:      ecs.NewMap2[components.Raindrop, components.PhysicsBody](w),
		splashMap:    ecs.NewMap2[components.SplashDrop, components.PhysicsBody](w),
		rainFilter:   ecs.NewFilter2[components.Raindrop, components.PhysicsBody](w),
		splashFilter: ecs.NewFilter2[components.SplashDrop, components.PhysicsBody](w),
		entities:     make(map[*physics.Body]ecs.Entity),
	}
}

// AddRain starts tracking a raindrop and adds its body to the world.
// Returns false if the body is already tracked.
func (r *Registry) AddRain(b *physics.Body, drop components.Raindrop) bool {
	if b == nil || b.Kind != physics.KindRain {
		return false
	}
	if _, ok := r.entities[b]; ok {
		return false
	}
	pb := components.PhysicsBody{Body: b}
	r.entities[b] = r.rainMap.NewEntity(&drop, &pb)
	r.world.Add(b)
	r.numRain++
	return true
}

// AddSplash starts tracking a splash drop and adds its body to the world.
func (r *Registry) AddSplash(b *physics.Body, drop components.SplashDrop) bool {
	if b == nil || b.Kind != physics.KindSplash {
		return false
	}
	if _, ok := r.entities[b]; ok {
		return false
	}
	pb := components.PhysicsBody{Body: b}
	r.entities[b] = r.splashMap.NewEntity(&drop, &pb)
	r.world.Add(b)
	r.numSplash++
	return true
}

// RemoveRain stops tracking a raindrop and removes its body from the world.
// Removing an untracked body is a no-op returning false.
func (r *Registry) RemoveRain(b *physics.Body) bool {
	e, ok := r.entities[b]
	if !ok || b.Kind != physics.KindRain {
		return false
	}
	delete(r.entities, b)
	r.ecs.RemoveEntity(e)
	r.world.Remove(b)
	r.numRain--
	return true
}

// RemoveSplash stops tracking a splash drop. See RemoveRain.
func (r *Registry) RemoveSplash(b *physics.Body) bool {
	e, ok := r.entities[b]
	if !ok || b.Kind != physics.KindSplash {
		return false
	}
	delete(r.entities, b)
	r.ecs.RemoveEntity(e)
	r.world.Remove(b)
	r.numSplash--
	return true
}

// IsRain reports whether b is a tracked raindrop.
func (r *Registry) IsRain(b *physics.Body) bool {
	if b == nil || b.Kind != physics.KindRain {
		return false
	}
	_, ok := r.entities[b]
	return ok
}

// IsSplash reports whether b is a tracked splash drop.
func (r *Registry) IsSplash(b *physics.Body) bool {
	if b == nil || b.Kind != physics.KindSplash {
		return false
	}
	_, ok := r.entities[b]
	return ok
}

// Raindrop returns the component of a tracked raindrop.
// The pointer is invalidated by the next add or remove.
func (r *Registry) Raindrop(b *physics.Body) (*components.Raindrop, bool) {
	if !r.IsRain(b) {
		return nil, false
	}
	drop, _ := r.rainMap.Get(r.entities[b])
	return drop, true
}

// Splash returns the component of a tracked splash drop.
func (r *Registry) Splash(b *physics.Body) (*components.SplashDrop, bool) {
	if !r.IsSplash(b) {
		return nil, false
	}
	drop, _ := r.splashMap.Get(r.entities[b])
	return drop, true
}

// RainCount returns the number of tracked raindrops.
func (r *Registry) RainCount() int { return r.numRain }

// SplashCount returns the number of tracked splash drops.
func (r *Registry) SplashCount() int { return r.numSplash }

// Raindrops appends a snapshot of every tracked raindrop to dst.
func (r *Registry) Raindrops(dst []RainRef) []RainRef {
	query := r.rainFilter.Query()
	for query.Next() {
		drop, pb := query.Get()
		dst = append(dst, RainRef{Body: pb.Body, Drop: *drop})
	}
	return dst
}

// Splashes appends a snapshot of every tracked splash drop to dst.
func (r *Registry) Splashes(dst []SplashRef) []SplashRef {
	query := r.splashFilter.Query()
	for query.Next() {
		drop, pb := query.Get()
		dst = append(dst, SplashRef{Body: pb.Body, Drop: *drop})
	}
	return dst
}

// EachRain calls fn for every tracked raindrop.
// fn must not add or remove drops.
func (r *Registry) EachRain(fn func(b *physics.Body, drop *components.Raindrop)) {
	query := r.rainFilter.Query()
	for query.Next() {
		drop, pb := query.Get()
		fn(pb.Body, drop)
	}
}

// EachSplash calls fn for every tracked splash drop.
// fn must not add or remove drops.
func (r *Registry) EachSplash(fn func(b *physics.Body, drop *components.SplashDrop)) {
	query := r.splashFilter.Query()
	for query.Next() {
		drop, pb := query.Get()
		fn(pb.Body, drop)
	}
}
