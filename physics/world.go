// Package physics wraps a Chipmunk2D space with the small contract the rain
// simulation needs: body construction, add/remove, velocity, stepping and
// batched collision-start notifications.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Kind classifies a body for collision filtering.
type Kind uint8

const (
	KindObstacle Kind = iota
	KindRain
	KindSplash
	numKinds
)

func (k Kind) String() string {
	switch k {
	case KindObstacle:
		return "obstacle"
	case KindRain:
		return "rain"
	case KindSplash:
		return "splash"
	default:
		return "unknown"
	}
}

// Collision categories. Drops only ever touch obstacles.
const (
	CategoryObstacle uint = 1 << iota
	CategoryRain
	CategorySplash
)

// rainGroup puts every raindrop in one non-zero group so cp skips rain-rain pairs.
const rainGroup uint = 1

const (
	collisionObstacle cp.CollisionType = iota + 1
	collisionRain
	collisionSplash
)

// Material describes the physical response of a body.
type Material struct {
	Density     float64 // Mass per px²
	Elasticity  float64
	Friction    float64
	AirFriction float64 // Fraction of velocity lost per reference frame
	// FixedRotation gives the body infinite moment so it never tumbles.
	FixedRotation bool
}

// Body is a single-shape body owned by a World.
type Body struct {
	Kind  Kind
	body  *cp.Body
	shape *cp.Shape
	world *World
}

// Pair is one collision-start contact.
type Pair struct {
	A, B *Body
}

// Other returns the member of the pair that is not b.
func (p Pair) Other(b *Body) *Body {
	if p.A == b {
		return p.B
	}
	return p.A
}

// World is the physics simulation. Not safe for concurrent use.
type World struct {
	space         *cp.Space
	referenceRate float64
	gravityY      float64
	windX         float64

	pending   []Pair
	listeners []func([]Pair)

	counts [numKinds]int
}

// NewWorld creates a world with downward gravity in px/s².
// referenceRate is the frame rate velocity units are expressed in.
func NewWorld(gravity, referenceRate float64) *World {
	w := &World{
		space:         cp.NewSpace(),
		referenceRate: referenceRate,
		gravityY:      gravity,
	}
	w.space.SetGravity(cp.Vector{X: 0, Y: gravity})

	// Raindrops are retired on first contact, so the contact itself is
	// ignored and only recorded for the post-step batch.
	h := w.space.NewWildcardCollisionHandler(collisionRain)
	h.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
		a, b := arb.Shapes()
		w.record(a, b)
		return false
	}

	return w
}

func (w *World) record(a, b *cp.Shape) {
	ba, okA := a.UserData.(*Body)
	bb, okB := b.UserData.(*Body)
	if !okA || !okB {
		return
	}
	w.pending = append(w.pending, Pair{A: ba, B: bb})
}

// OnCollisionStart registers fn to receive the collision-start pairs of
// each step. fn runs after the step completes, so it may add and remove
// bodies freely.
func (w *World) OnCollisionStart(fn func([]Pair)) {
	w.listeners = append(w.listeners, fn)
}

// Step advances the simulation by dt seconds and delivers collision batches.
func (w *World) Step(dt float64) {
	w.space.Step(dt)

	if len(w.pending) == 0 {
		return
	}
	batch := w.pending
	w.pending = nil
	for _, fn := range w.listeners {
		fn(batch)
	}
}

// SetWind sets the horizontal gravity component in px/s².
func (w *World) SetWind(ax float64) {
	w.windX = ax
	w.space.SetGravity(cp.Vector{X: ax, Y: w.gravityY})
}

// Gravity returns the current gravity vector in px/s².
func (w *World) Gravity() (x, y float64) {
	return w.windX, w.gravityY
}

// NewRect creates an axis-aligned box centred at (x, y). The body is not
// part of the simulation until Add is called.
func (w *World) NewRect(kind Kind, x, y, width, height float64, m Material) *Body {
	body := w.newCPBody(kind, m, m.Density*width*height, func(mass float64) float64 {
		return cp.MomentForBox(mass, width, height)
	})
	shape := cp.NewBox(body, width, height, 0)
	return w.finish(kind, body, shape, x, y, m)
}

// NewCircle creates a circle centred at (x, y). See NewRect.
func (w *World) NewCircle(kind Kind, x, y, radius float64, m Material) *Body {
	body := w.newCPBody(kind, m, m.Density*math.Pi*radius*radius, func(mass float64) float64 {
		return cp.MomentForCircle(mass, 0, radius, cp.Vector{})
	})
	shape := cp.NewCircle(body, radius, cp.Vector{})
	return w.finish(kind, body, shape, x, y, m)
}

func (w *World) newCPBody(kind Kind, m Material, mass float64, moment func(float64) float64) *cp.Body {
	if kind == KindObstacle {
		return cp.NewStaticBody()
	}
	if mass <= 0 {
		mass = 1e-6
	}
	i := math.Inf(1)
	if !m.FixedRotation {
		i = moment(mass)
	}
	body := cp.NewBody(mass, i)

	if m.AirFriction > 0 {
		keep := 1 - m.AirFriction
		rate := w.referenceRate
		body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
			cp.BodyUpdateVelocity(b, gravity, damping*math.Pow(keep, dt*rate), dt)
		})
	}
	return body
}

func (w *World) finish(kind Kind, body *cp.Body, shape *cp.Shape, x, y float64, m Material) *Body {
	body.SetPosition(cp.Vector{X: x, Y: y})

	shape.SetElasticity(m.Elasticity)
	shape.SetFriction(m.Friction)
	shape.SetFilter(filterFor(kind))
	shape.SetCollisionType(collisionFor(kind))

	b := &Body{Kind: kind, body: body, shape: shape, world: w}
	shape.UserData = b
	return b
}

func filterFor(kind Kind) cp.ShapeFilter {
	switch kind {
	case KindRain:
		return cp.NewShapeFilter(rainGroup, CategoryRain, CategoryObstacle)
	case KindSplash:
		return cp.NewShapeFilter(0, CategorySplash, CategoryObstacle)
	default:
		return cp.NewShapeFilter(0, CategoryObstacle, CategoryRain|CategorySplash)
	}
}

func collisionFor(kind Kind) cp.CollisionType {
	switch kind {
	case KindRain:
		return collisionRain
	case KindSplash:
		return collisionSplash
	default:
		return collisionObstacle
	}
}

// Add inserts bodies into the simulation. Bodies already present are skipped.
func (w *World) Add(bodies ...*Body) {
	for _, b := range bodies {
		if b == nil || w.space.ContainsBody(b.body) {
			continue
		}
		w.space.AddBody(b.body)
		w.space.AddShape(b.shape)
		w.counts[b.Kind]++
	}
}

// Remove takes bodies out of the simulation. Absent bodies are skipped.
// Returns the number of bodies actually removed.
func (w *World) Remove(bodies ...*Body) int {
	removed := 0
	for _, b := range bodies {
		if !w.Contains(b) {
			continue
		}
		w.space.RemoveShape(b.shape)
		w.space.RemoveBody(b.body)
		w.counts[b.Kind]--
		removed++
	}
	return removed
}

// Contains reports whether b is currently simulated.
func (w *World) Contains(b *Body) bool {
	return b != nil && w.space.ContainsBody(b.body)
}

// Count returns the number of simulated bodies of a kind.
func (w *World) Count(kind Kind) int {
	return w.counts[kind]
}

// SetVelocity sets the velocity in reference units (px per reference frame).
func (w *World) SetVelocity(b *Body, vx, vy float64) {
	b.body.SetVelocity(vx*w.referenceRate, vy*w.referenceRate)
}

// Nearest returns the drop closest to (x, y) within maxDistance, or nil.
func (w *World) Nearest(x, y, maxDistance float64) *Body {
	filter := cp.NewShapeFilter(0, ^uint(0), CategoryRain|CategorySplash)
	info := w.space.PointQueryNearest(cp.Vector{X: x, Y: y}, maxDistance, filter)
	if info == nil || info.Shape == nil {
		return nil
	}
	b, _ := info.Shape.UserData.(*Body)
	return b
}

// Position returns the body centre in pixels.
func (b *Body) Position() (x, y float64) {
	p := b.body.Position()
	return p.X, p.Y
}

// Velocity returns the velocity in reference units.
func (b *Body) Velocity() (vx, vy float64) {
	v := b.body.Velocity()
	r := b.world.referenceRate
	return v.X / r, v.Y / r
}

// Angle returns the body rotation in radians.
func (b *Body) Angle() float64 {
	return b.body.Angle()
}
