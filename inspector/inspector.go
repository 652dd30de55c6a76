// Package inspector finds the drop under the cursor and extracts its
// component fields for display.
package inspector

import (
	"time"

	"github.com/pthm-cable/drizzle/physics"
	"github.com/pthm-cable/drizzle/systems"
)

// HoverRadius is how far from the cursor a drop may be and still be picked.
const HoverRadius = 12.0

// Source is the simulation state the inspector reads.
type Source interface {
	Now() time.Duration
}

// Snapshot describes one inspected drop at the time of the last hover.
type Snapshot struct {
	Kind   physics.Kind
	X, Y   float64
	VX, VY float64
	Age    time.Duration
	Fields []Field
}

// Inspector tracks the drop under the cursor.
type Inspector struct {
	world *physics.World
	reg   *systems.Registry
	clock Source

	selected *Snapshot
}

// New creates an inspector over a simulation.
func New(sim *systems.Simulation) *Inspector {
	return NewWithSource(sim.World, sim.Registry, sim)
}

// NewWithSource creates an inspector from its parts.
func NewWithSource(world *physics.World, reg *systems.Registry, clock Source) *Inspector {
	return &Inspector{world: world, reg: reg, clock: clock}
}

// Hover picks the nearest drop to (x, y). The selection is cleared when
// nothing is within HoverRadius.
func (ins *Inspector) Hover(x, y float64) {
	ins.selected = ins.inspect(ins.world.Nearest(x, y, HoverRadius))
}

// Selection returns the current snapshot, or nil.
func (ins *Inspector) Selection() *Snapshot {
	return ins.selected
}

// Deselect clears the selection.
func (ins *Inspector) Deselect() {
	ins.selected = nil
}

func (ins *Inspector) inspect(b *physics.Body) *Snapshot {
	if b == nil {
		return nil
	}

	var (
		fields []Field
		bornAt time.Duration
	)
	switch b.Kind {
	case physics.KindRain:
		drop, ok := ins.reg.Raindrop(b)
		if !ok {
			return nil
		}
		fields = ExtractFields(drop)
		bornAt = drop.BornAt
	case physics.KindSplash:
		drop, ok := ins.reg.Splash(b)
		if !ok {
			return nil
		}
		fields = ExtractFields(drop)
		bornAt = drop.BornAt
	default:
		return nil
	}

	x, y := b.Position()
	vx, vy := b.Velocity()
	return &Snapshot{
		Kind:   b.Kind,
		X:      x,
		Y:      y,
		VX:     vx,
		VY:     vy,
		Age:    ins.clock.Now() - bornAt,
		Fields: fields,
	}
}
