package systems

import (
	"github.com/pthm-cable/drizzle/components"
	"github.com/pthm-cable/drizzle/config"
	"github.com/pthm-cable/drizzle/physics"
)

// Viewport is the drawable area in pixels.
type Viewport struct {
	Width, Height float64
}

// Obstacles owns the static bodies: an invisible ground and side walls,
// plus the decorative circles placed as fractions of the viewport.
type Obstacles struct {
	cfg   *config.Config
	world *physics.World

	items  []components.Obstacle
	byBody map[*physics.Body]int
	view   Viewport
}

// NewObstacles creates an empty obstacle set. Call Build to populate it.
func NewObstacles(cfg *config.Config, world *physics.World) *Obstacles {
	return &Obstacles{
		cfg:    cfg,
		world:  world,
		byBody: make(map[*physics.Body]int),
	}
}

// Build removes every existing obstacle and recreates the set for view.
func (o *Obstacles) Build(view Viewport) {
	for _, it := range o.items {
		o.world.Remove(it.Body)
	}
	o.items = o.items[:0]
	clear(o.byBody)
	o.view = view

	oc := &o.cfg.Obstacles
	mat := physics.Material{Elasticity: oc.Elasticity, Friction: oc.Friction}
	w, h := view.Width, view.Height

	o.addRect(w/2, h-oc.GroundThickness/2, w, oc.GroundThickness, mat)
	o.addRect(-oc.WallThickness/2, h/2, oc.WallThickness, h, mat)
	o.addRect(w+oc.WallThickness/2, h/2, oc.WallThickness, h, mat)

	for _, c := range oc.Circles {
		x, y := c.FX*w, c.FY*h
		b := o.world.NewCircle(physics.KindObstacle, x, y, c.Radius, mat)
		o.add(components.Obstacle{
			Shape:       components.ShapeCircle,
			X:           x,
			Y:           y,
			Radius:      c.Radius,
			Visible:     true,
			Fill:        oc.Fill,
			Stroke:      oc.Stroke,
			StrokeWidth: oc.StrokeWidth,
			Body:        b,
		})
	}
}

func (o *Obstacles) addRect(x, y, w, h float64, mat physics.Material) {
	b := o.world.NewRect(physics.KindObstacle, x, y, w, h, mat)
	o.add(components.Obstacle{
		Shape:  components.ShapeRect,
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		Body:   b,
	})
}

func (o *Obstacles) add(ob components.Obstacle) {
	o.byBody[ob.Body] = len(o.items)
	o.items = append(o.items, ob)
	o.world.Add(ob.Body)
}

// Lookup returns the obstacle owning body b.
func (o *Obstacles) Lookup(b *physics.Body) (components.Obstacle, bool) {
	i, ok := o.byBody[b]
	if !ok {
		return components.Obstacle{}, false
	}
	return o.items[i], true
}

// Circle returns the decorative circle owning body b.
func (o *Obstacles) Circle(b *physics.Body) (components.Obstacle, bool) {
	ob, ok := o.Lookup(b)
	if !ok || ob.Shape != components.ShapeCircle {
		return components.Obstacle{}, false
	}
	return ob, true
}

// All returns the current obstacles. The slice is reused by Build.
func (o *Obstacles) All() []components.Obstacle { return o.items }

// Viewport returns the viewport the set was last built for.
func (o *Obstacles) Viewport() Viewport { return o.view }
