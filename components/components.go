// Package components defines ECS components for the simulation.
package components

import (
	"time"

	"github.com/pthm-cable/drizzle/config"
	"github.com/pthm-cable/drizzle/physics"
)

// Origin records what created a raindrop.
type Origin uint8

const (
	OriginTick    Origin = iota // Periodic spawn batch
	OriginDeflect               // Continuation after sliding off a circle
	OriginBurst                 // Pointer click burst
	numOrigins
)

// NumOrigins is the number of raindrop origins.
const NumOrigins = int(numOrigins)

func (o Origin) String() string {
	switch o {
	case OriginTick:
		return "tick"
	case OriginDeflect:
		return "deflect"
	case OriginBurst:
		return "burst"
	default:
		return "unknown"
	}
}

// Cause records why a drop was retired.
type Cause uint8

const (
	CauseOffscreen Cause = iota // Fell past the bottom margin
	CauseBottom                 // Reached the near-bottom band
	CauseCircle                 // Struck a decorative circle
	CauseSurface                // Struck the ground or a wall
	CauseAged                   // Splash outlived its maximum age
	CauseSettled                // Splash came to rest near the floor
	CauseCleared                // Removed by the user
	numCauses
)

// NumCauses is the number of retirement causes.
const NumCauses = int(numCauses)

func (c Cause) String() string {
	switch c {
	case CauseOffscreen:
		return "offscreen"
	case CauseBottom:
		return "bottom"
	case CauseCircle:
		return "circle"
	case CauseSurface:
		return "surface"
	case CauseAged:
		return "aged"
	case CauseSettled:
		return "settled"
	case CauseCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Raindrop holds the visual state of an elongated falling drop.
// Position and velocity live on the physics body.
type Raindrop struct {
	Width   float32       `inspect:"label,fmt:%.2f px"`
	Height  float32       `inspect:"label,fmt:%.1f px"`
	Opacity float32       `inspect:"bar"`
	Origin  Origin        `inspect:"label"`
	BornAt  time.Duration `inspect:"label"`
}

// SplashDrop holds the state of a small bouncing splash particle.
type SplashDrop struct {
	Radius  float32       `inspect:"label,fmt:%.2f px"`
	Opacity float32       `inspect:"bar"`
	BornAt  time.Duration `inspect:"label"`
}

// Age returns how long the splash has existed at time now.
func (s *SplashDrop) Age(now time.Duration) time.Duration {
	return now - s.BornAt
}

// PhysicsBody links an entity to its simulated body.
type PhysicsBody struct {
	Body *physics.Body `inspect:"skip"`
}

// ObstacleShape distinguishes static body geometry.
type ObstacleShape uint8

const (
	ShapeRect ObstacleShape = iota
	ShapeCircle
)

// Obstacle describes one static body and how to draw it.
type Obstacle struct {
	Shape         ObstacleShape
	X, Y          float64 // Centre in px
	Width, Height float64 // Rect extent
	Radius        float64 // Circle radius
	Visible       bool
	Fill          config.Color
	Stroke        config.Color
	StrokeWidth   float64
	Body          *physics.Body
}
