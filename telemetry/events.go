// Package telemetry provides drop lifecycle counters, step timing and CSV output.
package telemetry

import (
	"time"

	"github.com/pthm-cable/drizzle/components"
)

// Ledger holds cumulative spawn and retirement counts since start.
// A consistent run always satisfies spawned = retired + active.
type Ledger struct {
	RainByOrigin  [components.NumOrigins]int
	RainByCause   [components.NumCauses]int
	SplashSpawned int
	SplashByCause [components.NumCauses]int

	// MaxSplashAge is the oldest splash seen at retirement.
	MaxSplashAge time.Duration
}

// RainSpawned returns the total raindrops created.
func (l *Ledger) RainSpawned() int {
	n := 0
	for _, v := range l.RainByOrigin {
		n += v
	}
	return n
}

// RainRetired returns the total raindrops removed.
func (l *Ledger) RainRetired() int {
	n := 0
	for _, v := range l.RainByCause {
		n += v
	}
	return n
}

// SplashRetired returns the total splash drops removed.
func (l *Ledger) SplashRetired() int {
	n := 0
	for _, v := range l.SplashByCause {
		n += v
	}
	return n
}

// Balanced reports whether the ledger agrees with the active counts.
func (l *Ledger) Balanced(activeRain, activeSplash int) bool {
	return l.RainSpawned() == l.RainRetired()+activeRain &&
		l.SplashSpawned == l.SplashRetired()+activeSplash
}
