package telemetry

import (
	"time"

	"github.com/pthm-cable/drizzle/components"
)

// Collector accumulates drop events within step windows and produces
// WindowStats. It also keeps a cumulative Ledger.
type Collector struct {
	windowDurationSec   float64
	windowDurationSteps int64
	dt                  float64

	windowStartStep int64

	// Current window
	rainByOrigin  [components.NumOrigins]int
	rainByCause   [components.NumCauses]int
	splashSpawned int
	splashByCause [components.NumCauses]int
	splashAges    []float64 // milliseconds

	ledger Ledger
}

// NewCollector creates a collector.
// windowDurationSec: simulation seconds per stats window
// dt: seconds per physics step
func NewCollector(windowDurationSec, dt float64) *Collector {
	steps := int64(windowDurationSec / dt)
	if steps < 1 {
		steps = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationSteps: steps,
		dt:                  dt,
	}
}

// RainSpawned records a new raindrop.
func (c *Collector) RainSpawned(origin components.Origin) {
	c.rainByOrigin[origin]++
	c.ledger.RainByOrigin[origin]++
}

// RainRetired records a removed raindrop.
func (c *Collector) RainRetired(cause components.Cause) {
	c.rainByCause[cause]++
	c.ledger.RainByCause[cause]++
}

// SplashSpawned records a new splash drop.
func (c *Collector) SplashSpawned() {
	c.splashSpawned++
	c.ledger.SplashSpawned++
}

// SplashRetired records a removed splash drop and its age.
func (c *Collector) SplashRetired(cause components.Cause, age time.Duration) {
	c.splashByCause[cause]++
	c.ledger.SplashByCause[cause]++
	c.splashAges = append(c.splashAges, float64(age)/float64(time.Millisecond))
	if age > c.ledger.MaxSplashAge {
		c.ledger.MaxSplashAge = age
	}
}

// Ledger returns the cumulative counts.
func (c *Collector) Ledger() Ledger {
	return c.ledger
}

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush(currentStep int64) bool {
	return currentStep-c.windowStartStep >= c.windowDurationSteps
}

// Flush produces a WindowStats and resets the window counters.
// rainCount and splashCount are the active drops at window end.
func (c *Collector) Flush(currentStep int64, rainCount, splashCount int) WindowStats {
	ageMean, ageP50, ageP90, ageMax := ComputeAgeStats(c.splashAges)

	var rainSpawned, rainRetired, splashRetired int
	for _, v := range c.rainByOrigin {
		rainSpawned += v
	}
	for _, v := range c.rainByCause {
		rainRetired += v
	}
	for _, v := range c.splashByCause {
		splashRetired += v
	}

	var splashPerHit float64
	if hits := c.rainByCause[components.CauseCircle] + c.rainByCause[components.CauseSurface] + c.rainByCause[components.CauseBottom]; hits > 0 {
		splashPerHit = float64(c.splashSpawned) / float64(hits)
	}

	stats := WindowStats{
		WindowStartStep: c.windowStartStep,
		WindowEndStep:   currentStep,
		SimTimeSec:      float64(currentStep) * c.dt,

		RainActive:   rainCount,
		SplashActive: splashCount,

		RainSpawned:  rainSpawned,
		RainTick:     c.rainByOrigin[components.OriginTick],
		RainDeflect:  c.rainByOrigin[components.OriginDeflect],
		RainBurst:    c.rainByOrigin[components.OriginBurst],
		RainRetired:  rainRetired,
		HitsCircle:   c.rainByCause[components.CauseCircle],
		HitsSurface:  c.rainByCause[components.CauseSurface],
		RainBottom:   c.rainByCause[components.CauseBottom],
		RainOffscrn:  c.rainByCause[components.CauseOffscreen],
		SplashPerHit: splashPerHit,

		SplashSpawned:  c.splashSpawned,
		SplashRetired:  splashRetired,
		SplashAged:     c.splashByCause[components.CauseAged],
		SplashSettled:  c.splashByCause[components.CauseSettled],
		SplashOffscrn:  c.splashByCause[components.CauseOffscreen],
		SplashAgeMean:  ageMean,
		SplashAgeP50:   ageP50,
		SplashAgeP90:   ageP90,
		SplashAgeMax:   ageMax,
		Cleared:        c.rainByCause[components.CauseCleared] + c.splashByCause[components.CauseCleared],
		TotalSpawned:   c.ledger.RainSpawned(),
		TotalRetired:   c.ledger.RainRetired(),
		LedgerBalanced: c.ledger.Balanced(rainCount, splashCount),
	}

	c.windowStartStep = currentStep
	c.rainByOrigin = [components.NumOrigins]int{}
	c.rainByCause = [components.NumCauses]int{}
	c.splashSpawned = 0
	c.splashByCause = [components.NumCauses]int{}
	c.splashAges = c.splashAges[:0]

	return stats
}

// WindowDurationSteps returns the number of steps per window.
func (c *Collector) WindowDurationSteps() int64 {
	return c.windowDurationSteps
}
