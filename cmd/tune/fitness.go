package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/drizzle/config"
	"github.com/pthm-cable/drizzle/game"
	"github.com/pthm-cable/drizzle/telemetry"
)

// unbalancedPenalty is added when a run's spawn/retire ledger does not add up.
const unbalancedPenalty = 10.0

// Targets are the steady-state drop counts the tuner fits to.
type Targets struct {
	Rain   float64
	Splash float64
}

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int64
	seeds       []int64
	baseConfig  *config.Config
	targets     Targets
	statsWindow float64
	warmup      int // Leading windows ignored while the screen fills

	mu          sync.Mutex
	lastRain    float64
	lastSplash  float64
	bestFitness float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []int64, baseCfg *config.Config, targets Targets) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		targets:     targets,
		statsWindow: 5.0,
		warmup:      1,
		bestFitness: math.Inf(1),
	}
}

// LastDensity returns the mean active rain and splash counts of the most
// recent evaluation.
func (fe *FitnessEvaluator) LastDensity() (rain, splash float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastRain, fe.lastSplash
}

// runResult holds the results from a single simulation run.
type runResult struct {
	windowStats []telemetry.WindowStats
	balanced    bool
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	rain    float64
	splash  float64
}

// Evaluate computes fitness for a parameter vector (lower = better): the
// relative distance of the mean drop counts from the targets.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(x, s)
			rain, splash := meanDensity(result.windowStats, fe.warmup)
			results[idx] = seedResult{
				fitness: fe.computeFitness(rain, splash, result.balanced),
				rain:    rain,
				splash:  splash,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalRain, totalSplash float64
	for _, r := range results {
		totalFitness += r.fitness
		totalRain += r.rain
		totalSplash += r.splash
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
	}
	fe.lastRain = totalRain / n
	fe.lastSplash = totalSplash / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless simulation run for maxTicks steps.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	// Each run gets its own config so parallel seeds share nothing
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{balanced: true}

	g := game.NewGameWithOptions(game.Options{
		Config:         cfg,
		Seed:           seed,
		Headless:       true,
		StatsWindowSec: fe.statsWindow,
		StepsPerUpdate: 1,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
			if !stats.LedgerBalanced {
				result.balanced = false
			}
		},
	})
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}

	return result
}

// computeFitness scores one run.
func (fe *FitnessEvaluator) computeFitness(rain, splash float64, balanced bool) float64 {
	fitness := relErr(rain, fe.targets.Rain) + relErr(splash, fe.targets.Splash)
	if !balanced {
		fitness += unbalancedPenalty
	}
	return fitness
}

// meanDensity averages the end-of-window drop counts, skipping warmup windows.
func meanDensity(windows []telemetry.WindowStats, warmup int) (rain, splash float64) {
	if len(windows) <= warmup {
		warmup = 0
	}
	windows = windows[warmup:]
	if len(windows) == 0 {
		return 0, 0
	}

	rs := make([]float64, len(windows))
	ss := make([]float64, len(windows))
	for i, w := range windows {
		rs[i] = float64(w.RainActive)
		ss[i] = float64(w.SplashActive)
	}
	return stat.Mean(rs, nil), stat.Mean(ss, nil)
}

func relErr(got, want float64) float64 {
	if want <= 0 {
		return 0
	}
	return math.Abs(got-want) / want
}
