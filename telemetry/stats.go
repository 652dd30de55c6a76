package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one window.
type WindowStats struct {
	WindowStartStep int64   `csv:"-"`
	WindowEndStep   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Active drops at window end
	RainActive   int `csv:"rain"`
	SplashActive int `csv:"splash"`

	// Raindrops during window
	RainSpawned  int     `csv:"rain_spawned"`
	RainTick     int     `csv:"rain_tick"`
	RainDeflect  int     `csv:"rain_deflect"`
	RainBurst    int     `csv:"rain_burst"`
	RainRetired  int     `csv:"rain_retired"`
	HitsCircle   int     `csv:"hits_circle"`
	HitsSurface  int     `csv:"hits_surface"`
	RainBottom   int     `csv:"rain_bottom"`
	RainOffscrn  int     `csv:"rain_offscreen"`
	SplashPerHit float64 `csv:"splash_per_hit"`

	// Splash drops during window
	SplashSpawned int     `csv:"splash_spawned"`
	SplashRetired int     `csv:"splash_retired"`
	SplashAged    int     `csv:"splash_aged"`
	SplashSettled int     `csv:"splash_settled"`
	SplashOffscrn int     `csv:"splash_offscreen"`
	SplashAgeMean float64 `csv:"splash_age_mean_ms"`
	SplashAgeP50  float64 `csv:"splash_age_p50_ms"`
	SplashAgeP90  float64 `csv:"splash_age_p90_ms"`
	SplashAgeMax  float64 `csv:"splash_age_max_ms"`

	Cleared int `csv:"cleared"`

	// Cumulative
	TotalSpawned   int  `csv:"total_spawned"`
	TotalRetired   int  `csv:"total_retired"`
	LedgerBalanced bool `csv:"balanced"`
}

// ComputeAgeStats returns the mean, median, 90th percentile and maximum of
// values. Returns zeros for an empty slice.
func ComputeAgeStats(values []float64) (mean, p50, p90, peak float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	peak = sorted[len(sorted)-1]
	return mean, p50, p90, peak
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_end", s.WindowEndStep),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("rain", s.RainActive),
		slog.Int("splash", s.SplashActive),
		slog.Int("rain_spawned", s.RainSpawned),
		slog.Int("rain_retired", s.RainRetired),
		slog.Int("splash_spawned", s.SplashSpawned),
		slog.Int("splash_retired", s.SplashRetired),
		slog.Float64("splash_age_p90_ms", s.SplashAgeP90),
		slog.Bool("balanced", s.LedgerBalanced),
	)
}

// LogStats logs the window at Info.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndStep,
		"sim_time", s.SimTimeSec,
		"rain", s.RainActive,
		"splash", s.SplashActive,
		"rain_spawned", s.RainSpawned,
		"rain_deflect", s.RainDeflect,
		"rain_burst", s.RainBurst,
		"rain_retired", s.RainRetired,
		"hits_circle", s.HitsCircle,
		"hits_surface", s.HitsSurface,
		"rain_bottom", s.RainBottom,
		"rain_offscreen", s.RainOffscrn,
		"splash_per_hit", s.SplashPerHit,
		"splash_spawned", s.SplashSpawned,
		"splash_aged", s.SplashAged,
		"splash_settled", s.SplashSettled,
		"splash_offscreen", s.SplashOffscrn,
		"splash_age_mean_ms", s.SplashAgeMean,
		"splash_age_p50_ms", s.SplashAgeP50,
		"splash_age_p90_ms", s.SplashAgeP90,
		"splash_age_max_ms", s.SplashAgeMax,
		"cleared", s.Cleared,
		"balanced", s.LedgerBalanced,
	)
}
