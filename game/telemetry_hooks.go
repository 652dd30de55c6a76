package game

import "log/slog"

// flushTelemetry emits a stats window once enough steps have run.
func (g *Game) flushTelemetry() {
	step := g.sim.Steps()
	if !g.collector.ShouldFlush(step) {
		return
	}

	stats := g.collector.Flush(step, g.sim.Registry.RainCount(), g.sim.Registry.SplashCount())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if !stats.LedgerBalanced {
		slog.Warn("drop ledger out of balance",
			"total_spawned", stats.TotalSpawned,
			"total_retired", stats.TotalRetired,
			"rain", stats.RainActive,
			"splash", stats.SplashActive,
		)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndStep); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
