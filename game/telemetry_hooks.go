package game

import "log/slog"

// flushTelemetry writes layout and perf stats when a window closes.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush() {
		return
	}

	stats := g.collector.Flush()
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteLayout(stats); err != nil {
			slog.Error("failed to write layout stats", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.Frame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
