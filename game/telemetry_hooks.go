package game

import (
	"log/slog"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles alerts.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.step) {
		return
	}

	stats := g.collector.Flush(g.step, g.sampleCores())
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
		g.logCoreStatus()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndStep); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, a := range g.alertDetector.Check(stats) {
		if g.logStats {
			a.LogAlert()
		}
		if err := g.outputManager.WriteAlert(a); err != nil {
			slog.Error("failed to write alert", "error", err)
		}
		if a.Type == telemetry.AlertShutdown {
			g.saveSnapshot(string(a.Type))
		}
	}
}

// sampleCores collects one sample per worn core.
func (g *Game) sampleCores() []telemetry.CoreSample {
	var samples []telemetry.CoreSample
	query := g.agentFilter.Query()
	for query.Next() {
		_, eq, _, _, _, _ := query.Get()
		if eq.Core == nil {
			continue
		}
		s := eq.Core.State(g.engine)
		b := g.engine.Balance(nil, s)
		samples = append(samples, telemetry.CoreSample{
			Fraction:   b.Fraction,
			Drain:      b.Drain,
			Generation: b.Generation,
			Active:     len(g.engine.ActiveUpgrades(nil, s)),
			Mode:       int(b.Mode),
		})
	}
	return samples
}
