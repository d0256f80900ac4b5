package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a step window.
type WindowStats struct {
	WindowStartStep uint64  `csv:"-"`
	WindowEndStep   uint64  `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Cores sampled at window end
	Cores       int `csv:"cores"`
	ActiveTotal int `csv:"active_upgrades"`

	// Passive drain during window
	DrainEvents     int    `csv:"drain_events"`
	DrainTotal      uint64 `csv:"drain_total"`
	ShortfallEvents int    `csv:"shortfall_events"`
	ShortfallTotal  uint64 `csv:"shortfall_total"`

	// State transitions
	ModeChanges     int `csv:"mode_changes"`
	Conflicts       int `csv:"conflicts"`
	PenaltiesLapsed int `csv:"penalties_lapsed"`

	// Active abilities
	AbilityUses   int    `csv:"ability_uses"`
	AbilityDenied int    `csv:"ability_denied"`
	AbilityEnergy uint64 `csv:"ability_energy"`

	EnergySaved uint64 `csv:"energy_saved"` // Drain and ability savings from efficiency
	BatteryIn   uint64 `csv:"battery_in"`   // Energy moved from batteries into cores

	// Charge distribution (sampled at window end)
	FractionMean float64 `csv:"fraction_mean"`
	FractionP10  float64 `csv:"fraction_p10"`
	FractionP50  float64 `csv:"fraction_p50"`
	FractionP90  float64 `csv:"fraction_p90"`

	// Per-core drain and balance (sampled at window end)
	DrainMean       float64 `csv:"drain_mean"`
	DrainP90        float64 `csv:"drain_p90"`
	GenerationTotal uint64  `csv:"generation_total"`
	NetMean         float64 `csv:"net_mean"`
	NetStd          float64 `csv:"net_std"`

	// Cores per operating mode, indexed by core.Mode
	ModeCounts [5]int `csv:"-"`
}

// Percentile returns the p-th empirical quantile of a sorted slice.
// p is clamped to [0, 1]. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = min(max(p, 0), 1)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeDistribution calculates mean and percentiles from values.
func ComputeDistribution(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	mean = stat.Mean(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// ComputeSpread returns the mean and sample standard deviation of values.
func ComputeSpread(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartStep),
		slog.Uint64("window_end", s.WindowEndStep),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("cores", s.Cores),
		slog.Int("active_upgrades", s.ActiveTotal),
		slog.Int("drain_events", s.DrainEvents),
		slog.Uint64("drain_total", s.DrainTotal),
		slog.Int("shortfall_events", s.ShortfallEvents),
		slog.Uint64("shortfall_total", s.ShortfallTotal),
		slog.Int("mode_changes", s.ModeChanges),
		slog.Int("conflicts", s.Conflicts),
		slog.Int("penalties_lapsed", s.PenaltiesLapsed),
		slog.Int("ability_uses", s.AbilityUses),
		slog.Int("ability_denied", s.AbilityDenied),
		slog.Uint64("ability_energy", s.AbilityEnergy),
		slog.Uint64("energy_saved", s.EnergySaved),
		slog.Uint64("battery_in", s.BatteryIn),
		slog.Float64("fraction_mean", s.FractionMean),
		slog.Float64("fraction_p10", s.FractionP10),
		slog.Float64("fraction_p50", s.FractionP50),
		slog.Float64("fraction_p90", s.FractionP90),
		slog.Float64("drain_mean", s.DrainMean),
		slog.Float64("drain_p90", s.DrainP90),
		slog.Uint64("generation_total", s.GenerationTotal),
		slog.Float64("net_mean", s.NetMean),
		slog.Float64("net_std", s.NetStd),
		slog.Any("mode_counts", s.ModeCounts),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
