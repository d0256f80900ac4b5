package telemetry

// Collector accumulates events within step windows and produces WindowStats.
type Collector struct {
	windowSteps uint64
	stepSeconds float64

	// Current window tracking
	windowStart uint64

	// Event counters for current window
	counts      [EventBatteryCharge + 1]int
	drained     uint64
	missing     uint64
	abilityCost uint64
	saved       uint64
	transferred uint64
}

// NewCollector creates a new stats collector.
// windowSteps: steps per stats window
// stepSeconds: seconds per step (used for step-to-time conversion)
func NewCollector(windowSteps int, stepSeconds float64) *Collector {
	if windowSteps < 1 {
		windowSteps = 1
	}
	return &Collector{
		windowSteps: uint64(windowSteps),
		stepSeconds: stepSeconds,
	}
}

// Record adds one event to the current window.
func (c *Collector) Record(ev Event) {
	if int(ev.Type) < len(c.counts) {
		c.counts[ev.Type]++
	}
	switch ev.Type {
	case EventDrain:
		c.drained += ev.Amount
		c.saved += ev.Saved
	case EventShortfall:
		c.missing += ev.Amount
	case EventAbility:
		c.abilityCost += ev.Amount
		c.saved += ev.Saved
	case EventBatteryCharge:
		c.transferred += ev.Amount
	}
}

// Count returns how many events of type t the current window holds.
func (c *Collector) Count(t EventType) int {
	if int(t) >= len(c.counts) {
		return 0
	}
	return c.counts[t]
}

// ShouldFlush returns true if enough steps have passed to flush the window.
func (c *Collector) ShouldFlush(step uint64) bool {
	return step >= c.windowStart && step-c.windowStart >= c.windowSteps
}

// CoreSample is one core's state at window end.
type CoreSample struct {
	Fraction   float64
	Drain      uint64
	Generation uint64
	Active     int
	Mode       int // Index into WindowStats.ModeCounts
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(step uint64, samples []CoreSample) WindowStats {
	fractions := make([]float64, 0, len(samples))
	drains := make([]float64, 0, len(samples))
	nets := make([]float64, 0, len(samples))
	stats := WindowStats{
		WindowStartStep: c.windowStart,
		WindowEndStep:   step,
		SimTimeSec:      float64(step) * c.stepSeconds,
		Cores:           len(samples),

		DrainEvents:     c.counts[EventDrain],
		DrainTotal:      c.drained,
		ShortfallEvents: c.counts[EventShortfall],
		ShortfallTotal:  c.missing,
		ModeChanges:     c.counts[EventModeChange],
		Conflicts:       c.counts[EventConflict],
		PenaltiesLapsed: c.counts[EventPenaltyLapsed],
		AbilityUses:     c.counts[EventAbility],
		AbilityDenied:   c.counts[EventAbilityDenied],
		AbilityEnergy:   c.abilityCost,
		EnergySaved:     c.saved,
		BatteryIn:       c.transferred,
	}
	for _, s := range samples {
		fractions = append(fractions, s.Fraction)
		drains = append(drains, float64(s.Drain))
		nets = append(nets, float64(s.Generation)-float64(s.Drain))
		stats.GenerationTotal += s.Generation
		stats.ActiveTotal += s.Active
		if s.Mode >= 0 && s.Mode < len(stats.ModeCounts) {
			stats.ModeCounts[s.Mode]++
		}
	}
	stats.FractionMean, stats.FractionP10, stats.FractionP50, stats.FractionP90 = ComputeDistribution(fractions)
	stats.DrainMean, _, _, stats.DrainP90 = ComputeDistribution(drains)
	stats.NetMean, stats.NetStd = ComputeSpread(nets)

	// Reset for next window
	c.windowStart = step
	c.counts = [EventBatteryCharge + 1]int{}
	c.drained = 0
	c.missing = 0
	c.abilityCost = 0
	c.saved = 0
	c.transferred = 0

	return stats
}

// WindowSteps returns the number of steps per window.
func (c *Collector) WindowSteps() uint64 {
	return c.windowSteps
}
