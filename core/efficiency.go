package core

import (
	"math"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/config"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/upgrades"
)

// EfficiencyMultiplier returns the cost multiplier for an efficiency level.
// Non-increasing in level and never below the configured floor.
func EfficiencyMultiplier(cfg config.EfficiencyConfig, level uint32) float64 {
	table := cfg.Table
	if len(table) == 0 {
		return 1
	}
	if int(level) < len(table) {
		return math.Max(table[level], cfg.Floor)
	}
	last := table[len(table)-1]
	beyond := float64(int(level) - (len(table) - 1))
	return math.Max(cfg.Floor, last-cfg.StepBeyond*beyond)
}

// ActualCost applies the efficiency multiplier to a base cost.
// A positive base never rounds down to zero.
func ActualCost(cfg config.EfficiencyConfig, base uint64, level uint32) uint64 {
	if base == 0 {
		return 0
	}
	cost := math.Round(float64(base) * EfficiencyMultiplier(cfg, level))
	if cost < 1 {
		return 1
	}
	return uint64(cost)
}

// efficiencyLevel returns the active ENERGY_EFFICIENCY level, 0 if inactive.
func (e *Engine) efficiencyLevel(c *Call, s *EquipmentState) uint32 {
	return e.EffectiveLevel(c, s, upgrades.Of(upgrades.EnergyEfficiency))
}

// recordSaved adds to both savings counters.
func (e *Engine) recordSaved(s *EquipmentState, saved uint64) {
	s.TotalSaved += saved
	s.SessionSaved += saved
}
