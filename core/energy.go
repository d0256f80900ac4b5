package core

import (
	"log/slog"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/upgrades"
)

// Capacity returns the energy store's capacity.
// Only the raw installed level of ENERGY_CAPACITY counts; a disabled or
// paused capacity upgrade contributes nothing. Re-entry returns the base.
func (e *Engine) Capacity(c *Call, s *EquipmentState) uint64 {
	c = ensureCall(c)
	base := e.cfg.Energy.BaseCapacity
	if c.InCapacity() {
		e.log.Warn("capacity re-entered, using base capacity",
			slog.String("guard", "capacity"),
			slog.Uint64("base", base),
		)
		return base
	}
	defer c.enterCapacity()()

	capID := upgrades.Of(upgrades.EnergyCapacity)
	level := uint64(s.Level(capID))
	if s.Disabled[capID] || s.PausedViaZero[capID] {
		level = 0
	}

	total := base + level*e.cfg.Energy.CapacityPerLevel
	q := e.Query(s)
	for _, m := range e.modifiers {
		total += m.CapacityBonus(c, q)
	}
	return total
}

// Fraction returns stored energy over capacity. A zero capacity reads as empty.
func (e *Engine) Fraction(c *Call, s *EquipmentState) float64 {
	capacity := e.Capacity(c, s)
	if capacity == 0 {
		return 0
	}
	return float64(s.Energy) / float64(capacity)
}

// Receive adds up to amount, bounded by the per-call transfer cap and free room.
// Returns the amount accepted.
func (e *Engine) Receive(c *Call, s *EquipmentState, amount uint64) uint64 {
	capacity := e.Capacity(c, s)
	if s.Energy >= capacity {
		return 0
	}
	accepted := min(amount, e.cfg.Energy.TransferPerStep, capacity-s.Energy)
	s.Energy += accepted
	return accepted
}

// Extract removes up to amount, bounded by the per-call transfer cap and stored energy.
// With simulate set the state is left untouched. Returns the amount taken.
func (e *Engine) Extract(c *Call, s *EquipmentState, amount uint64, simulate bool) uint64 {
	taken := min(amount, s.Energy, e.cfg.Energy.TransferPerStep)
	if !simulate {
		s.Energy -= taken
	}
	return taken
}

// SetEnergy sets stored energy, clamped to capacity.
func (e *Engine) SetEnergy(c *Call, s *EquipmentState, amount uint64) {
	s.Energy = min(amount, e.Capacity(c, s))
}

// clampEnergy enforces Energy <= Capacity after a capacity change.
func (e *Engine) clampEnergy(c *Call, s *EquipmentState) {
	if capacity := e.Capacity(c, s); s.Energy > capacity {
		s.Energy = capacity
	}
}
