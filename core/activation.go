package core

import (
	"log/slog"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/upgrades"
)

// IsActive reports whether id is contributing its effect right now.
//
// Disabled and paused upgrades are inactive, as is anything at level 0.
// Generators and the capacity upgrade are always active once installed.
// Everything else is subject to the depletion policy, if any.
func (e *Engine) IsActive(c *Call, s *EquipmentState, id upgrades.ID) bool {
	c = ensureCall(c)
	if s.Disabled[id] || s.PausedViaZero[id] {
		return false
	}
	if s.Level(id) == 0 {
		return false
	}
	if c.Checking(id) {
		e.log.Debug("activation check re-entered, using raw state",
			slog.String("guard", "activation"),
			slog.String("upgrade", id.String()),
		)
		return true
	}
	if e.reg.IsGenerator(id) || id.Is(upgrades.EnergyCapacity) {
		return true
	}
	if e.policy == nil {
		return true
	}

	defer c.enterCheck(id)()
	return e.policy.Allow(c, e.Query(s), id)
}

// IsActiveName canonicalizes name and reports whether it is active.
func (e *Engine) IsActiveName(c *Call, s *EquipmentState, name string) bool {
	return e.IsActive(c, s, e.reg.Canonicalize(name))
}

// EffectiveLevel is the level effect appliers must use: zero when inactive,
// and never above an active penalty cap.
func (e *Engine) EffectiveLevel(c *Call, s *EquipmentState, id upgrades.ID) uint32 {
	if !e.IsActive(c, s, id) {
		return 0
	}
	level := s.Level(id)
	if p, ok := e.Penalty(s, id); ok && level > p.Cap {
		level = p.Cap
	}
	return level
}

// ActiveUpgrades returns active ids in stable order.
func (e *Engine) ActiveUpgrades(c *Call, s *EquipmentState) []upgrades.ID {
	c = ensureCall(c)
	var out []upgrades.ID
	for _, id := range s.Installed() {
		if e.IsActive(c, s, id) {
			out = append(out, id)
		}
	}
	return out
}
