package core

import (
	"math"
	"time"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/upgrades"
)

// PenaltyOrder describes a penalty to apply.
type PenaltyOrder struct {
	Cap           uint32
	Duration      time.Duration
	TierIncrement uint32
	DebtEnergy    uint64
	DebtOther     uint64
}

// ApplyPenalty caps id's level until now + duration. The tier accumulates
// over repeated penalties, including lapsed ones. An installed level above
// the cap is lowered immediately.
func (e *Engine) ApplyPenalty(c *Call, s *EquipmentState, id upgrades.ID, o PenaltyOrder) PenaltyRecord {
	c = ensureCall(c)

	capLevel := max(o.Cap, e.cfg.Penalty.MinCap, 1)
	minDur := time.Duration(math.Max(e.cfg.Penalty.MinDurationSeconds, 1) * float64(time.Second))
	dur := max(o.Duration, minDur)

	prev := s.Penalties[id]
	rec := PenaltyRecord{
		Cap:        capLevel,
		ExpiresAt:  e.clock.Now().Add(dur),
		Tier:       prev.Tier + o.TierIncrement,
		DebtEnergy: o.DebtEnergy,
		DebtOther:  o.DebtOther,
	}
	s.Penalties[id] = rec

	if s.Levels[id] > capLevel {
		s.Levels[id] = capLevel
		e.clampEnergy(c, s)
	}
	return rec
}

// Penalty returns the active penalty for id. Lapsed records read as absent.
func (e *Engine) Penalty(s *EquipmentState, id upgrades.ID) (PenaltyRecord, bool) {
	p, ok := s.Penalties[id]
	if !ok || !p.Active(e.clock.Now()) {
		return PenaltyRecord{}, false
	}
	return p, true
}

// PenaltyTier returns the accumulated tier for id, whether or not the penalty is active.
func (e *Engine) PenaltyTier(s *EquipmentState, id upgrades.ID) uint32 {
	return s.Penalties[id].Tier
}

// ClearPenalty deletes the penalty record for id, resetting its tier.
func (e *Engine) ClearPenalty(s *EquipmentState, id upgrades.ID) {
	delete(s.Penalties, id)
}

// Repay settles an active penalty's debts. Both debts are checked before
// either is withdrawn; on success the penalty is cleared.
func (e *Engine) Repay(c *Call, s *EquipmentState, id upgrades.ID, pool ResourcePool) bool {
	c = ensureCall(c)
	p, ok := e.Penalty(s, id)
	if !ok {
		return false
	}

	if p.DebtEnergy > 0 && e.Extract(c, s, p.DebtEnergy, true) < p.DebtEnergy {
		return false
	}
	if p.DebtOther > 0 && (pool == nil || pool.Available() < p.DebtOther) {
		return false
	}

	if p.DebtOther > 0 && !pool.Withdraw(p.DebtOther) {
		return false
	}
	if p.DebtEnergy > 0 {
		e.Extract(c, s, p.DebtEnergy, false)
	}
	e.ClearPenalty(s, id)
	return true
}

// SweepPenalties returns ids whose penalty lapsed since the last sweep.
// Lapsed records are kept so the tier keeps escalating.
func (e *Engine) SweepPenalties(s *EquipmentState) []upgrades.ID {
	now := e.clock.Now()
	var lapsed []upgrades.ID
	for id, p := range s.Penalties {
		if p.Active(now) || p.lapseReported {
			continue
		}
		p.lapseReported = true
		s.Penalties[id] = p
		lapsed = append(lapsed, id)
	}
	sortIDs(lapsed)
	return lapsed
}
