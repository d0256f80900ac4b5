package core

import (
	"log/slog"
	"math"
	"time"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/attrs"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/upgrades"
)

// Decode builds an EquipmentState from persisted attributes.
// Every spelling of an upgrade folds into its canonical id: levels and
// high-water marks take the maximum, flags are OR-ed. Keys for
// unregistered ids are skipped and left in place.
func (e *Engine) Decode(a *attrs.Attributes) *EquipmentState {
	s := NewEquipmentState()
	s.Energy = nonNeg(a.Int(attrs.KeyEnergy))
	s.TotalSaved = nonNeg(a.Int(attrs.KeyTotalSaved))
	s.SessionSaved = nonNeg(a.Int(attrs.KeySessionSaved))
	if m := a.Int(attrs.KeyPreviousStatus); m >= 0 && m <= int64(ModeShutdown) {
		s.Mode = Mode(m)
	}

	pens := make(map[upgrades.ID]*PenaltyRecord)
	pen := func(id upgrades.ID) *PenaltyRecord {
		p, ok := pens[id]
		if !ok {
			p = &PenaltyRecord{}
			pens[id] = p
		}
		return p
	}

	skipped := 0
	for _, key := range a.Keys() {
		prefix, spelling, ok := attrs.SplitKey(key)
		if !ok {
			continue
		}
		id := e.reg.Canonicalize(spelling)
		if !e.reg.Known(id) {
			skipped++
			continue
		}
		v, _ := a.Get(key)

		switch prefix {
		case attrs.PrefixLevel:
			s.Levels[id] = max(s.Levels[id], toU32(v.AsInt()))
		case attrs.PrefixDisabled:
			if v.AsBool() {
				s.Disabled[id] = true
			}
		case attrs.PrefixPaused:
			if v.AsBool() {
				s.PausedViaZero[id] = true
			}
		case attrs.PrefixOwnedMax:
			s.OwnedMax[id] = max(s.OwnedMax[id], toU32(v.AsInt()))
		case attrs.PrefixPenCap:
			pen(id).Cap = toU32(v.AsInt())
		case attrs.PrefixPenExpire:
			pen(id).ExpiresAt = time.UnixMilli(v.AsInt())
		case attrs.PrefixPenTier:
			pen(id).Tier = toU32(v.AsInt())
		case attrs.PrefixPenDebtFE:
			pen(id).DebtEnergy = nonNeg(v.AsInt())
		case attrs.PrefixPenDebtXP:
			pen(id).DebtOther = nonNeg(v.AsInt())
		}
	}
	if skipped > 0 {
		e.log.Debug("skipped attributes for unregistered upgrades", slog.Int("keys", skipped))
	}

	now := e.clock.Now()
	for id, p := range pens {
		if p.Cap == 0 && p.Tier == 0 {
			continue
		}
		p.lapseReported = !p.Active(now)
		s.Penalties[id] = *p
	}
	for id, lvl := range s.Levels {
		if lvl == 0 && !s.PausedViaZero[id] {
			delete(s.Levels, id)
		}
	}

	e.clampEnergy(NewCall(), s)
	return s
}

// Encode writes s into a. Existing keys of registered upgrades are
// replaced; keys of unregistered upgrades are never touched. Levels are
// written under every known spelling so older readers still find them.
func (e *Engine) Encode(s *EquipmentState, a *attrs.Attributes) {
	for _, key := range a.Keys() {
		if _, spelling, ok := attrs.SplitKey(key); ok && e.reg.Known(e.reg.Canonicalize(spelling)) {
			a.Remove(key)
		}
	}

	a.SetInt(attrs.KeyEnergy, int64(s.Energy))
	a.SetInt(attrs.KeyTotalSaved, int64(s.TotalSaved))
	a.SetInt(attrs.KeySessionSaved, int64(s.SessionSaved))
	a.SetInt(attrs.KeyPreviousStatus, int64(s.Mode))

	for id, lvl := range s.Levels {
		if !e.reg.Known(id) {
			continue
		}
		for _, sp := range e.reg.Spellings(id) {
			a.SetInt(attrs.Level(sp), int64(lvl))
		}
		if lvl > 0 {
			a.SetBool(attrs.Owned(id.String()), true)
		}
	}
	for id, on := range s.Disabled {
		if on && e.reg.Known(id) {
			a.SetBool(attrs.Disabled(id.String()), true)
		}
	}
	for id, on := range s.PausedViaZero {
		if on && e.reg.Known(id) {
			a.SetBool(attrs.Paused(id.String()), true)
		}
	}
	for id, m := range s.OwnedMax {
		if m > 0 && e.reg.Known(id) {
			a.SetInt(attrs.OwnedMax(id.String()), int64(m))
		}
	}
	for id, p := range s.Penalties {
		if !e.reg.Known(id) {
			continue
		}
		name := id.String()
		a.SetInt(attrs.PenaltyCap(name), int64(p.Cap))
		a.SetInt(attrs.PenaltyExpire(name), p.ExpiresAt.UnixMilli())
		a.SetInt(attrs.PenaltyTier(name), int64(p.Tier))
		if p.DebtEnergy > 0 {
			a.SetInt(attrs.PenaltyDebtEnergy(name), int64(p.DebtEnergy))
		}
		if p.DebtOther > 0 {
			a.SetInt(attrs.PenaltyDebtOther(name), int64(p.DebtOther))
		}
	}
}

func nonNeg(v int64) uint64 {
	if v < 0 {
		return 0
	}
	return uint64(v)
}

func toU32(v int64) uint32 {
	switch {
	case v < 0:
		return 0
	case v > math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(v)
}
