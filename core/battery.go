package core

// BatteryTransfer reports one charging step.
type BatteryTransfer struct {
	Tier     int
	Accepted uint64
}

func (e *Engine) unlimited(b BatterySource) bool {
	return e.cfg.Derived.TierByLevel[b.Tier()].Unlimited
}

// tierRate returns the per-step transfer rate of a battery.
func (e *Engine) tierRate(b BatterySource) uint64 {
	if e.unlimited(b) {
		return e.cfg.Derived.UnlimitedRate
	}
	return e.cfg.Derived.TierByLevel[b.Tier()].RatePerStep
}

// SelectBattery picks the charging source: an unlimited battery wins
// outright, otherwise the one holding the most charge. Returns nil when
// nothing can supply energy.
func (e *Engine) SelectBattery(sources []BatterySource) BatterySource {
	var best BatterySource
	for _, b := range sources {
		if b == nil || b.Tier() <= 0 {
			continue
		}
		if e.unlimited(b) {
			return b
		}
		if b.Stored() == 0 {
			continue
		}
		if best == nil || b.Stored() > best.Stored() {
			best = b
		}
	}
	return best
}

// ChargeFromBatteries tops the store up from the agent's best battery.
// The transfer is bounded by the source's charge, the store's free room,
// the source tier's rate and the store's per-call receive cap.
// Unlimited sources are never drained.
func (e *Engine) ChargeFromBatteries(c *Call, s *EquipmentState, agent Agent) BatteryTransfer {
	c = ensureCall(c)
	sources := agent.Batteries()
	e.refreshBatteryCache(s, agent.Step(), sources)

	src := e.SelectBattery(sources)
	if src == nil {
		return BatteryTransfer{}
	}
	capacity := e.Capacity(c, s)
	if s.Energy >= capacity {
		return BatteryTransfer{Tier: src.Tier()}
	}

	want := min(capacity-s.Energy, e.tierRate(src))
	if !e.unlimited(src) {
		want = min(want, src.Stored())
	}
	accepted := e.Receive(c, s, want)
	if accepted > 0 && !e.unlimited(src) {
		if got := src.Extract(accepted); got < accepted {
			s.Energy -= accepted - got
			accepted = got
		}
	}
	return BatteryTransfer{Tier: src.Tier(), Accepted: accepted}
}

// refreshBatteryCache re-reads battery presence when the cache is stale.
func (e *Engine) refreshBatteryCache(s *EquipmentState, step uint64, sources []BatterySource) {
	if s.Cache.Fresh(step, e.cfg.Battery.CacheSteps) {
		return
	}
	cache := BatteryCache{CheckedAt: step, Valid: true}
	for _, b := range sources {
		if b == nil || b.Tier() <= 0 {
			continue
		}
		if e.unlimited(b) || b.Stored() > 0 {
			cache.HasBattery = true
			cache.Tier = max(cache.Tier, b.Tier())
		}
	}
	s.Cache = cache
}

// InvalidateBatteryCache forces the next step to re-read battery presence.
func (e *Engine) InvalidateBatteryCache(s *EquipmentState) {
	s.Cache = BatteryCache{}
}
