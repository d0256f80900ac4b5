package core

// ConflictResult reports a conflict resolution.
type ConflictResult struct {
	Resolved bool
	Stowed   bool // False when the ring was dropped
}

// ResolveConflicts removes the cursed ring when it is worn together with
// the mechanical core. Checks run at most once per conflict interval;
// repeated calls with nothing to resolve have no effect.
func (e *Engine) ResolveConflicts(s *EquipmentState, agent Agent) ConflictResult {
	step := agent.Step()
	interval := uint64(max(e.cfg.Conflict.IntervalSteps, 1))
	if s.conflictChecked && step >= s.lastConflict && step-s.lastConflict < interval {
		return ConflictResult{}
	}
	s.conflictChecked = true
	s.lastConflict = step
	return e.ResolveConflictsNow(agent)
}

// ResolveConflictsNow applies the conflict rule immediately. Hosts call it
// from equip events so either equip order is caught without waiting for
// the next interval.
func (e *Engine) ResolveConflictsNow(agent Agent) ConflictResult {
	if !agent.Wearing(ItemMechanicalCore) || !agent.Wearing(ItemCursedRing) {
		return ConflictResult{}
	}
	stowed, ok := agent.ForceUnequip(ItemCursedRing)
	if !ok {
		return ConflictResult{}
	}

	text := "The mechanical core rejects the cursed ring; it was moved to your inventory."
	if !stowed {
		text = "The mechanical core rejects the cursed ring; your inventory is full so it was dropped."
	}
	agent.Notify(Notice{Kind: NoticeConflict, Text: text})
	return ConflictResult{Resolved: true, Stowed: stowed}
}
