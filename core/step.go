package core

import (
	"fmt"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/upgrades"
)

// InsufficientHandler runs once for a drain interval whose charge could
// not be paid in full. shortfall is the unpaid remainder.
type InsufficientHandler func(s *EquipmentState, agent Agent, shortfall uint64)

// WithInsufficientHandler replaces the default low-power handler.
func WithInsufficientHandler(h InsufficientHandler) Option {
	return func(e *Engine) { e.onShort = h }
}

// StepReport summarizes one engine step for one core.
type StepReport struct {
	Step         uint64
	Conflict     ConflictResult
	Battery      BatteryTransfer
	Drained      bool // A drain interval elapsed this step
	Drain        DrainReport
	Taken        uint64
	Insufficient bool
	Mode         Mode
	ModeChanged  bool
	Lapsed       []upgrades.ID
}

// Step advances one core by one host step: conflict check, battery top-up,
// passive drain on the drain interval, then the penalty lapse sweep.
func (e *Engine) Step(c *Call, s *EquipmentState, agent Agent) StepReport {
	c = ensureCall(c)
	step := agent.Step()
	rep := StepReport{Step: step, Mode: s.Mode}

	rep.Conflict = e.ResolveConflicts(s, agent)
	rep.Battery = e.ChargeFromBatteries(c, s, agent)

	if step%uint64(e.cfg.Drain.IntervalSteps) == 0 {
		rep.Drained = true
		rep.Drain = e.PassiveDrain(c, s)
		if rep.Drain.Final > 0 {
			rep.Taken = e.Extract(c, s, rep.Drain.Final, false)
			if rep.Drain.Saved > 0 {
				e.recordSaved(s, rep.Drain.Saved)
			}
			if rep.Taken < rep.Drain.Final {
				rep.Insufficient = true
				e.handleShort(s, agent, rep.Drain.Final-rep.Taken)
			}
		}
		rep.Mode, rep.ModeChanged = e.updateMode(c, s, agent)
	}

	rep.Lapsed = e.SweepPenalties(s)
	for _, id := range rep.Lapsed {
		agent.Notify(Notice{
			Kind:    NoticePenaltyLapsed,
			Upgrade: id,
			Text:    fmt.Sprintf("%s penalty has expired.", e.reg.DisplayName(id)),
		})
	}
	return rep
}

func (e *Engine) handleShort(s *EquipmentState, agent Agent, shortfall uint64) {
	if e.onShort != nil {
		e.onShort(s, agent, shortfall)
		return
	}
	step := agent.Step()
	warnEvery := uint64(max(e.cfg.Drain.WarnIntervalSteps, 1))
	if s.warned && step >= s.lastWarnStep && step-s.lastWarnStep < warnEvery {
		return
	}
	s.warned = true
	s.lastWarnStep = step
	agent.Notify(Notice{Kind: NoticeLowPower, Text: "Mechanical core energy depleted; upgrades are running dry."})
}

// updateMode records the operating mode and announces transitions.
func (e *Engine) updateMode(c *Call, s *EquipmentState, agent Agent) (Mode, bool) {
	m := ModeFor(e.cfg.Depletion, s.Energy, e.Fraction(c, s))
	if m == s.Mode {
		return m, false
	}
	prev := s.Mode
	s.Mode = m
	agent.Notify(Notice{
		Kind: NoticeModeChange,
		Mode: m,
		Text: fmt.Sprintf("Energy mode changed from %s to %s.", prev, m),
	})
	return m, true
}

// OnEquip prepares a state for a new wearing session.
func (e *Engine) OnEquip(s *EquipmentState, agent Agent) ConflictResult {
	s.ResetSession()
	e.InvalidateBatteryCache(s)
	return e.ResolveConflictsNow(agent)
}

// OnUnequip drops soft state tied to the wearer.
func (e *Engine) OnUnequip(s *EquipmentState) {
	e.InvalidateBatteryCache(s)
	s.conflictChecked = false
}
