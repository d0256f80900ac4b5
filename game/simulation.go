package game

import (
	"sort"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/core"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/telemetry"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/upgrades"
)

// Update advances the host by one step.
func (g *Game) Update() {
	g.perfCollector.StartStep()

	g.perfCollector.StartPhase(telemetry.PhaseAbilities)
	g.runAbilities()

	g.perfCollector.StartPhase(telemetry.PhaseEngine)
	g.runEngine()

	g.perfCollector.StartPhase(telemetry.PhaseCommit)
	g.commitCores()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.StartPhase(telemetry.PhasePersist)
	g.maybeSnapshot()

	g.perfCollector.EndStep()
	g.step++
}

// runAbilities charges scripted ability uses and settles penalty debts.
func (g *Game) runAbilities() {
	query := g.agentFilter.Query()
	for query.Next() {
		w, eq, _, xp, lo, _ := query.Get()
		if eq.Core == nil || !lo.Due(g.step) {
			continue
		}
		s := eq.Core.State(g.engine)

		for _, act := range lo.Actions {
			ch := g.engine.Consume(nil, s, act)
			if ch.Base == 0 && !ch.OK {
				continue // owner inactive
			}
			g.collector.Record(telemetry.NewAbilityEvent(g.step, w.ID, ch.OK, ch.Actual, ch.Saved))
			if ch.OK && act.Ability == core.AbilityExpAmplifier {
				xp.Points += act.Amount
			}
		}

		for _, id := range indebted(s) {
			g.engine.Repay(nil, s, id, xp)
		}
	}
}

// indebted returns upgrades whose penalty carries a debt, in id order.
func indebted(s *core.EquipmentState) []upgrades.ID {
	var ids []upgrades.ID
	for id, p := range s.Penalties {
		if p.DebtEnergy > 0 || p.DebtOther > 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// runEngine steps every worn core.
func (g *Game) runEngine() {
	query := g.agentFilter.Query()
	for query.Next() {
		w, eq, inv, xp, lo, dr := query.Get()
		if eq.Core == nil {
			continue
		}
		v := &agentView{g: g, entity: query.Entity(), wearer: w, eq: eq, inv: inv, xp: xp, loadout: lo, dropped: dr}
		rep := g.engine.Step(nil, eq.Core.State(g.engine), v)
		g.recordStep(w.ID, rep)
	}
}

// recordStep turns a step report into telemetry events.
func (g *Game) recordStep(agentID uint32, rep core.StepReport) {
	c := g.collector
	if rep.Conflict.Resolved {
		c.Record(telemetry.Event{Type: telemetry.EventConflict, Step: rep.Step, AgentID: agentID})
	}
	if rep.Battery.Accepted > 0 {
		c.Record(telemetry.NewBatteryEvent(rep.Step, agentID, rep.Battery.Accepted))
	}
	if rep.Drained && rep.Drain.Final > 0 {
		c.Record(telemetry.NewDrainEvent(rep.Step, agentID, rep.Taken, rep.Drain.Saved))
	}
	if rep.Insufficient {
		c.Record(telemetry.NewShortfallEvent(rep.Step, agentID, rep.Drain.Final-rep.Taken))
	}
	if rep.ModeChanged {
		c.Record(telemetry.Event{Type: telemetry.EventModeChange, Step: rep.Step, AgentID: agentID})
	}
	for range rep.Lapsed {
		c.Record(telemetry.Event{Type: telemetry.EventPenaltyLapsed, Step: rep.Step, AgentID: agentID})
	}
}

// commitCores writes every decoded core state back to its attributes,
// including cores sitting in inventories.
func (g *Game) commitCores() {
	query := g.agentFilter.Query()
	for query.Next() {
		_, eq, inv, _, _, _ := query.Get()
		if eq.Core != nil {
			eq.Core.Commit(g.engine)
		}
		for _, it := range inv.Items {
			if it.Core != nil {
				it.Core.Commit(g.engine)
			}
		}
	}
}
