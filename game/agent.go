package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/components"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/core"
)

// agentView adapts one agent's components to core.Agent. The pointers
// are valid until the world is next modified structurally.
type agentView struct {
	g       *Game
	entity  ecs.Entity
	wearer  *components.Wearer
	eq      *components.Equipment
	inv     *components.Inventory
	xp      *components.Experience
	loadout *components.Loadout
	dropped *components.Dropped
}

var _ core.Agent = (*agentView)(nil)

func (g *Game) view(e ecs.Entity) *agentView {
	w, eq, inv, xp, lo, dr := g.agentMapper.Get(e)
	return &agentView{g: g, entity: e, wearer: w, eq: eq, inv: inv, xp: xp, loadout: lo, dropped: dr}
}

func (a *agentView) Step() uint64 { return a.g.step }

// Batteries lists worn cells first, then inventory cells.
func (a *agentView) Batteries() []core.BatterySource {
	out := make([]core.BatterySource, 0, len(a.eq.Batteries))
	for _, b := range a.eq.Batteries {
		out = append(out, b)
	}
	for _, b := range a.inv.Batteries() {
		out = append(out, b)
	}
	return out
}

func (a *agentView) Wearing(kind core.ItemKind) bool { return a.eq.Wearing(kind) }

func (a *agentView) ForceUnequip(kind core.ItemKind) (stowed bool, ok bool) {
	var it components.Item
	switch kind {
	case core.ItemCursedRing:
		if !a.eq.Ring {
			return false, false
		}
		a.eq.Ring = false
		it = components.Item{Kind: components.ItemRing, Name: kind.String()}
	case core.ItemMechanicalCore:
		if a.eq.Core == nil {
			return false, false
		}
		it = components.Item{Kind: components.ItemCore, Name: kind.String(), Core: a.eq.Core}
		a.eq.Core = nil
	default:
		return false, false
	}
	if a.inv.Add(it) {
		return true, true
	}
	a.dropped.Items = append(a.dropped.Items, it)
	return false, true
}

func (a *agentView) Notify(n core.Notice) {
	a.g.notices[n.Kind]++
	slog.Debug("notice",
		"agent", a.wearer.ID,
		"step", a.g.step,
		"kind", n.Kind,
		"text", n.Text,
	)
}

func (a *agentView) Experience() core.ResourcePool { return a.xp }
