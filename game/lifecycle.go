package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/components"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/core"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/telemetry"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/upgrades"
)

// spawnAgent creates an agent wearing item. A nil item spawns a fresh core
// with random upgrades.
func (g *Game) spawnAgent(item *components.CoreItem) ecs.Entity {
	cfg := g.cfg

	id := g.nextID
	g.nextID++

	fresh := item == nil
	if fresh {
		item = components.NewCoreItem()
	}
	s := item.State(g.engine)
	if fresh {
		g.engine.SetEnergy(nil, s, cfg.Host.InitialEnergy)
		g.installRandom(s)
	}

	wearer := components.Wearer{ID: id, Name: fmt.Sprintf("agent-%d", id)}
	eq := components.Equipment{Core: item, Ring: g.rng.Float64() < cfg.Host.RingChance}
	inv := components.Inventory{Slots: cfg.Host.InventorySlots}
	if g.rng.Float64() < cfg.Host.BatteryChance {
		if b, ok := g.randomBattery(); ok {
			inv.Add(b)
		}
	}
	xp := components.Experience{Points: cfg.Host.InitialXP}
	loadout := components.Loadout{
		Actions:  g.loadoutFor(s),
		Interval: uint64(max(cfg.Host.ActionIntervalSteps, 0)),
	}
	dropped := components.Dropped{}

	entity := g.agentMapper.NewEntity(&wearer, &eq, &inv, &xp, &loadout, &dropped)
	g.entities[id] = entity

	if res := g.engine.OnEquip(s, g.view(entity)); res.Resolved {
		g.collector.Record(telemetry.Event{Type: telemetry.EventConflict, Step: g.step, AgentID: id})
	}
	item.Commit(g.engine)
	return entity
}

// installRandom installs host.upgrades_per_core distinct upgrades at random levels.
func (g *Game) installRandom(s *core.EquipmentState) {
	ids := g.reg.IDs()
	g.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	n := min(g.cfg.Host.UpgradesPerCore, len(ids))
	for _, id := range ids[:max(n, 0)] {
		maxLevel := max(g.reg.MaxLevel(id), 1)
		level := 1 + uint32(g.rng.Intn(int(maxLevel)))
		if _, err := g.engine.Install(nil, s, id, level); err != nil {
			slog.Warn("install failed", "upgrade", id, "error", err)
		}
	}
}

// randomBattery returns a half-charged cell of a random finite tier.
func (g *Game) randomBattery() (components.Item, bool) {
	var finite []int
	for i, t := range g.cfg.Battery.Tiers {
		if !t.Unlimited {
			finite = append(finite, i)
		}
	}
	if len(finite) == 0 {
		return components.Item{}, false
	}
	tier := g.cfg.Battery.Tiers[finite[g.rng.Intn(len(finite))]]
	cell := components.NewBatteryCell(tier, tier.Capacity/2)
	return components.Item{Kind: components.ItemBattery, Name: tier.Name, Battery: cell}, true
}

// loadoutFor schedules every ability whose owning upgrade is installed.
func (g *Game) loadoutFor(s *core.EquipmentState) []core.Action {
	var actions []core.Action
	for a := core.AbilityOreScan; a <= core.AbilityExpAmplifier; a++ {
		if s.Level(a.Owner()) == 0 {
			continue
		}
		act := core.Action{Ability: a}
		switch a {
		case core.AbilityOreScan:
			act.Deep = g.rng.Float64() < 0.25
		case core.AbilityShieldRestore:
			act.Amount = 4
		case core.AbilityExpAmplifier:
			act.Amount = 10
		}
		actions = append(actions, act)
	}
	return actions
}

// Unequip moves an agent's core into its inventory, or onto the ground
// when the inventory is full.
func (g *Game) Unequip(agentID uint32) bool {
	e, ok := g.entities[agentID]
	if !ok {
		return false
	}
	v := g.view(e)
	item := v.eq.Core
	if item == nil {
		return false
	}
	g.engine.OnUnequip(item.State(g.engine))
	item.Commit(g.engine)
	_, ok = v.ForceUnequip(core.ItemMechanicalCore)
	return ok
}

// Equip puts the first core from the agent's inventory back on.
func (g *Game) Equip(agentID uint32) bool {
	e, ok := g.entities[agentID]
	if !ok {
		return false
	}
	v := g.view(e)
	if v.eq.Core != nil {
		return false
	}
	it, ok := v.inv.Take(components.ItemCore)
	if !ok || it.Core == nil {
		return false
	}
	v.eq.Core = it.Core
	if res := g.engine.OnEquip(it.Core.State(g.engine), v); res.Resolved {
		g.collector.Record(telemetry.Event{Type: telemetry.EventConflict, Step: g.step, AgentID: agentID})
	}
	return true
}

// PutOnRing makes the agent wear the cursed ring. The conflict check
// removes it again on its next pass.
func (g *Game) PutOnRing(agentID uint32) bool {
	e, ok := g.entities[agentID]
	if !ok {
		return false
	}
	v := g.view(e)
	if v.eq.Ring {
		return false
	}
	v.inv.Take(components.ItemRing)
	v.eq.Ring = true
	return true
}

// Penalize applies a penalty to the agent's worn core.
func (g *Game) Penalize(agentID uint32, id upgrades.ID, o core.PenaltyOrder) (core.PenaltyRecord, bool) {
	item := g.CoreOf(agentID)
	if item == nil {
		return core.PenaltyRecord{}, false
	}
	return g.engine.ApplyPenalty(nil, item.State(g.engine), id, o), true
}

// CoreOf returns the core the agent is wearing, or nil.
func (g *Game) CoreOf(agentID uint32) *components.CoreItem {
	e, ok := g.entities[agentID]
	if !ok {
		return nil
	}
	return g.view(e).eq.Core
}

// Dropped returns the items an agent has dropped.
func (g *Game) Dropped(agentID uint32) []components.Item {
	e, ok := g.entities[agentID]
	if !ok {
		return nil
	}
	return g.view(e).dropped.Items
}

// Wearing reports whether the agent wears an item of kind.
func (g *Game) Wearing(agentID uint32, kind core.ItemKind) bool {
	e, ok := g.entities[agentID]
	if !ok {
		return false
	}
	return g.view(e).eq.Wearing(kind)
}
