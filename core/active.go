package core

import (
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/upgrades"
)

// Ability is an action-driven energy expense.
type Ability uint8

const (
	AbilityOreScan Ability = iota + 1
	AbilityStealth
	AbilityShieldMaintain
	AbilityShieldRestore
	AbilityHealthRegen
	AbilityHungerRestore
	AbilityThirstRestore
	AbilityFireExtinguish
	AbilityDamageBoost
	AbilityCriticalStrike
	AbilityPursuitMark
	AbilityPursuitDash
	AbilityRangeIndicator
	AbilityExpAmplifier
)

var abilityNames = map[Ability]string{
	AbilityOreScan:        "ore_scan",
	AbilityStealth:        "stealth",
	AbilityShieldMaintain: "shield_maintain",
	AbilityShieldRestore:  "shield_restore",
	AbilityHealthRegen:    "health_regen",
	AbilityHungerRestore:  "hunger_restore",
	AbilityThirstRestore:  "thirst_restore",
	AbilityFireExtinguish: "fire_extinguish",
	AbilityDamageBoost:    "damage_boost",
	AbilityCriticalStrike: "critical_strike",
	AbilityPursuitMark:    "pursuit_mark",
	AbilityPursuitDash:    "pursuit_dash",
	AbilityRangeIndicator: "range_indicator",
	AbilityExpAmplifier:   "exp_amplifier",
}

func (a Ability) String() string {
	if n, ok := abilityNames[a]; ok {
		return n
	}
	return "unknown"
}

// Owner returns the upgrade that must be active for the ability.
func (a Ability) Owner() upgrades.ID {
	switch a {
	case AbilityOreScan:
		return upgrades.Of(upgrades.OreVision)
	case AbilityStealth:
		return upgrades.Of(upgrades.Stealth)
	case AbilityShieldMaintain, AbilityShieldRestore:
		return upgrades.Of(upgrades.YellowShield)
	case AbilityHealthRegen:
		return upgrades.Of(upgrades.HealthRegen)
	case AbilityHungerRestore, AbilityThirstRestore:
		return upgrades.Of(upgrades.HungerThirst)
	case AbilityFireExtinguish:
		return upgrades.Of(upgrades.FireExtinguish)
	case AbilityDamageBoost:
		return upgrades.Of(upgrades.DamageBoost)
	case AbilityCriticalStrike:
		return upgrades.Of(upgrades.CriticalStrike)
	case AbilityPursuitMark, AbilityPursuitDash:
		return upgrades.Of(upgrades.Pursuit)
	case AbilityRangeIndicator:
		return upgrades.Of(upgrades.RangeExtension)
	case AbilityExpAmplifier:
		return upgrades.Of(upgrades.ExpAmplifier)
	}
	return upgrades.ID{}
}

// Action requests one ability use.
type Action struct {
	Ability Ability
	Amount  uint64 // Shield points restored, or experience gained
	Deep    bool   // Ore scan: deep scan surcharge
}

// Charge reports the outcome of an ability charge.
type Charge struct {
	Ability Ability
	Base    uint64
	Actual  uint64
	Saved   uint64
	OK      bool
}

// BaseCost returns the pre-efficiency cost of an action at the owner's level.
func (e *Engine) BaseCost(a Action, level uint32) uint64 {
	ac := e.cfg.Active
	lvl := uint64(level)
	switch a.Ability {
	case AbilityOreScan:
		cost := ac.OreVisionBase + ac.OreVisionPerLevel*lvl
		if a.Deep {
			cost += ac.OreVisionScan
		}
		return cost
	case AbilityStealth:
		if level == 0 || len(ac.StealthPerSecond) == 0 {
			return 0
		}
		idx := min(int(level), len(ac.StealthPerSecond)) - 1
		perStep := ac.StealthPerSecond[idx] / uint64(e.cfg.Step.PerSecond)
		return max(perStep, 1)
	case AbilityShieldMaintain:
		return ac.ShieldMaintainPerLevel * lvl
	case AbilityShieldRestore:
		return ac.ShieldRestorePerPoint * max(a.Amount, 1)
	case AbilityHealthRegen:
		return ac.HealthRegenPerLevel * lvl
	case AbilityHungerRestore:
		return ac.HungerRestore
	case AbilityThirstRestore:
		return ac.ThirstRestore
	case AbilityFireExtinguish:
		return ac.FireExtinguish
	case AbilityDamageBoost:
		return ac.DamageBoost
	case AbilityCriticalStrike:
		return ac.CriticalStrike
	case AbilityPursuitMark:
		return ac.PursuitMark
	case AbilityPursuitDash:
		return ac.PursuitDash
	case AbilityRangeIndicator:
		return ac.RangeIndicator
	case AbilityExpAmplifier:
		return ac.ExpAmplifierBase + ac.ExpAmplifierPerPoint*a.Amount
	}
	return ac.Default
}

// Consume charges energy for an ability use. The full cost is checked
// before anything is deducted; a charge that cannot be paid leaves the
// store untouched.
func (e *Engine) Consume(c *Call, s *EquipmentState, a Action) Charge {
	c = ensureCall(c)
	ch := Charge{Ability: a.Ability}

	owner := a.Ability.Owner()
	level := e.EffectiveLevel(c, s, owner)
	if level == 0 {
		return ch
	}

	ch.Base = e.BaseCost(a, level)
	ch.Actual = ch.Base
	if eff := e.efficiencyLevel(c, s); eff > 0 {
		ch.Actual = ActualCost(e.cfg.Efficiency, ch.Base, eff)
	}
	if ch.Actual == 0 {
		ch.OK = true
		return ch
	}

	if e.Extract(c, s, ch.Actual, true) < ch.Actual {
		return ch
	}
	e.Extract(c, s, ch.Actual, false)
	ch.OK = true
	if ch.Base > ch.Actual {
		ch.Saved = ch.Base - ch.Actual
		e.recordSaved(s, ch.Saved)
	}
	return ch
}
