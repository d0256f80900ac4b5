package core

import (
	"testing"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/upgrades"
)

func TestConsume_EfficiencySavings(t *testing.T) {
	e, _ := newTestEngine(t)
	s := stateWith(1000, map[upgrades.ID]uint32{damageBoost: 1, efficiencyUp: 2})

	ch := e.Consume(nil, s, Action{Ability: AbilityDamageBoost})
	if !ch.OK {
		t.Fatal("charge failed with enough energy")
	}
	if ch.Base != 100 || ch.Actual != 70 || ch.Saved != 30 {
		t.Errorf("charge = %+v, want base 100 actual 70 saved 30", ch)
	}
	if s.Energy != 930 {
		t.Errorf("energy = %d, want 930", s.Energy)
	}
	if s.TotalSaved != 30 || s.SessionSaved != 30 {
		t.Errorf("saved counters = %d/%d, want 30/30", s.TotalSaved, s.SessionSaved)
	}
}

func TestConsume_NoPartialDeduction(t *testing.T) {
	e, _ := newTestEngine(t)
	s := stateWith(50, map[upgrades.ID]uint32{damageBoost: 1})

	ch := e.Consume(nil, s, Action{Ability: AbilityDamageBoost})
	if ch.OK {
		t.Error("charge succeeded without enough energy")
	}
	if s.Energy != 50 {
		t.Errorf("failed charge changed energy to %d", s.Energy)
	}
}

func TestConsume_InactiveOwner(t *testing.T) {
	e, _ := newTestEngine(t)
	s := stateWith(5000, map[upgrades.ID]uint32{oreVision: 2})
	s.Disabled[oreVision] = true

	ch := e.Consume(nil, s, Action{Ability: AbilityOreScan})
	if ch.OK || ch.Base != 0 {
		t.Errorf("charge for disabled owner = %+v, want rejected", ch)
	}
	if s.Energy != 5000 {
		t.Errorf("energy changed to %d", s.Energy)
	}
}

func TestBaseCost(t *testing.T) {
	e, _ := newTestEngine(t)

	tests := []struct {
		name   string
		action Action
		level  uint32
		want   uint64
	}{
		{"ore scan", Action{Ability: AbilityOreScan}, 2, 300},
		{"deep ore scan", Action{Ability: AbilityOreScan, Deep: true}, 2, 800},
		{"stealth l1", Action{Ability: AbilityStealth}, 1, 40},
		{"stealth l3", Action{Ability: AbilityStealth}, 3, 20},
		{"shield maintain", Action{Ability: AbilityShieldMaintain}, 3, 120},
		{"shield restore", Action{Ability: AbilityShieldRestore, Amount: 4}, 1, 80},
		{"health regen", Action{Ability: AbilityHealthRegen}, 2, 120},
		{"exp amplifier", Action{Ability: AbilityExpAmplifier, Amount: 10}, 1, 50},
		{"pursuit dash", Action{Ability: AbilityPursuitDash}, 1, 200},
		{"fire", Action{Ability: AbilityFireExtinguish}, 1, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.BaseCost(tt.action, tt.level); got != tt.want {
				t.Errorf("BaseCost = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAbilityOwner(t *testing.T) {
	tests := []struct {
		a    Ability
		want upgrades.Kind
	}{
		{AbilityOreScan, upgrades.OreVision},
		{AbilityShieldRestore, upgrades.YellowShield},
		{AbilityThirstRestore, upgrades.HungerThirst},
		{AbilityPursuitMark, upgrades.Pursuit},
		{AbilityRangeIndicator, upgrades.RangeExtension},
	}
	for _, tt := range tests {
		if got := tt.a.Owner().Kind(); got != tt.want {
			t.Errorf("%v.Owner() = %v, want %v", tt.a, got, tt.want)
		}
	}
}

func TestConsume_UsesPenalizedLevel(t *testing.T) {
	e, _ := newTestEngine(t)
	s := stateWith(5000, map[upgrades.ID]uint32{oreVision: 3})
	e.ApplyPenalty(nil, s, oreVision, PenaltyOrder{Cap: 1, Duration: 60e9})

	ch := e.Consume(nil, s, Action{Ability: AbilityOreScan})
	if ch.Base != 250 {
		t.Errorf("Base = %d, want 250 at penalized level 1", ch.Base)
	}
}
