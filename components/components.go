// Package components defines ECS components for the reference host.
package components

import "github.com/CFP106020087/Jason-more-rf-bauble-sub000/core"

// Wearer identifies an agent that can wear a mechanical core.
type Wearer struct {
	ID   uint32
	Name string
}

// Experience is the agent's experience pool. Penalty debts in the
// secondary resource are paid from it.
type Experience struct {
	Points uint64
}

// Available implements core.ResourcePool.
func (x *Experience) Available() uint64 { return x.Points }

// Withdraw implements core.ResourcePool.
func (x *Experience) Withdraw(n uint64) bool {
	if n > x.Points {
		return false
	}
	x.Points -= n
	return true
}

// Loadout is a scripted ability schedule for headless runs.
// Every Interval steps each action is attempted once.
type Loadout struct {
	Actions  []core.Action
	Interval uint64
}

// Due reports whether the loadout fires on step.
func (l *Loadout) Due(step uint64) bool {
	return l.Interval > 0 && len(l.Actions) > 0 && step%l.Interval == 0
}
