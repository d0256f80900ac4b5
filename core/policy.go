package core

import (
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/config"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/upgrades"
)

// Mode is the core's energy operating mode.
type Mode uint8

const (
	ModeNormal Mode = iota
	ModePowerSaving
	ModeEmergency
	ModeCritical
	ModeShutdown
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModePowerSaving:
		return "power_saving"
	case ModeEmergency:
		return "emergency"
	case ModeCritical:
		return "critical"
	case ModeShutdown:
		return "shutdown"
	}
	return "unknown"
}

// ModeFor classifies a stored fraction. An empty store is shut down.
func ModeFor(cfg config.DepletionConfig, energy uint64, fraction float64) Mode {
	switch {
	case energy == 0:
		return ModeShutdown
	case cfg.ForceEmergency && fraction >= cfg.EmergencyBelow:
		return ModeEmergency
	case fraction >= cfg.PowerSavingBelow:
		return ModeNormal
	case fraction >= cfg.EmergencyBelow:
		return ModePowerSaving
	case fraction >= cfg.CriticalBelow:
		return ModeEmergency
	}
	return ModeCritical
}

// ModePolicy vetoes upgrades as the store drains: power saving blocks
// high-consumption upgrades, emergency allows only important ones,
// critical only essential ones, and shutdown nothing. Independently of
// the mode, an upgrade needs its minimum stored energy to run.
type ModePolicy struct {
	cfg       config.DepletionConfig
	high      map[upgrades.ID]bool
	important map[upgrades.ID]bool
	essential map[upgrades.ID]bool
	minEnergy map[upgrades.ID]uint64
}

// NewModePolicy resolves the configured upgrade classes against reg.
func NewModePolicy(cfg config.DepletionConfig, reg *upgrades.Registry) *ModePolicy {
	set := func(names []string) map[upgrades.ID]bool {
		m := make(map[upgrades.ID]bool, len(names))
		for _, n := range names {
			m[reg.Canonicalize(n)] = true
		}
		return m
	}
	p := &ModePolicy{
		cfg:       cfg,
		high:      set(cfg.HighConsumption),
		important: set(cfg.Important),
		essential: set(cfg.Essential),
		minEnergy: make(map[upgrades.ID]uint64, len(cfg.MinEnergy)),
	}
	for n, v := range cfg.MinEnergy {
		p.minEnergy[reg.Canonicalize(n)] = v
	}
	return p
}

// Mode returns the current mode of the viewed state.
func (p *ModePolicy) Mode(c *Call, q Query) Mode {
	return ModeFor(p.cfg, q.Energy(), q.Fraction(c))
}

// MinEnergy returns the stored energy id needs to run.
func (p *ModePolicy) MinEnergy(id upgrades.ID) uint64 {
	if v, ok := p.minEnergy[id]; ok {
		return v
	}
	return p.cfg.DefaultMinEnergy
}

// Allow implements DepletionPolicy.
func (p *ModePolicy) Allow(c *Call, q Query, id upgrades.ID) bool {
	if q.Energy() < p.MinEnergy(id) {
		return false
	}
	switch p.Mode(c, q) {
	case ModeNormal:
		return true
	case ModePowerSaving:
		return !p.high[id]
	case ModeEmergency:
		return p.important[id]
	case ModeCritical:
		return p.essential[id]
	}
	return false
}
