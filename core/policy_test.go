package core

import (
	"testing"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/config"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/upgrades"
)

func TestModeFor(t *testing.T) {
	cfg := config.Defaults().Depletion
	forced := cfg
	forced.ForceEmergency = true

	tests := []struct {
		name     string
		cfg      config.DepletionConfig
		energy   uint64
		fraction float64
		want     Mode
	}{
		{"full", cfg, 20000, 1.0, ModeNormal},
		{"at power saving edge", cfg, 6000, 0.30, ModeNormal},
		{"power saving", cfg, 5000, 0.25, ModePowerSaving},
		{"emergency", cfg, 2000, 0.10, ModeEmergency},
		{"critical", cfg, 500, 0.025, ModeCritical},
		{"empty", cfg, 0, 0, ModeShutdown},
		{"forced emergency", forced, 20000, 1.0, ModeEmergency},
		{"forced still drops to critical", forced, 500, 0.025, ModeCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModeFor(tt.cfg, tt.energy, tt.fraction); got != tt.want {
				t.Errorf("ModeFor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModePolicy_Allow(t *testing.T) {
	exp := upgrades.Of(upgrades.ExpAmplifier)

	tests := []struct {
		name   string
		energy uint64
		id     upgrades.ID
		want   bool
	}{
		{"normal allows high consumption", 10000, oreVision, true},
		{"power saving blocks high consumption", 5000, oreVision, false},
		{"power saving allows the rest", 5000, damageBoost, true},
		{"emergency allows important", 2000, damageBoost, true},
		{"emergency blocks unimportant", 2000, exp, false},
		{"critical allows essential", 500, thorns, true},
		{"critical blocks important", 500, damageBoost, false},
		{"shutdown blocks essential", 0, thorns, false},
		{"generators bypass the policy", 0, kinetic, true},
		{"capacity bypasses the policy", 0, capacityUp, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			e, _ := newTestEngineWith(t, cfg, WithPolicy(NewModePolicy(cfg.Depletion, upgrades.NewDefaultRegistry())))
			s := stateWith(tt.energy, map[upgrades.ID]uint32{tt.id: 1})
			if got := e.IsActive(nil, s, tt.id); got != tt.want {
				t.Errorf("IsActive(%s) at %d = %v, want %v", tt.id, tt.energy, got, tt.want)
			}
		})
	}
}

func TestModePolicy_MinEnergy(t *testing.T) {
	cfg := config.Defaults()
	cfg.Energy.BaseCapacity = 1000
	reg := upgrades.NewDefaultRegistry()
	p := NewModePolicy(cfg.Depletion, reg)
	e, _ := newTestEngineWith(t, cfg, WithPolicy(p))

	if got := p.MinEnergy(oreVision); got != 1200 {
		t.Errorf("MinEnergy(ORE_VISION) = %d, want 1200", got)
	}
	if got := p.MinEnergy(upgrades.Of(upgrades.NightVision)); got != cfg.Depletion.DefaultMinEnergy {
		t.Errorf("MinEnergy(NIGHT_VISION) = %d, want default %d", got, cfg.Depletion.DefaultMinEnergy)
	}

	// A full store that is smaller than the upgrade's minimum still vetoes it.
	s := stateWith(1000, map[upgrades.ID]uint32{oreVision: 1, thorns: 1})
	if e.IsActive(nil, s, oreVision) {
		t.Error("ORE_VISION active below its minimum energy")
	}
	if !e.IsActive(nil, s, thorns) {
		t.Error("THORNS inactive on a full store")
	}
}

func TestModePolicy_ShrinksDrain(t *testing.T) {
	e, _ := newTestEngine(t)
	withPolicy, _ := newTestEngine(t, WithPolicy(NewModePolicy(e.Config().Depletion, e.Registry())))
	levels := map[upgrades.ID]uint32{oreVision: 1, damageBoost: 2, thorns: 1}

	// Power saving mode: ORE_VISION drops out of the active set.
	free := e.PassiveDrain(nil, stateWith(5000, levels))
	vetoed := withPolicy.PassiveDrain(nil, stateWith(5000, levels))
	if vetoed.DistinctTypes != free.DistinctTypes-1 {
		t.Errorf("active types = %d, want %d", vetoed.DistinctTypes, free.DistinctTypes-1)
	}
}
