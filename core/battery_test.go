package core

import (
	"testing"
)

func TestSelectBattery(t *testing.T) {
	e, _ := newTestEngine(t)

	small := &fakeBattery{stored: 1000, tier: 1}
	big := &fakeBattery{stored: 5000, tier: 2}
	empty := &fakeBattery{stored: 0, tier: 4}
	creative := &fakeBattery{tier: 5}

	tests := []struct {
		name    string
		sources []BatterySource
		want    BatterySource
	}{
		{"none", nil, nil},
		{"only empty", []BatterySource{empty}, nil},
		{"most charge wins", []BatterySource{small, big, empty}, big},
		{"unlimited wins outright", []BatterySource{big, creative, small}, creative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.SelectBattery(tt.sources); got != tt.want {
				t.Errorf("SelectBattery = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChargeFromBatteries_Bounds(t *testing.T) {
	tests := []struct {
		name       string
		stored     uint64
		battery    *fakeBattery
		want       uint64
		wantSource uint64
	}{
		{"tier rate", 0, &fakeBattery{stored: 5000, tier: 2}, 200, 4800},
		{"source charge", 0, &fakeBattery{stored: 30, tier: 4}, 30, 0},
		{"room", 19900, &fakeBattery{stored: 100000, tier: 4}, 100, 99900},
		{"top finite tier", 0, &fakeBattery{stored: 100000, tier: 4}, 1000, 99000},
		{"full store", 20000, &fakeBattery{stored: 100, tier: 1}, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t)
			s := stateWith(tt.stored, nil)
			agent := newFakeAgent()
			agent.batteries = []BatterySource{tt.battery}

			got := e.ChargeFromBatteries(nil, s, agent)
			if got.Accepted != tt.want {
				t.Errorf("Accepted = %d, want %d", got.Accepted, tt.want)
			}
			if s.Energy != tt.stored+tt.want {
				t.Errorf("energy = %d, want %d", s.Energy, tt.stored+tt.want)
			}
			if tt.battery.stored != tt.wantSource {
				t.Errorf("source = %d, want %d", tt.battery.stored, tt.wantSource)
			}
		})
	}
}

func TestChargeFromBatteries_UnlimitedNeverDepletes(t *testing.T) {
	e, _ := newTestEngine(t)
	s := stateWith(0, nil)
	agent := newFakeAgent()
	creative := &fakeBattery{tier: 5}
	agent.batteries = []BatterySource{creative}

	got := e.ChargeFromBatteries(nil, s, agent)
	if got.Accepted != 2000 {
		t.Errorf("unlimited transfer = %d, want twice the top finite rate (2000)", got.Accepted)
	}
	if creative.stored != 0 {
		t.Errorf("unlimited source changed to %d", creative.stored)
	}
}

func TestChargeFromBatteries_RateRisesWithTier(t *testing.T) {
	rates := make(map[int]uint64)
	for tier := 1; tier <= 5; tier++ {
		e, _ := newTestEngine(t)
		s := stateWith(0, nil)
		agent := newFakeAgent()
		agent.batteries = []BatterySource{&fakeBattery{stored: 1000000, tier: tier}}
		rates[tier] = e.ChargeFromBatteries(nil, s, agent).Accepted
	}

	for tier := 2; tier <= 5; tier++ {
		if rates[tier] <= rates[tier-1] {
			t.Errorf("tier %d accepted %d, want more than tier %d (%d)", tier, rates[tier], tier-1, rates[tier-1])
		}
	}
	if rates[5] != 2*rates[4] {
		t.Errorf("unlimited accepted %d, want twice tier 4 (%d)", rates[5], 2*rates[4])
	}
}

func TestBatteryCache_RefreshInterval(t *testing.T) {
	e, _ := newTestEngine(t)
	s := stateWith(0, nil)
	agent := newFakeAgent()
	b := &fakeBattery{stored: 10, tier: 3}
	agent.batteries = []BatterySource{b, &fakeBattery{stored: 100, tier: 1}}

	e.ChargeFromBatteries(nil, s, agent)
	if !s.Cache.HasBattery || s.Cache.Tier != 3 {
		t.Fatalf("cache = %+v, want battery tier 3", s.Cache)
	}

	// Batteries vanish, but the cache holds until it goes stale.
	agent.batteries = nil
	agent.step = 19
	e.ChargeFromBatteries(nil, s, agent)
	if !s.Cache.HasBattery {
		t.Error("cache refreshed before its lifetime elapsed")
	}

	agent.step = 20
	e.ChargeFromBatteries(nil, s, agent)
	if s.Cache.HasBattery {
		t.Error("stale cache not refreshed")
	}

	e.InvalidateBatteryCache(s)
	if s.Cache.Valid {
		t.Error("InvalidateBatteryCache left the cache valid")
	}
}
