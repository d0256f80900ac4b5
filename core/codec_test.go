package core

import (
	"testing"
	"time"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/attrs"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/upgrades"
)

func TestDecode_MergesAliasSpellings(t *testing.T) {
	e, _ := newTestEngine(t)
	a := attrs.New()
	a.SetInt("upgrade_WATERPROOF", 2)
	a.SetInt("upgrade_waterproof_module", 2)
	a.SetBool("Disabled_waterproof", true)

	s := e.Decode(a)
	if got := s.TotalInstalled(); got != 1 {
		t.Errorf("TotalInstalled = %d, want 1", got)
	}
	if s.Levels[waterproof] != 2 {
		t.Errorf("level = %d, want 2", s.Levels[waterproof])
	}
	if !s.Disabled[waterproof] {
		t.Error("disabled flag under an alias was lost")
	}
}

func TestDecode_TakesMaxAcrossSpellings(t *testing.T) {
	e, _ := newTestEngine(t)
	a := attrs.New()
	a.SetInt("upgrade_thorns", 1)
	a.SetInt("upgrade_THORNS", 3)

	if got := e.Decode(a).Levels[thorns]; got != 3 {
		t.Errorf("level = %d, want 3", got)
	}
}

func TestDecode_SkipsUnknownAndEncodeKeepsThem(t *testing.T) {
	e, _ := newTestEngine(t)
	a := attrs.New()
	a.SetInt("upgrade_MYSTERY_MODULE", 3)
	a.SetInt("upgrade_THORNS", 1)

	s := e.Decode(a)
	if len(s.Levels) != 1 {
		t.Errorf("Levels = %v, want THORNS only", s.Levels)
	}

	e.Encode(s, a)
	if got := a.Int("upgrade_MYSTERY_MODULE"); got != 3 {
		t.Errorf("unknown key after Encode = %d, want 3", got)
	}
}

func TestDecode_ClampsEnergyToCapacity(t *testing.T) {
	e, _ := newTestEngine(t)
	a := attrs.New()
	a.SetInt(attrs.KeyEnergy, 99999)

	if got := e.Decode(a).Energy; got != 20000 {
		t.Errorf("Energy = %d, want 20000", got)
	}
}

func TestEncode_WritesEverySpelling(t *testing.T) {
	e, _ := newTestEngine(t)
	s := stateWith(0, map[upgrades.ID]uint32{waterproof: 3})
	a := attrs.New()

	e.Encode(s, a)
	for _, k := range []string{"upgrade_WATERPROOF_MODULE", "upgrade_waterproof_module", "upgrade_WATERPROOF", "upgrade_waterproof"} {
		if got := a.Int(k); got != 3 {
			t.Errorf("%s = %d, want 3", k, got)
		}
	}
	if !a.Bool("HasUpgrade_WATERPROOF_MODULE") {
		t.Error("ownership flag missing")
	}
}

func TestEncode_RemovesUninstalled(t *testing.T) {
	e, _ := newTestEngine(t)
	a := attrs.New()
	a.SetInt("upgrade_thorns", 2)
	a.SetBool("HasUpgrade_THORNS", true)

	s := e.Decode(a)
	if err := e.Uninstall(nil, s, thorns); err != nil {
		t.Fatal(err)
	}
	e.Encode(s, a)

	for _, k := range a.Keys() {
		if _, sp, ok := attrs.SplitKey(k); ok && e.Registry().Canonicalize(sp) == thorns {
			t.Errorf("key %s survived uninstall", k)
		}
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	e, clock := newTestEngine(t)
	s := stateWith(12345, map[upgrades.ID]uint32{capacityUp: 1, damageBoost: 4, stealth: 0})
	s.PausedViaZero[stealth] = true
	s.OwnedMax[stealth] = 2
	s.Disabled[damageBoost] = true
	s.TotalSaved = 900
	s.SessionSaved = 40
	s.Mode = ModePowerSaving
	e.ApplyPenalty(nil, s, damageBoost, PenaltyOrder{Cap: 2, Duration: time.Minute, TierIncrement: 3, DebtEnergy: 70, DebtOther: 5})

	a := attrs.New()
	e.Encode(s, a)
	back := e.Decode(a)

	if back.Energy != 12345 || back.TotalSaved != 900 || back.SessionSaved != 40 || back.Mode != ModePowerSaving {
		t.Errorf("scalars = %d/%d/%d/%v", back.Energy, back.TotalSaved, back.SessionSaved, back.Mode)
	}
	if back.Levels[capacityUp] != 1 || back.Levels[damageBoost] != 2 {
		t.Errorf("levels = %v", back.Levels)
	}
	if _, ok := back.Levels[stealth]; !ok || !back.PausedViaZero[stealth] || back.OwnedMax[stealth] != 2 {
		t.Errorf("paused upgrade not preserved: level %v paused %v owned %d",
			back.Levels, back.PausedViaZero, back.OwnedMax[stealth])
	}
	if !back.Disabled[damageBoost] {
		t.Error("disabled flag lost")
	}

	p, ok := e.Penalty(back, damageBoost)
	if !ok {
		t.Fatal("penalty lost in round trip")
	}
	want := PenaltyRecord{Cap: 2, ExpiresAt: clock.Now().Add(time.Minute), Tier: 3, DebtEnergy: 70, DebtOther: 5}
	if p.Cap != want.Cap || !p.ExpiresAt.Equal(want.ExpiresAt) || p.Tier != want.Tier ||
		p.DebtEnergy != want.DebtEnergy || p.DebtOther != want.DebtOther {
		t.Errorf("penalty = %+v, want %+v", p, want)
	}
}
