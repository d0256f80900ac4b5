package attrs

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestTypedAccess(t *testing.T) {
	a := New()
	a.SetInt("n", 42)
	a.SetFloat("f", 2.5)
	a.SetBool("b", true)

	if got := a.Int("n"); got != 42 {
		t.Errorf("Int(n) = %d, want 42", got)
	}
	if got := a.Float("f"); got != 2.5 {
		t.Errorf("Float(f) = %v, want 2.5", got)
	}
	if !a.Bool("b") {
		t.Error("Bool(b) = false, want true")
	}
	if got := a.Int("missing"); got != 0 {
		t.Errorf("Int(missing) = %d, want 0", got)
	}
}

func TestLenientConversion(t *testing.T) {
	tests := []struct {
		name     string
		v        Value
		wantInt  int64
		wantBool bool
	}{
		{"int zero", IntValue(0), 0, false},
		{"int one", IntValue(1), 1, true},
		{"float", FloatValue(3.9), 3, true},
		{"bool true", BoolValue(true), 1, true},
		{"bool false", BoolValue(false), 0, false},
		{"empty", Value{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.AsInt(); got != tt.wantInt {
				t.Errorf("AsInt() = %d, want %d", got, tt.wantInt)
			}
			if got := tt.v.AsBool(); got != tt.wantBool {
				t.Errorf("AsBool() = %v, want %v", got, tt.wantBool)
			}
		})
	}
}

func TestRemovePrefix(t *testing.T) {
	a := New()
	a.SetInt(PenaltyCap("THORNS"), 2)
	a.SetInt(PenaltyTier("THORNS"), 1)
	a.SetInt(Level("THORNS"), 3)

	a.RemovePrefix("Penalty")
	if got := a.Keys(); !slices.Equal(got, []string{"upgrade_THORNS"}) {
		t.Errorf("Keys() after RemovePrefix = %v", got)
	}
}

func TestSplitKey(t *testing.T) {
	tests := []struct {
		key        string
		wantPrefix string
		wantSpell  string
		wantOK     bool
	}{
		{"upgrade_energy_capacity", PrefixLevel, "energy_capacity", true},
		{"HasUpgrade_STEALTH", PrefixOwned, "STEALTH", true},
		{"PenaltyExpire_THORNS", PrefixPenExpire, "THORNS", true},
		{"PenaltyDebtXP_ORE_VISION", PrefixPenDebtXP, "ORE_VISION", true},
		{"Energy", "", "", false},
		{"upgrade_", "", "", false},
	}
	for _, tt := range tests {
		p, s, ok := SplitKey(tt.key)
		if p != tt.wantPrefix || s != tt.wantSpell || ok != tt.wantOK {
			t.Errorf("SplitKey(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.key, p, s, ok, tt.wantPrefix, tt.wantSpell, tt.wantOK)
		}
	}
}

func TestJSONPreservesTypes(t *testing.T) {
	a := New()
	a.SetInt(KeyEnergy, 1500)
	a.SetBool(Disabled("STEALTH"), true)
	a.SetFloat("ratio", 0.25)

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back := New()
	if err := json.Unmarshal(data, back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	v, ok := back.Get(KeyEnergy)
	if !ok || v.Int == nil || *v.Int != 1500 {
		t.Errorf("Energy after round trip = %v, want int 1500", v)
	}
	if v, _ := back.Get(Disabled("STEALTH")); v.Bool == nil || !*v.Bool {
		t.Errorf("Disabled flag after round trip = %v, want bool true", v)
	}
	if v, _ := back.Get("ratio"); v.Float == nil || *v.Float != 0.25 {
		t.Errorf("ratio after round trip = %v, want float 0.25", v)
	}
}
