package upgrades

import (
	"slices"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		in   string
		want ID
	}{
		{"ENERGY_CAPACITY", Of(EnergyCapacity)},
		{"  energy_capacity ", Of(EnergyCapacity)},
		{"waterproof", Of(WaterproofModule)},
		{"WATERPROOF", Of(WaterproofModule)},
		{"waterproof_module", Of(WaterproofModule)},
		{"Solar_Generator", Of(SolarGenerator)},
	}

	for _, tt := range tests {
		if got := r.Canonicalize(tt.in); got != tt.want {
			t.Errorf("Canonicalize(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCanonicalizeUnknown(t *testing.T) {
	r := NewDefaultRegistry()

	id := r.Canonicalize(" mystery_module")
	if id.Enumerated() {
		t.Fatalf("Canonicalize(mystery) enumerated as %v", id.Kind())
	}
	if id.String() != "MYSTERY_MODULE" {
		t.Errorf("unknown id String() = %q, want MYSTERY_MODULE", id.String())
	}
	if r.Known(id) {
		t.Error("unknown id reported as known")
	}
	if got := r.MaxLevel(id); got != DefaultMaxLevel {
		t.Errorf("MaxLevel(unknown) = %d, want %d", got, DefaultMaxLevel)
	}
	if id != r.Canonicalize("MYSTERY_MODULE") {
		t.Error("unknown ids with the same spelling are not equal")
	}
}

func TestCatalogCounts(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		cat  Category
		want int
	}{
		{Basic, 8},
		{Survival, 5},
		{Auxiliary, 10},
		{Combat, 6},
		{Energy, 4},
	}
	for _, tt := range tests {
		if got := len(r.ByCategory(tt.cat)); got != tt.want {
			t.Errorf("ByCategory(%v) = %d definitions, want %d", tt.cat, got, tt.want)
		}
	}
	if got := len(r.All()); got != len(Kinds()) {
		t.Errorf("All() = %d, want one per kind (%d)", got, len(Kinds()))
	}
}

func TestMaxLevel(t *testing.T) {
	r := NewDefaultRegistry()
	tests := []struct {
		kind Kind
		want uint32
	}{
		{EnergyCapacity, 5},
		{FlightModule, 3},
		{NightVision, 1},
		{DamageBoost, 5},
	}
	for _, tt := range tests {
		if got := r.MaxLevel(Of(tt.kind)); got != tt.want {
			t.Errorf("MaxLevel(%v) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestSpellings(t *testing.T) {
	r := NewDefaultRegistry()

	got := r.Spellings(Of(WaterproofModule))
	for _, want := range []string{"WATERPROOF_MODULE", "waterproof_module", "WATERPROOF", "waterproof"} {
		if !slices.Contains(got, want) {
			t.Errorf("Spellings(WATERPROOF_MODULE) missing %q: %v", want, got)
		}
	}
	if len(got) != 4 {
		t.Errorf("Spellings(WATERPROOF_MODULE) = %v, want 4 entries", got)
	}

	plain := r.Spellings(Of(Thorns))
	if !slices.Equal(plain, []string{"THORNS", "thorns"}) {
		t.Errorf("Spellings(THORNS) = %v", plain)
	}
}

func TestIsGenerator(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		id   ID
		want bool
	}{
		{Of(KineticGenerator), true},
		{Of(SolarGenerator), true},
		{Of(VoidEnergy), true},
		{Of(CombatCharger), true},
		{Of(EnergyCapacity), false},
		{Of(ShieldGenerator), true}, // name marker
		{r.Canonicalize("custom_energy_gen"), true},
		{Of(Thorns), false},
	}
	for _, tt := range tests {
		if got := r.IsGenerator(tt.id); got != tt.want {
			t.Errorf("IsGenerator(%v) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	fn()
}

func TestRegisterPanics(t *testing.T) {
	expectPanic(t, "duplicate register", func() {
		r := NewDefaultRegistry()
		r.Register(Definition{ID: Of(Thorns)})
	})
	expectPanic(t, "register over alias", func() {
		r := NewDefaultRegistry()
		r.Register(Definition{ID: Parse("WATERPROOF")})
	})
	expectPanic(t, "alias to unregistered", func() {
		r := NewRegistry()
		r.Alias("x", Of(Thorns))
	})
	expectPanic(t, "alias shadowing canonical", func() {
		r := NewDefaultRegistry()
		r.Alias("THORNS", Of(Stealth))
	})
	expectPanic(t, "alias remapped", func() {
		r := NewDefaultRegistry()
		r.Alias("waterproof", Of(Stealth))
	})
}

func TestRegisterCustom(t *testing.T) {
	r := NewDefaultRegistry()
	custom := Parse("jetpack")
	r.Register(Definition{ID: custom, Category: Auxiliary})
	r.Alias("rocket_pack", custom)

	if !r.Known(custom) {
		t.Fatal("custom id not known after Register")
	}
	if got := r.Canonicalize("Rocket_Pack"); got != custom {
		t.Errorf("Canonicalize(alias) = %v, want %v", got, custom)
	}
	if got := r.MaxLevel(custom); got != DefaultMaxLevel {
		t.Errorf("MaxLevel(custom) = %d, want default %d", got, DefaultMaxLevel)
	}
	if got := r.DisplayName(custom); got != "JETPACK" {
		t.Errorf("DisplayName(custom) = %q, want JETPACK", got)
	}
}
