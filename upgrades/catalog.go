package upgrades

// registerDefaults adds the full upgrade catalog.
// Update this when adding new upgrade kinds.
func (r *Registry) registerDefaults() {
	// Basic
	r.Register(Definition{ID: Of(EnergyCapacity), DisplayName: "Energy Capacity", Category: Basic, MaxLevel: 5})
	r.Register(Definition{ID: Of(EnergyEfficiency), DisplayName: "Energy Efficiency", Category: Basic, MaxLevel: 5})
	r.Register(Definition{ID: Of(ArmorEnhancement), DisplayName: "Armor Enhancement", Category: Basic, MaxLevel: 5})
	r.Register(Definition{ID: Of(SpeedBoost), DisplayName: "Speed Boost", Category: Basic, MaxLevel: 5})
	r.Register(Definition{ID: Of(Regeneration), DisplayName: "Regeneration", Category: Basic, MaxLevel: 5})
	r.Register(Definition{ID: Of(FlightModule), DisplayName: "Flight Module", Category: Basic, MaxLevel: 3})
	r.Register(Definition{ID: Of(ShieldGenerator), DisplayName: "Shield Generator", Category: Basic, MaxLevel: 3})
	r.Register(Definition{ID: Of(TemperatureControl), DisplayName: "Temperature Control", Category: Basic, MaxLevel: 3})

	// Survival
	r.Register(Definition{ID: Of(YellowShield), DisplayName: "Yellow Shield", Category: Survival, MaxLevel: 3})
	r.Register(Definition{ID: Of(HealthRegen), DisplayName: "Health Regen", Category: Survival, MaxLevel: 3})
	r.Register(Definition{ID: Of(HungerThirst), DisplayName: "Hunger & Thirst", Category: Survival, MaxLevel: 3})
	r.Register(Definition{ID: Of(Thorns), DisplayName: "Thorns", Category: Survival, MaxLevel: 3})
	r.Register(Definition{ID: Of(FireExtinguish), DisplayName: "Fire Extinguish", Category: Survival, MaxLevel: 3})

	// Auxiliary
	r.Register(Definition{
		ID:          Of(WaterproofModule),
		DisplayName: "Waterproof Module",
		Category:    Auxiliary,
		MaxLevel:    3,
		Aliases:     []string{"WATERPROOF", "waterproof_module", "waterproof"},
	})
	r.Register(Definition{ID: Of(OreVision), DisplayName: "Ore Vision", Category: Auxiliary, MaxLevel: 3})
	r.Register(Definition{ID: Of(MovementSpeed), DisplayName: "Movement Speed", Category: Auxiliary, MaxLevel: 3})
	r.Register(Definition{ID: Of(Stealth), DisplayName: "Stealth", Category: Auxiliary, MaxLevel: 3})
	r.Register(Definition{ID: Of(ExpAmplifier), DisplayName: "Experience Amplifier", Category: Auxiliary, MaxLevel: 3})
	r.Register(Definition{ID: Of(PoisonImmunity), DisplayName: "Poison Immunity", Category: Auxiliary, MaxLevel: 1})
	r.Register(Definition{ID: Of(NightVision), DisplayName: "Night Vision", Category: Auxiliary, MaxLevel: 1})
	r.Register(Definition{ID: Of(WaterBreathing), DisplayName: "Water Breathing", Category: Auxiliary, MaxLevel: 1})
	r.Register(Definition{ID: Of(ItemMagnet), DisplayName: "Item Magnet", Category: Auxiliary, MaxLevel: 3})
	r.Register(Definition{ID: Of(NeuralSynchronizer), DisplayName: "Neural Synchronizer", Category: Auxiliary, MaxLevel: 1})

	// Combat
	r.Register(Definition{ID: Of(DamageBoost), DisplayName: "Damage Boost", Category: Combat, MaxLevel: 5})
	r.Register(Definition{ID: Of(AttackSpeed), DisplayName: "Attack Speed", Category: Combat, MaxLevel: 3})
	r.Register(Definition{ID: Of(RangeExtension), DisplayName: "Range Extension", Category: Combat, MaxLevel: 3})
	r.Register(Definition{ID: Of(Pursuit), DisplayName: "Pursuit", Category: Combat, MaxLevel: 3})
	r.Register(Definition{ID: Of(CriticalStrike), DisplayName: "Critical Strike", Category: Combat, MaxLevel: 3})
	r.Register(Definition{ID: Of(MagicAbsorb), DisplayName: "Magic Absorb", Category: Combat, MaxLevel: 3})

	// Energy
	r.Register(Definition{ID: Of(KineticGenerator), DisplayName: "Kinetic Generator", Category: Energy, MaxLevel: 3})
	r.Register(Definition{ID: Of(SolarGenerator), DisplayName: "Solar Generator", Category: Energy, MaxLevel: 3})
	r.Register(Definition{ID: Of(VoidEnergy), DisplayName: "Void Resonance", Category: Energy, MaxLevel: 3})
	r.Register(Definition{ID: Of(CombatCharger), DisplayName: "Combat Charger", Category: Energy, MaxLevel: 3})
}
