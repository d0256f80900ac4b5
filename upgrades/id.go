// Package upgrades defines upgrade identities and the registry of upgrade definitions.
package upgrades

import "strings"

// Kind enumerates the upgrades the engine knows about.
type Kind uint8

const (
	KindUnknown Kind = iota

	// Basic
	EnergyCapacity
	EnergyEfficiency
	ArmorEnhancement
	SpeedBoost
	Regeneration
	FlightModule
	ShieldGenerator
	TemperatureControl

	// Survival
	YellowShield
	HealthRegen
	HungerThirst
	Thorns
	FireExtinguish

	// Auxiliary
	WaterproofModule
	OreVision
	MovementSpeed
	Stealth
	ExpAmplifier
	PoisonImmunity
	NightVision
	WaterBreathing
	ItemMagnet
	NeuralSynchronizer

	// Combat
	DamageBoost
	AttackSpeed
	RangeExtension
	Pursuit
	CriticalStrike
	MagicAbsorb

	// Energy
	KineticGenerator
	SolarGenerator
	VoidEnergy
	CombatCharger

	kindCount
)

var kindNames = [kindCount]string{
	KindUnknown:        "",
	EnergyCapacity:     "ENERGY_CAPACITY",
	EnergyEfficiency:   "ENERGY_EFFICIENCY",
	ArmorEnhancement:   "ARMOR_ENHANCEMENT",
	SpeedBoost:         "SPEED_BOOST",
	Regeneration:       "REGENERATION",
	FlightModule:       "FLIGHT_MODULE",
	ShieldGenerator:    "SHIELD_GENERATOR",
	TemperatureControl: "TEMPERATURE_CONTROL",
	YellowShield:       "YELLOW_SHIELD",
	HealthRegen:        "HEALTH_REGEN",
	HungerThirst:       "HUNGER_THIRST",
	Thorns:             "THORNS",
	FireExtinguish:     "FIRE_EXTINGUISH",
	WaterproofModule:   "WATERPROOF_MODULE",
	OreVision:          "ORE_VISION",
	MovementSpeed:      "MOVEMENT_SPEED",
	Stealth:            "STEALTH",
	ExpAmplifier:       "EXP_AMPLIFIER",
	PoisonImmunity:     "POISON_IMMUNITY",
	NightVision:        "NIGHT_VISION",
	WaterBreathing:     "WATER_BREATHING",
	ItemMagnet:         "ITEM_MAGNET",
	NeuralSynchronizer: "NEURAL_SYNCHRONIZER",
	DamageBoost:        "DAMAGE_BOOST",
	AttackSpeed:        "ATTACK_SPEED",
	RangeExtension:     "RANGE_EXTENSION",
	Pursuit:            "PURSUIT",
	CriticalStrike:     "CRITICAL_STRIKE",
	MagicAbsorb:        "MAGIC_ABSORB",
	KineticGenerator:   "KINETIC_GENERATOR",
	SolarGenerator:     "SOLAR_GENERATOR",
	VoidEnergy:         "VOID_ENERGY",
	CombatCharger:      "COMBAT_CHARGER",
}

var kindByName map[string]Kind

func init() {
	kindByName = make(map[string]Kind, kindCount)
	for k := KindUnknown + 1; k < kindCount; k++ {
		kindByName[kindNames[k]] = k
	}
}

// String returns the canonical id of the kind.
func (k Kind) String() string {
	if k >= kindCount {
		return ""
	}
	return kindNames[k]
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindUnknown + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ID is a canonical upgrade identity. It is comparable and usable as a map key.
// Ids outside the Kind enumeration carry their normalized spelling.
type ID struct {
	kind Kind
	raw  string
}

// Of returns the ID of a known kind.
func Of(k Kind) ID {
	return ID{kind: k}
}

// Parse normalizes s (trim, uppercase) and maps it onto a Kind when one matches.
// Alias resolution needs a Registry; see Registry.Canonicalize.
func Parse(s string) ID {
	n := Normalize(s)
	if k, ok := kindByName[n]; ok {
		return ID{kind: k}
	}
	return ID{raw: n}
}

// Normalize trims and uppercases an upgrade spelling.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Kind returns the enumerated kind, or KindUnknown.
func (id ID) Kind() Kind { return id.kind }

// IsZero reports whether id is the empty identity.
func (id ID) IsZero() bool { return id.kind == KindUnknown && id.raw == "" }

// Enumerated reports whether id belongs to the Kind enumeration.
func (id ID) Enumerated() bool { return id.kind != KindUnknown }

// String returns the canonical spelling.
func (id ID) String() string {
	if id.kind != KindUnknown {
		return id.kind.String()
	}
	return id.raw
}

// Is reports whether id is the given kind.
func (id ID) Is(k Kind) bool { return id.kind == k && k != KindUnknown }
