// Package config provides configuration loading and access for the mechanical core engine.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine tuning parameters.
type Config struct {
	Step       StepConfig       `yaml:"step"`
	Energy     EnergyConfig     `yaml:"energy"`
	Drain      DrainConfig      `yaml:"drain"`
	Efficiency EfficiencyConfig `yaml:"efficiency"`
	Battery    BatteryConfig    `yaml:"battery"`
	Depletion  DepletionConfig  `yaml:"depletion"`
	Active     ActiveConfig     `yaml:"active"`
	Penalty    PenaltyConfig    `yaml:"penalty"`
	Conflict   ConflictConfig   `yaml:"conflict"`
	Generation GenerationConfig `yaml:"generation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Host       HostConfig       `yaml:"host"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// StepConfig holds simulation clock parameters.
type StepConfig struct {
	PerSecond int `yaml:"per_second"` // Host steps per wall-clock second
}

// EnergyConfig holds energy store parameters.
type EnergyConfig struct {
	BaseCapacity     uint64 `yaml:"base_capacity"`      // Capacity with no capacity upgrade
	CapacityPerLevel uint64 `yaml:"capacity_per_level"` // Added per ENERGY_CAPACITY level
	TransferPerStep  uint64 `yaml:"transfer_per_step"`  // Max receive/extract per call
}

// DrainConfig holds passive drain parameters.
// Per-level values are charged once per drain interval.
type DrainConfig struct {
	IntervalSteps     int                `yaml:"interval_steps"`      // Steps between passive charges
	WarnIntervalSteps int                `yaml:"warn_interval_steps"` // Min steps between low-power notices
	BaseOverhead      float64            `yaml:"base_overhead"`       // Added once when any upgrade drains
	IdleDrain         float64            `yaml:"idle_drain"`          // Core idle cost inside the curve
	DefaultPerLevel   float64            `yaml:"default_per_level"`   // Per-level cost for unlisted upgrades
	PerLevel          map[string]float64 `yaml:"per_level"`           // Per-level cost by upgrade id
	Leakage           LeakageConfig      `yaml:"leakage"`
	Overload          OverloadConfig     `yaml:"overload"`
	BatteryFactor     float64            `yaml:"battery_factor"` // Multiplier when a charged battery is carried
	FractionBands     []FractionBand     `yaml:"fraction_bands"`
}

// LeakageConfig describes the system leakage term.
type LeakageConfig struct {
	PerType  float64       `yaml:"per_type"`  // Per distinct active upgrade
	PerLevel float64       `yaml:"per_level"` // Per active level
	Bands    []LeakageBand `yaml:"bands"`     // Multiplier by distinct type count
	Beyond   float64       `yaml:"beyond"`    // Multiplier above the last band
}

// LeakageBand applies Multiplier while the distinct type count is at most MaxTypes.
type LeakageBand struct {
	MaxTypes   int     `yaml:"max_types"`
	Multiplier float64 `yaml:"multiplier"`
}

// OverloadConfig describes the piecewise overload curve over total active levels.
type OverloadConfig struct {
	Segments   []OverloadSegment `yaml:"segments"`
	TailGrowth float64           `yaml:"tail_growth"` // Per-level growth past the last segment
}

// OverloadSegment interpolates From..To over (previous UpTo, UpTo] with progress^Exponent.
type OverloadSegment struct {
	UpTo     int     `yaml:"up_to"`
	From     float64 `yaml:"from"`
	To       float64 `yaml:"to"`
	Exponent float64 `yaml:"exponent"`
}

// FractionBand applies while the stored fraction is below Below.
// Fractions at or above every band use the last band.
type FractionBand struct {
	Below       float64 `yaml:"below"`
	NoBattery   float64 `yaml:"no_battery"`
	WithBattery float64 `yaml:"with_battery"`
}

// EfficiencyConfig holds the efficiency multiplier table.
type EfficiencyConfig struct {
	Table      []float64 `yaml:"table"`       // Multiplier by level, index 0 = inactive
	StepBeyond float64   `yaml:"step_beyond"` // Reduction per level past the table
	Floor      float64   `yaml:"floor"`       // Lowest multiplier
}

// BatteryConfig holds charging parameters.
type BatteryConfig struct {
	CacheSteps          int                 `yaml:"cache_steps"` // Battery presence cache lifetime
	UnlimitedRateFactor uint64              `yaml:"unlimited_rate_factor"`
	Tiers               []BatteryTierConfig `yaml:"tiers"`
}

// BatteryTierConfig describes one battery tier.
type BatteryTierConfig struct {
	Tier          int     `yaml:"tier"`
	Name          string  `yaml:"name"`
	Capacity      uint64  `yaml:"capacity"`
	RatePerStep   uint64  `yaml:"rate_per_step"`
	DrainDiscount float64 `yaml:"drain_discount"` // Passive drain multiplier while carried
	Unlimited     bool    `yaml:"unlimited"`
}

// DepletionConfig holds operating mode thresholds and upgrade classes.
type DepletionConfig struct {
	PowerSavingBelow float64           `yaml:"power_saving_below"`
	EmergencyBelow   float64           `yaml:"emergency_below"`
	CriticalBelow    float64           `yaml:"critical_below"`
	ForceEmergency   bool              `yaml:"force_emergency"`
	HighConsumption  []string          `yaml:"high_consumption"` // Blocked from power saving down
	Important        []string          `yaml:"important"`        // Allowed in emergency
	Essential        []string          `yaml:"essential"`        // Allowed in critical
	DefaultMinEnergy uint64            `yaml:"default_min_energy"`
	MinEnergy        map[string]uint64 `yaml:"min_energy"` // Stored energy required to run
}

// ActiveConfig holds per-action energy costs.
type ActiveConfig struct {
	Default                uint64   `yaml:"default"`
	OreVisionBase          uint64   `yaml:"ore_vision_base"`
	OreVisionPerLevel      uint64   `yaml:"ore_vision_per_level"`
	OreVisionScan          uint64   `yaml:"ore_vision_scan"`
	StealthPerSecond       []uint64 `yaml:"stealth_per_second"` // By level, index 0 = level 1
	ExpAmplifierBase       uint64   `yaml:"exp_amplifier_base"`
	ExpAmplifierPerPoint   uint64   `yaml:"exp_amplifier_per_point"`
	DamageBoost            uint64   `yaml:"damage_boost"`
	CriticalStrike         uint64   `yaml:"critical_strike"`
	PursuitMark            uint64   `yaml:"pursuit_mark"`
	PursuitDash            uint64   `yaml:"pursuit_dash"`
	RangeIndicator         uint64   `yaml:"range_indicator"`
	ShieldMaintainPerLevel uint64   `yaml:"shield_maintain_per_level"`
	ShieldRestorePerPoint  uint64   `yaml:"shield_restore_per_point"`
	HealthRegenPerLevel    uint64   `yaml:"health_regen_per_level"`
	HungerRestore          uint64   `yaml:"hunger_restore"`
	ThirstRestore          uint64   `yaml:"thirst_restore"`
	FireExtinguish         uint64   `yaml:"fire_extinguish"`
}

// PenaltyConfig holds penalty floor values.
type PenaltyConfig struct {
	MinCap             uint32  `yaml:"min_cap"`
	MinDurationSeconds float64 `yaml:"min_duration_seconds"`
}

// ConflictConfig holds the equipment conflict check cadence.
type ConflictConfig struct {
	IntervalSteps int `yaml:"interval_steps"`
}

// GenerationConfig holds generator output estimates per level per drain interval.
type GenerationConfig struct {
	PerLevel map[string]float64 `yaml:"per_level"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowSteps         int `yaml:"window_steps"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// HostConfig holds reference host parameters.
type HostConfig struct {
	Agents              int     `yaml:"agents"`
	InventorySlots      int     `yaml:"inventory_slots"`
	InitialEnergy       uint64  `yaml:"initial_energy"`
	InitialXP           uint64  `yaml:"initial_xp"`
	UpgradesPerCore     int     `yaml:"upgrades_per_core"`     // Random installs per spawned core
	RingChance          float64 `yaml:"ring_chance"`           // Chance a spawned agent starts with the cursed ring
	BatteryChance       float64 `yaml:"battery_chance"`        // Chance a spawned agent carries a battery
	ActionIntervalSteps int     `yaml:"action_interval_steps"` // Steps between scripted ability uses
	SnapshotEverySteps  int     `yaml:"snapshot_every_steps"`  // 0 disables periodic snapshots
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TierByLevel   map[int]BatteryTierConfig // tier number -> tier config
	TopFiniteRate uint64                    // Highest finite tier rate
	UnlimitedRate uint64                    // TopFiniteRate * UnlimitedRateFactor
	StepSeconds   float64                   // 1 / Step.PerSecond
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Step.PerSecond <= 0 {
		c.Step.PerSecond = 20
	}
	c.Derived.StepSeconds = 1.0 / float64(c.Step.PerSecond)

	normalizeKeys(c.Drain.PerLevel)
	normalizeKeys(c.Generation.PerLevel)
	normalizeKeys(c.Depletion.MinEnergy)
	upperAll(c.Depletion.HighConsumption)
	upperAll(c.Depletion.Important)
	upperAll(c.Depletion.Essential)

	sort.Slice(c.Drain.Leakage.Bands, func(i, j int) bool {
		return c.Drain.Leakage.Bands[i].MaxTypes < c.Drain.Leakage.Bands[j].MaxTypes
	})
	sort.Slice(c.Drain.Overload.Segments, func(i, j int) bool {
		return c.Drain.Overload.Segments[i].UpTo < c.Drain.Overload.Segments[j].UpTo
	})
	sort.Slice(c.Drain.FractionBands, func(i, j int) bool {
		return c.Drain.FractionBands[i].Below < c.Drain.FractionBands[j].Below
	})

	c.Derived.TierByLevel = make(map[int]BatteryTierConfig, len(c.Battery.Tiers))
	c.Derived.TopFiniteRate = 0
	for _, t := range c.Battery.Tiers {
		c.Derived.TierByLevel[t.Tier] = t
		if !t.Unlimited && t.RatePerStep > c.Derived.TopFiniteRate {
			c.Derived.TopFiniteRate = t.RatePerStep
		}
	}
	factor := c.Battery.UnlimitedRateFactor
	if factor == 0 {
		factor = 2
	}
	c.Derived.UnlimitedRate = c.Derived.TopFiniteRate * factor
}

// Validate checks that the drain tables keep the drain monotone and that
// thresholds are ordered.
func (c *Config) Validate() error {
	var errs []error

	if c.Energy.TransferPerStep == 0 {
		errs = append(errs, errors.New("energy.transfer_per_step must be positive"))
	}
	if c.Drain.IntervalSteps <= 0 {
		errs = append(errs, errors.New("drain.interval_steps must be positive"))
	}

	prev := 0.0
	for i, b := range c.Drain.Leakage.Bands {
		if b.Multiplier < prev {
			errs = append(errs, fmt.Errorf("drain.leakage.bands[%d]: multiplier %.3f decreases", i, b.Multiplier))
		}
		prev = b.Multiplier
	}
	if c.Drain.Leakage.Beyond < prev {
		errs = append(errs, fmt.Errorf("drain.leakage.beyond %.3f below last band", c.Drain.Leakage.Beyond))
	}

	prev = 0
	for i, s := range c.Drain.Overload.Segments {
		if s.To < s.From || s.From < prev {
			errs = append(errs, fmt.Errorf("drain.overload.segments[%d]: curve must not decrease", i))
		}
		if s.Exponent < 0 {
			errs = append(errs, fmt.Errorf("drain.overload.segments[%d]: negative exponent", i))
		}
		prev = s.To
	}
	if c.Drain.Overload.TailGrowth < 1 {
		errs = append(errs, errors.New("drain.overload.tail_growth must be >= 1"))
	}

	if c.Drain.BatteryFactor > 1 || c.Drain.BatteryFactor < 0 {
		errs = append(errs, errors.New("drain.battery_factor must be within [0, 1]"))
	}
	if len(c.Drain.FractionBands) == 0 {
		errs = append(errs, errors.New("drain.fraction_bands must not be empty"))
	}
	for i, b := range c.Drain.FractionBands {
		if b.WithBattery > b.NoBattery {
			errs = append(errs, fmt.Errorf("drain.fraction_bands[%d]: battery multiplier exceeds no-battery multiplier", i))
		}
		if i > 0 {
			p := c.Drain.FractionBands[i-1]
			if b.NoBattery > p.NoBattery || b.WithBattery > p.WithBattery {
				errs = append(errs, fmt.Errorf("drain.fraction_bands[%d]: multiplier increases with charge", i))
			}
		}
	}

	prev = 2
	for i, m := range c.Efficiency.Table {
		if m > prev {
			errs = append(errs, fmt.Errorf("efficiency.table[%d]: multiplier increases", i))
		}
		prev = m
	}
	if c.Efficiency.Floor <= 0 {
		errs = append(errs, errors.New("efficiency.floor must be positive"))
	}

	finite := make([]BatteryTierConfig, 0, len(c.Battery.Tiers))
	for _, t := range c.Battery.Tiers {
		if !t.Unlimited {
			finite = append(finite, t)
		}
	}
	sort.Slice(finite, func(i, j int) bool { return finite[i].Tier < finite[j].Tier })
	for i := 1; i < len(finite); i++ {
		if finite[i].RatePerStep <= finite[i-1].RatePerStep {
			errs = append(errs, fmt.Errorf("battery tier %d: rate_per_step must exceed tier %d", finite[i].Tier, finite[i-1].Tier))
		}
	}
	// Receive caps every transfer, so a faster battery rate would be flattened.
	if c.Derived.UnlimitedRate > c.Energy.TransferPerStep {
		errs = append(errs, fmt.Errorf("unlimited battery rate %d exceeds energy.transfer_per_step %d",
			c.Derived.UnlimitedRate, c.Energy.TransferPerStep))
	}

	d := c.Depletion
	if !(d.PowerSavingBelow >= d.EmergencyBelow && d.EmergencyBelow >= d.CriticalBelow && d.CriticalBelow >= 0) {
		errs = append(errs, errors.New("depletion thresholds must be ordered power_saving >= emergency >= critical >= 0"))
	}

	return errors.Join(errs...)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func normalizeKeys[V any](m map[string]V) {
	for k, v := range m {
		u := strings.ToUpper(strings.TrimSpace(k))
		if u != k {
			delete(m, k)
			m[u] = v
		}
	}
}

func upperAll(s []string) {
	for i := range s {
		s[i] = strings.ToUpper(strings.TrimSpace(s[i]))
	}
}
