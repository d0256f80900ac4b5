// Package core implements the mechanical core's energy economy and upgrade state.
package core

import (
	"errors"
	"log/slog"
	"time"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/config"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/upgrades"
)

// ErrUnknownUpgrade is returned when a write targets an unregistered upgrade id.
var ErrUnknownUpgrade = errors.New("unknown upgrade")

// Clock supplies wall-clock time for penalty expiry.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// BatterySource is a battery the agent carries or wears.
type BatterySource interface {
	Stored() uint64
	Capacity() uint64
	Tier() int                    // 0 none, 1..4 finite, 5 unlimited
	Extract(amount uint64) uint64 // Returns the amount actually removed
}

// ResourcePool is the secondary resource penalty debts can be paid in.
type ResourcePool interface {
	Available() uint64
	Withdraw(amount uint64) bool
}

// ItemKind identifies equipment pieces the conflict rule cares about.
type ItemKind uint8

const (
	ItemMechanicalCore ItemKind = iota + 1
	ItemCursedRing
)

func (k ItemKind) String() string {
	switch k {
	case ItemMechanicalCore:
		return "mechanical_core"
	case ItemCursedRing:
		return "cursed_ring"
	}
	return "unknown"
}

// NoticeKind classifies agent notices.
type NoticeKind uint8

const (
	NoticeLowPower NoticeKind = iota + 1
	NoticeConflict
	NoticeModeChange
	NoticePenaltyLapsed
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeLowPower:
		return "low_power"
	case NoticeConflict:
		return "conflict"
	case NoticeModeChange:
		return "mode_change"
	case NoticePenaltyLapsed:
		return "penalty_lapsed"
	}
	return "unknown"
}

// Notice is a user-facing message about the core.
type Notice struct {
	Kind    NoticeKind
	Upgrade upgrades.ID
	Mode    Mode
	Text    string
}

// Agent is the engine's view of the agent wearing the core.
type Agent interface {
	Step() uint64
	Batteries() []BatterySource
	Wearing(kind ItemKind) bool
	// ForceUnequip removes kind from the agent's equipment. stowed is false
	// when the item had to be dropped because the inventory was full.
	ForceUnequip(kind ItemKind) (stowed bool, ok bool)
	Notify(n Notice)
	Experience() ResourcePool
}

// CapacityModifier contributes bonus capacity.
type CapacityModifier interface {
	CapacityBonus(c *Call, q Query) uint64
}

// DepletionPolicy may veto activation of an upgrade based on energy state.
type DepletionPolicy interface {
	Allow(c *Call, q Query, id upgrades.ID) bool
}

// Engine evaluates and mutates EquipmentState. It holds no per-instance
// state and can be shared by every core in a world.
type Engine struct {
	cfg       *config.Config
	reg       *upgrades.Registry
	policy    DepletionPolicy
	curve     Curve
	modifiers []CapacityModifier
	clock     Clock
	log       *slog.Logger
	onShort   InsufficientHandler

	perLevel   map[upgrades.ID]float64
	generation map[upgrades.ID]float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy installs a depletion policy.
func WithPolicy(p DepletionPolicy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithCurve replaces the default drain curve.
func WithCurve(c Curve) Option {
	return func(e *Engine) { e.curve = c }
}

// WithCapacityModifier adds a capacity modifier.
func WithCapacityModifier(m CapacityModifier) Option {
	return func(e *Engine) { e.modifiers = append(e.modifiers, m) }
}

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger replaces the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine creates an engine over the given tuning and registry.
func NewEngine(cfg *config.Config, reg *upgrades.Registry, opts ...Option) *Engine {
	e := &Engine{
		cfg:        cfg,
		reg:        reg,
		clock:      systemClock{},
		log:        slog.Default(),
		perLevel:   make(map[upgrades.ID]float64, len(cfg.Drain.PerLevel)),
		generation: make(map[upgrades.ID]float64, len(cfg.Generation.PerLevel)),
	}
	for k, v := range cfg.Drain.PerLevel {
		e.perLevel[reg.Canonicalize(k)] = v
	}
	for k, v := range cfg.Generation.PerLevel {
		e.generation[reg.Canonicalize(k)] = v
	}
	e.curve = NewOverloadCurve(cfg.Drain)

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine's tuning.
func (e *Engine) Config() *config.Config { return e.cfg }

// Registry returns the engine's upgrade registry.
func (e *Engine) Registry() *upgrades.Registry { return e.reg }

// Now returns the engine clock's current time.
func (e *Engine) Now() time.Time { return e.clock.Now() }

// Query is a read-only view of one state handed to pluggable collaborators.
type Query struct {
	e *Engine
	s *EquipmentState
}

// Query returns a read-only view of s.
func (e *Engine) Query(s *EquipmentState) Query {
	return Query{e: e, s: s}
}

// Energy returns stored energy.
func (q Query) Energy() uint64 { return q.s.Energy }

// Level returns the installed level of id.
func (q Query) Level(id upgrades.ID) uint32 { return q.s.Level(id) }

// Capacity returns the store capacity.
func (q Query) Capacity(c *Call) uint64 { return q.e.Capacity(c, q.s) }

// Fraction returns stored energy over capacity, 0 when capacity is 0.
func (q Query) Fraction(c *Call) float64 { return q.e.Fraction(c, q.s) }

// IsActive reports whether id is active.
func (q Query) IsActive(c *Call, id upgrades.ID) bool { return q.e.IsActive(c, q.s, id) }

// PassiveDrain computes the current passive drain.
func (q Query) PassiveDrain(c *Call) DrainReport { return q.e.PassiveDrain(c, q.s) }

// Registry returns the upgrade registry.
func (q Query) Registry() *upgrades.Registry { return q.e.reg }
