package core

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/config"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/upgrades"
)

var (
	thorns       = upgrades.Of(upgrades.Thorns)
	capacityUp   = upgrades.Of(upgrades.EnergyCapacity)
	efficiencyUp = upgrades.Of(upgrades.EnergyEfficiency)
	damageBoost  = upgrades.Of(upgrades.DamageBoost)
	oreVision    = upgrades.Of(upgrades.OreVision)
	stealth      = upgrades.Of(upgrades.Stealth)
	kinetic      = upgrades.Of(upgrades.KineticGenerator)
	waterproof   = upgrades.Of(upgrades.WaterproofModule)
)

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time          { return f.now }
func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

// constCurve ignores its inputs. Only useful to pin the pre-discount total.
type constCurve float64

func (c constCurve) Scale(*Call, DrainInputs) float64 { return float64(c) }

type fakeBattery struct {
	stored   uint64
	capacity uint64
	tier     int
}

func (b *fakeBattery) Stored() uint64   { return b.stored }
func (b *fakeBattery) Capacity() uint64 { return b.capacity }
func (b *fakeBattery) Tier() int        { return b.tier }
func (b *fakeBattery) Extract(n uint64) uint64 {
	n = min(n, b.stored)
	b.stored -= n
	return n
}

type fakePool struct{ points uint64 }

func (p *fakePool) Available() uint64 { return p.points }
func (p *fakePool) Withdraw(n uint64) bool {
	if n > p.points {
		return false
	}
	p.points -= n
	return true
}

type fakeAgent struct {
	step      uint64
	batteries []BatterySource
	wearing   map[ItemKind]bool
	invFull   bool
	stowed    []ItemKind
	dropped   []ItemKind
	notices   []Notice
	xp        *fakePool
}

func newFakeAgent() *fakeAgent {
	return &fakeAgent{
		wearing: map[ItemKind]bool{ItemMechanicalCore: true},
		xp:      &fakePool{},
	}
}

func (a *fakeAgent) Step() uint64               { return a.step }
func (a *fakeAgent) Batteries() []BatterySource { return a.batteries }
func (a *fakeAgent) Wearing(k ItemKind) bool    { return a.wearing[k] }
func (a *fakeAgent) Notify(n Notice)            { a.notices = append(a.notices, n) }
func (a *fakeAgent) Experience() ResourcePool   { return a.xp }
func (a *fakeAgent) ForceUnequip(k ItemKind) (bool, bool) {
	if !a.wearing[k] {
		return false, false
	}
	a.wearing[k] = false
	if a.invFull {
		a.dropped = append(a.dropped, k)
		return false, true
	}
	a.stowed = append(a.stowed, k)
	return true, true
}

func (a *fakeAgent) noticesOf(kind NoticeKind) int {
	n := 0
	for _, x := range a.notices {
		if x.Kind == kind {
			n++
		}
	}
	return n
}

// newTestEngine returns an engine over the default tuning with a fixed clock.
func newTestEngine(t *testing.T, opts ...Option) (*Engine, *fakeClock) {
	t.Helper()
	return newTestEngineWith(t, config.Defaults(), opts...)
}

func newTestEngineWith(t *testing.T, cfg *config.Config, opts ...Option) (*Engine, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
	base := []Option{
		WithClock(clock),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	return NewEngine(cfg, upgrades.NewDefaultRegistry(), append(base, opts...)...), clock
}

// stateWith returns a state with the given levels installed directly.
func stateWith(energy uint64, levels map[upgrades.ID]uint32) *EquipmentState {
	s := NewEquipmentState()
	s.Energy = energy
	for id, lvl := range levels {
		s.Levels[id] = lvl
	}
	return s
}
