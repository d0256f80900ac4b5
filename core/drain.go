package core

import (
	"log/slog"
	"math"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/config"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/upgrades"
)

// DrainInputs are the quantities a drain curve may depend on.
type DrainInputs struct {
	BaseSum        float64 // Per-level sum plus the fixed overhead
	TotalLevels    uint64  // Sum of active effective levels
	DistinctTypes  int     // Number of active upgrades
	EnergyFraction float64
	HasBattery     bool
}

// Curve scales the base drain. Implementations must be non-decreasing in
// BaseSum, TotalLevels and DistinctTypes, and non-increasing in
// EnergyFraction and HasBattery.
type Curve interface {
	Scale(c *Call, in DrainInputs) float64
}

// OverloadCurve is the default drain curve: idle cost and system leakage
// are added to the base, then scaled by the overload multiplier and the
// battery and charge-level factors.
type OverloadCurve struct {
	cfg config.DrainConfig
}

// NewOverloadCurve builds the default curve from drain tuning.
func NewOverloadCurve(cfg config.DrainConfig) *OverloadCurve {
	return &OverloadCurve{cfg: cfg}
}

// Scale implements Curve.
func (o *OverloadCurve) Scale(_ *Call, in DrainInputs) float64 {
	total := in.BaseSum + o.cfg.IdleDrain + o.Leakage(in.DistinctTypes, in.TotalLevels)
	total *= o.Overload(in.TotalLevels)
	if in.HasBattery {
		total *= o.cfg.BatteryFactor
	}
	total *= o.FractionFactor(in.EnergyFraction, in.HasBattery)
	return total
}

// Leakage returns the system leakage for the given spread of upgrades.
func (o *OverloadCurve) Leakage(types int, levels uint64) float64 {
	lk := o.cfg.Leakage
	mult := lk.Beyond
	for _, b := range lk.Bands {
		if types <= b.MaxTypes {
			mult = b.Multiplier
			break
		}
	}
	return (float64(types)*lk.PerType + float64(levels)*lk.PerLevel) * mult
}

// Overload returns the overload multiplier for a total active level count.
func (o *OverloadCurve) Overload(levels uint64) float64 {
	segs := o.cfg.Overload.Segments
	if len(segs) == 0 {
		return 1
	}
	prev := 0
	for _, seg := range segs {
		if levels <= uint64(seg.UpTo) {
			span := seg.UpTo - prev
			if span <= 0 {
				return seg.To
			}
			p := float64(int(levels)-prev) / float64(span)
			if p < 0 {
				p = 0
			}
			return seg.From + (seg.To-seg.From)*math.Pow(p, seg.Exponent)
		}
		prev = seg.UpTo
	}
	last := segs[len(segs)-1]
	return last.To * math.Pow(o.cfg.Overload.TailGrowth, float64(levels-uint64(last.UpTo)))
}

// FractionFactor returns the charge-level multiplier.
func (o *OverloadCurve) FractionFactor(fraction float64, hasBattery bool) float64 {
	bands := o.cfg.FractionBands
	if len(bands) == 0 {
		return 1
	}
	band := bands[len(bands)-1]
	for _, b := range bands {
		if fraction < b.Below {
			band = b
			break
		}
	}
	if hasBattery {
		return band.WithBattery
	}
	return band.NoBattery
}

// DrainItem is one upgrade's share of the base drain.
type DrainItem struct {
	ID       upgrades.ID
	Level    uint32
	PerLevel float64
	Drain    float64
}

// DrainReport is the breakdown of one passive drain computation.
type DrainReport struct {
	Items           []DrainItem
	Overhead        float64
	BaseSum         float64 // Items plus overhead
	TotalLevels     uint64
	DistinctTypes   int
	Scaled          float64 // Curve output
	BatteryTier     int     // 0 when no charged battery
	BatteryDiscount float64
	EfficiencyLevel uint32
	Multiplier      float64 // Efficiency multiplier applied
	Final           uint64  // Energy to charge
	Saved           uint64  // Reduction attributable to efficiency
}

// perLevelDrain returns the configured per-level drain for id.
func (e *Engine) perLevelDrain(id upgrades.ID) float64 {
	if v, ok := e.perLevel[id]; ok {
		return v
	}
	return e.cfg.Drain.DefaultPerLevel
}

// PassiveDrain computes the drain for one drain interval.
//
// Stages multiply a float accumulator in a fixed order (curve, battery
// tier discount, efficiency) and the result is floored once at the end.
// A positive total never floors to zero because of efficiency.
func (e *Engine) PassiveDrain(c *Call, s *EquipmentState) DrainReport {
	c = ensureCall(c)
	if c.InDrain() {
		e.log.Warn("drain computation re-entered, reporting no drain", slog.String("guard", "drain"))
		return DrainReport{Multiplier: 1}
	}
	defer c.enterDrain()()

	rep := DrainReport{Multiplier: 1, BatteryDiscount: 1}
	for _, id := range e.ActiveUpgrades(c, s) {
		lvl := e.EffectiveLevel(c, s, id)
		if lvl == 0 {
			continue
		}
		per := e.perLevelDrain(id)
		item := DrainItem{ID: id, Level: lvl, PerLevel: per, Drain: per * float64(lvl)}
		rep.Items = append(rep.Items, item)
		rep.BaseSum += item.Drain
		rep.TotalLevels += uint64(lvl)
		rep.DistinctTypes++
	}
	if rep.DistinctTypes == 0 {
		return rep
	}
	rep.Overhead = e.cfg.Drain.BaseOverhead
	rep.BaseSum += rep.Overhead

	hasBattery := s.Cache.HasBattery
	rep.Scaled = e.curve.Scale(c, DrainInputs{
		BaseSum:        rep.BaseSum,
		TotalLevels:    rep.TotalLevels,
		DistinctTypes:  rep.DistinctTypes,
		EnergyFraction: e.Fraction(c, s),
		HasBattery:     hasBattery,
	})

	acc := rep.Scaled
	if hasBattery && s.Cache.Tier > 0 {
		if tier, ok := e.cfg.Derived.TierByLevel[s.Cache.Tier]; ok && tier.DrainDiscount > 0 {
			rep.BatteryTier = s.Cache.Tier
			rep.BatteryDiscount = tier.DrainDiscount
			acc *= tier.DrainDiscount
		}
	}
	beforeEfficiency := floorNonNeg(acc)

	if lvl := e.efficiencyLevel(c, s); lvl > 0 {
		rep.EfficiencyLevel = lvl
		rep.Multiplier = EfficiencyMultiplier(e.cfg.Efficiency, lvl)
		acc *= rep.Multiplier
	}

	rep.Final = floorNonNeg(acc)
	if rep.Final == 0 && beforeEfficiency > 0 {
		rep.Final = 1
	}
	if beforeEfficiency > rep.Final {
		rep.Saved = beforeEfficiency - rep.Final
	}
	return rep
}

func floorNonNeg(v float64) uint64 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return uint64(math.Floor(v))
}
