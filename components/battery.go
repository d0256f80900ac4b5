package components

import "github.com/CFP106020087/Jason-more-rf-bauble-sub000/config"

// BatteryCell is a carried or worn energy cell.
type BatteryCell struct {
	Level     int
	Name      string
	Charge    uint64
	Max       uint64
	Unlimited bool
}

// NewBatteryCell returns a cell of the given tier filled to charge.
// Charge is clamped to the tier capacity.
func NewBatteryCell(tier config.BatteryTierConfig, charge uint64) *BatteryCell {
	b := &BatteryCell{
		Level:     tier.Tier,
		Name:      tier.Name,
		Max:       tier.Capacity,
		Unlimited: tier.Unlimited,
	}
	if !b.Unlimited {
		b.Charge = min(charge, b.Max)
	}
	return b
}

// Stored implements core.BatterySource.
func (b *BatteryCell) Stored() uint64 { return b.Charge }

// Capacity implements core.BatterySource.
func (b *BatteryCell) Capacity() uint64 { return b.Max }

// Tier implements core.BatterySource.
func (b *BatteryCell) Tier() int { return b.Level }

// Extract implements core.BatterySource. Unlimited cells hand out any
// amount without depleting.
func (b *BatteryCell) Extract(n uint64) uint64 {
	if b.Unlimited {
		return n
	}
	n = min(n, b.Charge)
	b.Charge -= n
	return n
}
