package components

import "github.com/CFP106020087/Jason-more-rf-bauble-sub000/core"

// ItemKind classifies inventory items.
type ItemKind uint8

const (
	ItemMisc ItemKind = iota
	ItemBattery
	ItemCore
	ItemRing
)

// Item is one inventory stack.
type Item struct {
	Kind    ItemKind
	Name    string
	Battery *BatteryCell
	Core    *CoreItem
}

// Inventory is a fixed number of item slots.
type Inventory struct {
	Slots int
	Items []Item
}

// Full reports whether every slot is taken.
func (inv *Inventory) Full() bool { return len(inv.Items) >= inv.Slots }

// Add stores it if a slot is free.
func (inv *Inventory) Add(it Item) bool {
	if inv.Full() {
		return false
	}
	inv.Items = append(inv.Items, it)
	return true
}

// Take removes and returns the first item of kind.
func (inv *Inventory) Take(kind ItemKind) (Item, bool) {
	for i, it := range inv.Items {
		if it.Kind == kind {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			return it, true
		}
	}
	return Item{}, false
}

// Batteries returns the charged cells held in the inventory.
func (inv *Inventory) Batteries() []*BatteryCell {
	var out []*BatteryCell
	for _, it := range inv.Items {
		if it.Kind == ItemBattery && it.Battery != nil {
			out = append(out, it.Battery)
		}
	}
	return out
}

// Equipment holds worn accessories.
type Equipment struct {
	Core      *CoreItem
	Ring      bool
	Batteries []*BatteryCell
}

// Wearing reports whether an item of kind is worn.
func (eq *Equipment) Wearing(kind core.ItemKind) bool {
	switch kind {
	case core.ItemMechanicalCore:
		return eq.Core != nil
	case core.ItemCursedRing:
		return eq.Ring
	}
	return false
}

// Dropped records items that fell to the ground because the inventory
// was full.
type Dropped struct {
	Items []Item
}
