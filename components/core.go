package components

import (
	"github.com/google/uuid"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/attrs"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/core"
)

// CoreItem is a mechanical core item instance. Attrs is the persisted
// form; the decoded state is cached until Commit writes it back.
type CoreItem struct {
	InstanceID uuid.UUID
	Attrs      *attrs.Attributes

	state *core.EquipmentState
}

// NewCoreItem returns an empty core with a fresh instance id.
func NewCoreItem() *CoreItem {
	return &CoreItem{InstanceID: uuid.New(), Attrs: attrs.New()}
}

// LoadCoreItem wraps persisted attributes.
func LoadCoreItem(id uuid.UUID, a *attrs.Attributes) *CoreItem {
	if a == nil {
		a = attrs.New()
	}
	return &CoreItem{InstanceID: id, Attrs: a}
}

// State returns the decoded state, decoding on first use.
func (c *CoreItem) State(e *core.Engine) *core.EquipmentState {
	if c.state == nil {
		c.state = e.Decode(c.Attrs)
	}
	return c.state
}

// Commit encodes the cached state into Attrs. It is a no-op when the
// state was never decoded.
func (c *CoreItem) Commit(e *core.Engine) {
	if c.state != nil {
		e.Encode(c.state, c.Attrs)
	}
}

// Reload drops the cached state so the next State call decodes Attrs again.
func (c *CoreItem) Reload() { c.state = nil }
