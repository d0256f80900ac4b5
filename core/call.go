package core

import "github.com/CFP106020087/Jason-more-rf-bauble-sub000/upgrades"

// Call carries re-entrancy guards for one top-level engine operation.
// Capacity, activation and drain computations can reach each other through
// pluggable collaborators; the guards in Call turn a cycle into a
// conservative default instead of unbounded recursion.
//
// A Call is not safe for concurrent use. Passing nil to an engine method
// starts a fresh Call.
type Call struct {
	capacity bool
	drain    bool
	checking map[upgrades.ID]struct{}
}

// NewCall returns an empty call context.
func NewCall() *Call {
	return &Call{}
}

func ensureCall(c *Call) *Call {
	if c == nil {
		return NewCall()
	}
	return c
}

// InCapacity reports whether a capacity computation is in progress.
func (c *Call) InCapacity() bool { return c.capacity }

// InDrain reports whether a drain computation is in progress.
func (c *Call) InDrain() bool { return c.drain }

// Checking reports whether an activation check for id is in progress.
func (c *Call) Checking(id upgrades.ID) bool {
	_, ok := c.checking[id]
	return ok
}

func (c *Call) enterCapacity() func() {
	c.capacity = true
	return func() { c.capacity = false }
}

func (c *Call) enterDrain() func() {
	c.drain = true
	return func() { c.drain = false }
}

func (c *Call) enterCheck(id upgrades.ID) func() {
	if c.checking == nil {
		c.checking = make(map[upgrades.ID]struct{})
	}
	c.checking[id] = struct{}{}
	return func() { delete(c.checking, id) }
}
