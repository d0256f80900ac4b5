package core

import (
	"fmt"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/upgrades"
)

// WriteResult describes what a level write actually stored.
type WriteResult struct {
	Level   uint32 // Level written
	Clamped bool   // Reduced by the max level or an active penalty
	Resumed bool   // Raised from a pause rather than installed fresh
}

func (e *Engine) requireKnown(id upgrades.ID) error {
	if !e.reg.Known(id) {
		return fmt.Errorf("writing %q: %w", id.String(), ErrUnknownUpgrade)
	}
	return nil
}

// SetLevel is the manual level write. It clamps to the definition's max
// level, to the owned high-water mark and to any active penalty cap, and
// treats level 0 as a pause. The first manual write to an upgrade with no
// owned record seeds it from the installed level, or from the write itself
// when nothing is installed yet.
func (e *Engine) SetLevel(c *Call, s *EquipmentState, id upgrades.ID, level uint32) (WriteResult, error) {
	if err := e.requireKnown(id); err != nil {
		return WriteResult{}, err
	}
	c = ensureCall(c)

	var res WriteResult
	if maxLevel := e.reg.MaxLevel(id); level > maxLevel {
		level = maxLevel
		res.Clamped = true
	}

	owned, ok := s.OwnedMax[id]
	if !ok || owned == 0 {
		if cur := s.Levels[id]; cur > 0 {
			owned = cur
		} else {
			owned = max(level, 1)
		}
		s.OwnedMax[id] = owned
	}
	if level > owned {
		level = owned
		res.Clamped = true
	}

	e.writeLevel(c, s, id, level, &res)
	return res, nil
}

// Install is the acquisition write: a module was fitted or upgraded, so
// the owned high-water mark rises to level. Level 0 installs level 1.
// Resumed reports that the upgrade was paused rather than newly fitted.
func (e *Engine) Install(c *Call, s *EquipmentState, id upgrades.ID, level uint32) (WriteResult, error) {
	if err := e.requireKnown(id); err != nil {
		return WriteResult{}, err
	}
	c = ensureCall(c)

	var res WriteResult
	level = max(level, 1)
	if maxLevel := e.reg.MaxLevel(id); level > maxLevel {
		level = maxLevel
		res.Clamped = true
	}
	s.OwnedMax[id] = max(s.OwnedMax[id], s.Levels[id], level)

	e.writeLevel(c, s, id, level, &res)
	return res, nil
}

// writeLevel applies the penalty cap and the pause flag, then stores level.
func (e *Engine) writeLevel(c *Call, s *EquipmentState, id upgrades.ID, level uint32, res *WriteResult) {
	if p, ok := e.Penalty(s, id); ok && level > p.Cap {
		level = p.Cap
		res.Clamped = true
	}

	if level == 0 {
		s.PausedViaZero[id] = true
	} else {
		res.Resumed = s.PausedViaZero[id]
		delete(s.PausedViaZero, id)
	}
	s.Levels[id] = level
	res.Level = level

	e.clampEnergy(c, s)
}

// Resume restores a paused upgrade to its owned max level.
func (e *Engine) Resume(c *Call, s *EquipmentState, id upgrades.ID) (WriteResult, error) {
	if err := e.requireKnown(id); err != nil {
		return WriteResult{}, err
	}
	target := s.OwnedMax[id]
	if target == 0 {
		target = max(s.Levels[id], 1)
	}
	return e.SetLevel(c, s, id, target)
}

// Disable switches an upgrade off without touching its level.
func (e *Engine) Disable(c *Call, s *EquipmentState, id upgrades.ID) error {
	if err := e.requireKnown(id); err != nil {
		return err
	}
	s.Disabled[id] = true
	e.clampEnergy(ensureCall(c), s)
	return nil
}

// Enable clears the disabled flag.
func (e *Engine) Enable(s *EquipmentState, id upgrades.ID) error {
	if err := e.requireKnown(id); err != nil {
		return err
	}
	delete(s.Disabled, id)
	return nil
}

// Uninstall removes every trace of an upgrade except its penalty record.
func (e *Engine) Uninstall(c *Call, s *EquipmentState, id upgrades.ID) error {
	if err := e.requireKnown(id); err != nil {
		return err
	}
	delete(s.Levels, id)
	delete(s.Disabled, id)
	delete(s.PausedViaZero, id)
	delete(s.OwnedMax, id)
	e.clampEnergy(ensureCall(c), s)
	return nil
}
