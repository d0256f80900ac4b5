package core

import (
	"slices"
	"time"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/upgrades"
)

// EquipmentState is the in-memory state of one mechanical core instance.
// It is decoded from the item's attributes on first touch and encoded back on save.
type EquipmentState struct {
	Energy uint64

	Levels        map[upgrades.ID]uint32
	Disabled      map[upgrades.ID]bool
	PausedViaZero map[upgrades.ID]bool
	OwnedMax      map[upgrades.ID]uint32
	Penalties     map[upgrades.ID]PenaltyRecord

	TotalSaved   uint64 // Lifetime efficiency savings, never reset
	SessionSaved uint64 // Savings since the core was last equipped

	Mode  Mode // Last observed operating mode
	Cache BatteryCache

	lastWarnStep    uint64
	warned          bool
	lastConflict    uint64
	conflictChecked bool
}

// PenaltyRecord caps an upgrade's level until ExpiresAt.
type PenaltyRecord struct {
	Cap        uint32
	ExpiresAt  time.Time
	Tier       uint32
	DebtEnergy uint64
	DebtOther  uint64

	lapseReported bool
}

// Active reports whether the penalty still applies at now.
func (p PenaltyRecord) Active(now time.Time) bool {
	return now.Before(p.ExpiresAt)
}

// BatteryCache remembers whether a charged battery was carried.
// It is soft state: refreshed on a step interval and never persisted.
type BatteryCache struct {
	CheckedAt  uint64
	HasBattery bool
	Tier       int
	Valid      bool
}

// Fresh reports whether the cache can be used at step given a lifetime in steps.
func (b BatteryCache) Fresh(step uint64, lifetime int) bool {
	return b.Valid && step >= b.CheckedAt && step-b.CheckedAt < uint64(lifetime)
}

// NewEquipmentState returns an empty state.
func NewEquipmentState() *EquipmentState {
	return &EquipmentState{
		Levels:        make(map[upgrades.ID]uint32),
		Disabled:      make(map[upgrades.ID]bool),
		PausedViaZero: make(map[upgrades.ID]bool),
		OwnedMax:      make(map[upgrades.ID]uint32),
		Penalties:     make(map[upgrades.ID]PenaltyRecord),
	}
}

// Level returns the installed level, ignoring activation.
func (s *EquipmentState) Level(id upgrades.ID) uint32 {
	return s.Levels[id]
}

// Installed returns the ids with an installed level above zero.
func (s *EquipmentState) Installed() []upgrades.ID {
	ids := make([]upgrades.ID, 0, len(s.Levels))
	for id, lvl := range s.Levels {
		if lvl > 0 {
			ids = append(ids, id)
		}
	}
	sortIDs(ids)
	return ids
}

// TotalInstalled counts distinct upgrades with level > 0.
func (s *EquipmentState) TotalInstalled() int {
	n := 0
	for _, lvl := range s.Levels {
		if lvl > 0 {
			n++
		}
	}
	return n
}

// TotalLevels sums installed levels.
func (s *EquipmentState) TotalLevels() uint64 {
	var sum uint64
	for _, lvl := range s.Levels {
		sum += uint64(lvl)
	}
	return sum
}

// ResetSession clears the per-session counters. Called when the core is equipped.
func (s *EquipmentState) ResetSession() {
	s.SessionSaved = 0
	s.warned = false
}

func sortIDs(ids []upgrades.ID) {
	slices.SortFunc(ids, func(a, b upgrades.ID) int {
		if a.Kind() != b.Kind() {
			return int(a.Kind()) - int(b.Kind())
		}
		switch {
		case a.String() < b.String():
			return -1
		case a.String() > b.String():
			return 1
		}
		return 0
	})
}
