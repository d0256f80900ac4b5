// Package telemetry provides energy-economy tracking, alerts, and CSV output.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventDrain EventType = iota
	EventShortfall
	EventModeChange
	EventConflict
	EventPenaltyLapsed
	EventAbility
	EventAbilityDenied
	EventBatteryCharge
)

func (t EventType) String() string {
	switch t {
	case EventDrain:
		return "drain"
	case EventShortfall:
		return "shortfall"
	case EventModeChange:
		return "mode_change"
	case EventConflict:
		return "conflict"
	case EventPenaltyLapsed:
		return "penalty_lapsed"
	case EventAbility:
		return "ability"
	case EventAbilityDenied:
		return "ability_denied"
	case EventBatteryCharge:
		return "battery_charge"
	}
	return "unknown"
}

// Event represents a single telemetry event.
type Event struct {
	Type    EventType
	Step    uint64
	AgentID uint32

	// Optional fields depending on event type
	Amount uint64 // energy charged, missing or transferred
	Saved  uint64 // energy saved by efficiency
}

// NewDrainEvent records a passive drain charge.
func NewDrainEvent(step uint64, agentID uint32, charged, saved uint64) Event {
	return Event{Type: EventDrain, Step: step, AgentID: agentID, Amount: charged, Saved: saved}
}

// NewShortfallEvent records drain that could not be paid.
func NewShortfallEvent(step uint64, agentID uint32, missing uint64) Event {
	return Event{Type: EventShortfall, Step: step, AgentID: agentID, Amount: missing}
}

// NewAbilityEvent records an active ability charge. Denied charges carry
// the cost that could not be paid.
func NewAbilityEvent(step uint64, agentID uint32, ok bool, cost, saved uint64) Event {
	t := EventAbility
	if !ok {
		t = EventAbilityDenied
		saved = 0
	}
	return Event{Type: t, Step: step, AgentID: agentID, Amount: cost, Saved: saved}
}

// NewBatteryEvent records energy moved from a battery into a core.
func NewBatteryEvent(step uint64, agentID uint32, accepted uint64) Event {
	return Event{Type: EventBatteryCharge, Step: step, AgentID: agentID, Amount: accepted}
}
