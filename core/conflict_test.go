package core

import "testing"

func TestResolveConflicts_RemovesRing(t *testing.T) {
	e, _ := newTestEngine(t)
	s := NewEquipmentState()
	agent := newFakeAgent()
	agent.wearing[ItemCursedRing] = true

	res := e.ResolveConflicts(s, agent)
	if !res.Resolved || !res.Stowed {
		t.Errorf("ResolveConflicts = %+v, want resolved and stowed", res)
	}
	if agent.wearing[ItemCursedRing] {
		t.Error("ring still worn")
	}
	if !agent.wearing[ItemMechanicalCore] {
		t.Error("core was removed instead of the ring")
	}
	if len(agent.stowed) != 1 || agent.noticesOf(NoticeConflict) != 1 {
		t.Errorf("stowed %v, %d conflict notices", agent.stowed, agent.noticesOf(NoticeConflict))
	}
}

func TestResolveConflicts_DropsWhenInventoryFull(t *testing.T) {
	e, _ := newTestEngine(t)
	s := NewEquipmentState()
	agent := newFakeAgent()
	agent.wearing[ItemCursedRing] = true
	agent.invFull = true

	res := e.ResolveConflicts(s, agent)
	if !res.Resolved || res.Stowed {
		t.Errorf("ResolveConflicts = %+v, want resolved and dropped", res)
	}
	if len(agent.dropped) != 1 {
		t.Errorf("dropped = %v, want the ring", agent.dropped)
	}
}

func TestResolveConflicts_NoConflictNoEffect(t *testing.T) {
	e, _ := newTestEngine(t)

	tests := []struct {
		name    string
		wearing map[ItemKind]bool
	}{
		{"core only", map[ItemKind]bool{ItemMechanicalCore: true}},
		{"ring only", map[ItemKind]bool{ItemCursedRing: true}},
		{"neither", map[ItemKind]bool{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent := newFakeAgent()
			agent.wearing = tt.wearing
			for i := 0; i < 3; i++ {
				agent.step = uint64(i * 10)
				if res := e.ResolveConflicts(NewEquipmentState(), agent); res.Resolved {
					t.Errorf("resolved a non-conflict: %+v", res)
				}
			}
			if len(agent.notices) != 0 || len(agent.stowed)+len(agent.dropped) != 0 {
				t.Errorf("side effects without a conflict: notices %v", agent.notices)
			}
		})
	}
}

func TestResolveConflicts_Interval(t *testing.T) {
	e, _ := newTestEngine(t)
	s := NewEquipmentState()
	agent := newFakeAgent()

	agent.step = 100
	e.ResolveConflicts(s, agent)

	agent.wearing[ItemCursedRing] = true
	agent.step = 105
	if res := e.ResolveConflicts(s, agent); res.Resolved {
		t.Error("resolved inside the check interval")
	}
	agent.step = 110
	if res := e.ResolveConflicts(s, agent); !res.Resolved {
		t.Error("conflict not resolved once the interval elapsed")
	}
}

func TestOnEquip_EitherOrder(t *testing.T) {
	e, _ := newTestEngine(t)

	// Ring first, then core.
	agent := newFakeAgent()
	agent.wearing = map[ItemKind]bool{ItemCursedRing: true}
	agent.wearing[ItemMechanicalCore] = true
	if res := e.OnEquip(NewEquipmentState(), agent); !res.Resolved {
		t.Error("equipping the core over a worn ring did not resolve")
	}

	// Core first, then ring: the next check catches it.
	agent = newFakeAgent()
	s := NewEquipmentState()
	e.OnEquip(s, agent)
	agent.wearing[ItemCursedRing] = true
	if res := e.ResolveConflictsNow(agent); !res.Resolved {
		t.Error("equipping the ring over a worn core did not resolve")
	}
	if agent.wearing[ItemCursedRing] || !agent.wearing[ItemMechanicalCore] {
		t.Errorf("wearing = %v, want core only", agent.wearing)
	}
}
