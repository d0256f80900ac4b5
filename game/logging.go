package game

import (
	"fmt"
	"log/slog"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/components"
)

// Status returns a report view of the agent's worn core.
func (g *Game) Status(agentID uint32) (components.CoreStatus, bool) {
	item := g.CoreOf(agentID)
	if item == nil {
		return components.CoreStatus{}, false
	}
	s := item.State(g.engine)
	return components.CoreStatus{
		Energy:       s.Energy,
		Capacity:     g.engine.Capacity(nil, s),
		Balance:      g.engine.Balance(nil, s),
		Installed:    s.TotalInstalled(),
		Active:       len(g.engine.ActiveUpgrades(nil, s)),
		TotalSaved:   s.TotalSaved,
		SessionSaved: s.SessionSaved,
	}, true
}

// logCoreStatus logs one line per worn core using the status field metadata.
func (g *Game) logCoreStatus() {
	fields := components.CoreFieldDescriptors()
	for id := uint32(0); id < g.nextID; id++ {
		st, ok := g.Status(id)
		if !ok {
			continue
		}
		attrs := make([]any, 0, 2*len(fields)+4)
		attrs = append(attrs, "agent", id, "step", g.step)
		for _, f := range fields {
			v := components.CoreValue(&st, f.ID)
			if v == 0 && !f.ShowWhenZero {
				continue
			}
			attrs = append(attrs, f.ID, fmt.Sprintf(f.Format, v))
		}
		slog.Info("core", attrs...)
	}
}
