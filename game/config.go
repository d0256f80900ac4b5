package game

import (
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/config"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/core"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/persist"
)

// Options configures a headless run.
type Options struct {
	Config      *config.Config // nil = config.Cfg()
	Seed        int64
	Agents      int // 0 = host.agents
	LogStats    bool
	OutputDir   string        // CSV telemetry; empty disables
	SnapshotDir string        // Periodic .json.zst snapshots; empty disables
	ResumeFrom  string        // Snapshot to load cores from
	Store       persist.Store // Per-core attribute store; nil disables
	Clock       core.Clock    // nil = wall clock
}

func (o Options) agents(cfg *config.Config) int {
	if o.Agents > 0 {
		return o.Agents
	}
	return max(cfg.Host.Agents, 1)
}
