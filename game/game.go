// Package game is a headless reference host for the mechanical core. Agents
// live in an ark ECS world; each step runs scripted abilities, the engine
// step, state commit, telemetry and persistence.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/components"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/config"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/core"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/persist"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/telemetry"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/upgrades"
)

// Game holds the complete host state.
type Game struct {
	world   *ecs.World
	rng     *rand.Rand
	rngSeed int64
	runID   string
	cfg     *config.Config

	agentMapper *ecs.Map6[
		components.Wearer,
		components.Equipment,
		components.Inventory,
		components.Experience,
		components.Loadout,
		components.Dropped,
	]
	agentFilter *ecs.Filter6[
		components.Wearer,
		components.Equipment,
		components.Inventory,
		components.Experience,
		components.Loadout,
		components.Dropped,
	]
	entities map[uint32]ecs.Entity

	reg    *upgrades.Registry
	engine *core.Engine

	// Telemetry
	collector     *telemetry.Collector
	alertDetector *telemetry.AlertDetector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool

	// Persistence
	store       persist.Store
	snapshotDir string

	step    uint64
	nextID  uint32
	notices map[core.NoticeKind]int
}

// NewGameWithOptions creates a host and spawns its agents.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	world := ecs.NewWorld()
	reg := upgrades.NewDefaultRegistry()

	g := &Game{
		world:   world,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		rngSeed: opts.Seed,
		runID:   uuid.NewString(),
		cfg:     cfg,
		agentMapper: ecs.NewMap6[
			components.Wearer,
			components.Equipment,
			components.Inventory,
			components.Experience,
			components.Loadout,
			components.Dropped,
		](world),
		agentFilter: ecs.NewFilter6[
			components.Wearer,
			components.Equipment,
			components.Inventory,
			components.Experience,
			components.Loadout,
			components.Dropped,
		](world),
		entities:      make(map[uint32]ecs.Entity),
		reg:           reg,
		collector:     telemetry.NewCollector(cfg.Telemetry.WindowSteps, cfg.Derived.StepSeconds),
		alertDetector: telemetry.NewAlertDetector(8),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:      opts.LogStats,
		store:         opts.Store,
		snapshotDir:   opts.SnapshotDir,
		notices:       make(map[core.NoticeKind]int),
	}

	engineOpts := []core.Option{
		core.WithPolicy(core.NewModePolicy(cfg.Depletion, reg)),
		core.WithLogger(slog.Default().With("run", g.runID)),
	}
	if opts.Clock != nil {
		engineOpts = append(engineOpts, core.WithClock(opts.Clock))
	}
	g.engine = core.NewEngine(cfg, reg, engineOpts...)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		return nil, err
	}

	saved, err := g.loadCores(opts.ResumeFrom)
	if err != nil {
		return nil, err
	}
	n := opts.agents(cfg)
	for i := 0; i < n; i++ {
		var item *components.CoreItem
		if i < len(saved) {
			item = saved[i]
		}
		g.spawnAgent(item)
	}

	slog.Info("host ready",
		"run", g.runID,
		"seed", g.rngSeed,
		"agents", n,
		"resumed", min(len(saved), n),
	)
	return g, nil
}

// Engine returns the shared core engine.
func (g *Game) Engine() *core.Engine { return g.engine }

// Step returns the current host step.
func (g *Game) Step() uint64 { return g.step }

// RunID identifies this run in snapshots and logs.
func (g *Game) RunID() string { return g.runID }

// AgentCount returns the number of spawned agents.
func (g *Game) AgentCount() int { return len(g.entities) }

// Notices returns how many notices of kind agents have received.
func (g *Game) Notices(kind core.NoticeKind) int { return g.notices[kind] }

// Close flushes persistence and closes telemetry output.
func (g *Game) Close() error {
	g.commitCores()
	if err := g.persistCores(); err != nil {
		slog.Error("failed to persist cores", "error", err)
	}
	return g.outputManager.Close()
}
