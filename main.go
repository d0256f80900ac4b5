package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/config"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/game"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/persist"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	resume := flag.String("resume", "", "Snapshot file to resume cores from")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	dbPath := flag.String("db", "", "SQLite database for per-core attributes (empty = disabled)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	agents := flag.Int("agents", 0, "Number of agents (0 = use config)")
	maxSteps := flag.Int("max-steps", 0, "Stop after N steps (0 = unlimited)")
	debug := flag.Bool("debug", false, "Log agent notices")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	opts := game.Options{
		Seed:        rngSeed,
		Agents:      *agents,
		LogStats:    *logStats,
		OutputDir:   *outputDir,
		SnapshotDir: *snapshotDir,
		ResumeFrom:  *resume,
	}

	if *dbPath != "" {
		store, err := persist.OpenSQLite(*dbPath)
		if err != nil {
			slog.Error("failed to open store", "path", *dbPath, "error", err)
			os.Exit(1)
		}
		defer store.Close()
		opts.Store = store
	}

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start host", "error", err)
		os.Exit(1)
	}

	slog.Info("starting headless run",
		"seed", rngSeed,
		"max_steps", *maxSteps,
	)

	for {
		g.Update()

		if *maxSteps > 0 && g.Step() >= uint64(*maxSteps) {
			slog.Info("max steps reached", "step", g.Step())
			break
		}
	}

	if err := g.Close(); err != nil {
		slog.Error("failed to close host", "error", err)
		os.Exit(1)
	}
}
