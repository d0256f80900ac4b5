package game

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/components"
	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/persist"
)

// loadCores returns cores to resume, from a snapshot file when path is set
// and from the store otherwise.
func (g *Game) loadCores(path string) ([]*components.CoreItem, error) {
	if path != "" {
		snap, err := persist.ReadSnapshot(path)
		if err != nil {
			return nil, fmt.Errorf("resuming from %s: %w", path, err)
		}
		items := make([]*components.CoreItem, 0, len(snap.Cores))
		for _, rec := range snap.Cores {
			items = append(items, components.LoadCoreItem(rec.ID, rec.Attrs))
		}
		slog.Info("resumed from snapshot", "path", path, "run", snap.Header.RunID, "step", snap.Header.Step)
		return items, nil
	}

	if g.store == nil {
		return nil, nil
	}
	ctx := context.Background()
	ids, err := g.store.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]*components.CoreItem, 0, len(ids))
	for _, id := range ids {
		a, err := g.store.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		items = append(items, components.LoadCoreItem(id, a))
	}
	return items, nil
}

// coreRecords copies every core's attributes, worn or carried.
func (g *Game) coreRecords() []persist.CoreRecord {
	var records []persist.CoreRecord
	query := g.agentFilter.Query()
	for query.Next() {
		w, eq, inv, _, _, _ := query.Get()
		if eq.Core != nil {
			records = append(records, persist.CoreRecord{ID: eq.Core.InstanceID, Owner: w.ID, Attrs: eq.Core.Attrs.Clone()})
		}
		for _, it := range inv.Items {
			if it.Core != nil {
				records = append(records, persist.CoreRecord{ID: it.Core.InstanceID, Owner: w.ID, Attrs: it.Core.Attrs.Clone()})
			}
		}
	}
	return records
}

// maybeSnapshot runs the periodic snapshot and store save.
func (g *Game) maybeSnapshot() {
	every := uint64(max(g.cfg.Host.SnapshotEverySteps, 0))
	if every == 0 || g.step == 0 || g.step%every != 0 {
		return
	}
	g.saveSnapshot("periodic")
	if err := g.persistCores(); err != nil {
		slog.Error("failed to persist cores", "error", err)
	}
}

// saveSnapshot writes all cores to the snapshot directory.
func (g *Game) saveSnapshot(reason string) {
	if g.snapshotDir == "" {
		return
	}
	snap := persist.Snapshot{
		Header: persist.Header{
			RunID:   g.runID,
			Step:    g.step,
			SavedAt: time.Now().UnixMilli(),
		},
		Cores: g.coreRecords(),
	}
	snap.Sort()

	path := filepath.Join(g.snapshotDir, fmt.Sprintf("%s-%08d.json.zst", g.runID[:8], g.step))
	if err := persist.WriteSnapshot(path, snap); err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "step", g.step, "reason", reason)
}

// persistCores saves every core to the store.
func (g *Game) persistCores() error {
	if g.store == nil {
		return nil
	}
	ctx := context.Background()
	for _, rec := range g.coreRecords() {
		if err := g.store.Save(ctx, rec.ID, rec.Attrs); err != nil {
			return err
		}
	}
	return nil
}
