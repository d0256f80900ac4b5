package persist

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/attrs"
)

func sampleAttrs(energy int64) *attrs.Attributes {
	a := attrs.New()
	a.SetInt(attrs.KeyEnergy, energy)
	a.SetInt("upgrade_THORNS", 2)
	a.SetBool("Disabled_THORNS", true)
	a.SetFloat("custom_ratio", 0.25)
	return a
}

func TestSnapshot_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots", "step-200.json.zst")
	id := uuid.New()
	snap := Snapshot{
		Header: Header{RunID: "run-1", Step: 200, SavedAt: 1_700_000_000_000},
		Cores:  []CoreRecord{{ID: id, Owner: 3, Attrs: sampleAttrs(1234)}},
	}
	if err := WriteSnapshot(path, snap); err != nil {
		t.Fatal(err)
	}

	got, err := ReadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Header.Version != SnapshotVersion || got.Header.Step != 200 || got.Header.RunID != "run-1" {
		t.Errorf("header = %+v", got.Header)
	}
	if len(got.Cores) != 1 || got.Cores[0].ID != id || got.Cores[0].Owner != 3 {
		t.Fatalf("cores = %+v", got.Cores)
	}
	a := got.Cores[0].Attrs
	if a.Int(attrs.KeyEnergy) != 1234 || !a.Bool("Disabled_THORNS") || a.Float("custom_ratio") != 0.25 {
		t.Errorf("attrs = %v", a.Keys())
	}
	if v, _ := a.Get("upgrade_THORNS"); v.Int == nil {
		t.Error("integer attribute lost its type")
	}
}

func TestReadSnapshot_Missing(t *testing.T) {
	if _, err := ReadSnapshot(filepath.Join(t.TempDir(), "nope.json.zst")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "cores.sqlite"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	id := uuid.New()
	if _, err := s.Load(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load of absent id = %v, want ErrNotFound", err)
	}

	if err := s.Save(ctx, id, sampleAttrs(10)); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, id, sampleAttrs(20)); err != nil {
		t.Fatal(err)
	}
	a, err := s.Load(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if a.Int(attrs.KeyEnergy) != 20 || a.Int("upgrade_THORNS") != 2 {
		t.Errorf("loaded energy %d, level %d", a.Int(attrs.KeyEnergy), a.Int("upgrade_THORNS"))
	}

	other := uuid.New()
	if err := s.Save(ctx, other, attrs.New()); err != nil {
		t.Fatal(err)
	}
	ids, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Errorf("List = %v, want 2 ids", ids)
	}

	if err := s.Delete(ctx, id); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	if _, err := OpenSQLite(""); err == nil {
		t.Error("expected an error for an empty path")
	}
}
