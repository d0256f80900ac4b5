package persist

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/attrs"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Header identifies a snapshot.
type Header struct {
	Version int    `json:"version"`
	RunID   string `json:"run_id"`
	Step    uint64 `json:"step"`
	SavedAt int64  `json:"saved_at"` // Unix ms
}

// CoreRecord is one core's persisted attributes.
type CoreRecord struct {
	ID    uuid.UUID         `json:"id"`
	Owner uint32            `json:"owner"`
	Attrs *attrs.Attributes `json:"attrs"`
}

// Snapshot holds every core of a run at one step.
type Snapshot struct {
	Header Header       `json:"header"`
	Cores  []CoreRecord `json:"cores"`
}

// Sort orders cores by id so snapshots of the same state are byte-identical.
func (s *Snapshot) Sort() {
	sort.Slice(s.Cores, func(i, j int) bool {
		return s.Cores[i].ID.String() < s.Cores[j].ID.String()
	})
}

// WriteSnapshot writes snap as zstd-compressed JSON. The header is
// written on its own line first so tools can read it without decoding
// the whole file.
func WriteSnapshot(path string, snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 64*1024)

	if snap.Header.Version == 0 {
		snap.Header.Version = SnapshotVersion
	}
	hb, err := json.Marshal(snap.Header)
	if err != nil {
		return fmt.Errorf("encoding header: %w", err)
	}
	if _, err := bw.Write(append(hb, '\n')); err != nil {
		return err
	}
	if err := json.NewEncoder(bw).Encode(snap.Cores); err != nil {
		return fmt.Errorf("encoding cores: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing zstd stream: %w", err)
	}
	return f.Close()
}

// ReadSnapshot reads a snapshot written by WriteSnapshot.
func ReadSnapshot(path string) (Snapshot, error) {
	var snap Snapshot
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return snap, fmt.Errorf("reading header: %w", err)
	}
	if err := json.Unmarshal(line, &snap.Header); err != nil {
		return snap, fmt.Errorf("decoding header: %w", err)
	}
	if snap.Header.Version != SnapshotVersion {
		return snap, fmt.Errorf("unsupported snapshot version %d", snap.Header.Version)
	}
	if err := json.NewDecoder(br).Decode(&snap.Cores); err != nil {
		return snap, fmt.Errorf("decoding cores: %w", err)
	}
	return snap, nil
}
