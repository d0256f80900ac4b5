package persist

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/attrs"
)

// SQLiteStore keeps one attribute map per core instance in a SQLite table.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens or creates the database at path. ":memory:" gives a
// private in-memory database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cores (
			id TEXT PRIMARY KEY,
			attrs_json TEXT NOT NULL,
			energy INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

// Load returns the attributes stored under id, or ErrNotFound.
func (s *SQLiteStore) Load(ctx context.Context, id uuid.UUID) (*attrs.Attributes, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT attrs_json FROM cores WHERE id = ?`, id.String()).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("core %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading core %s: %w", id, err)
	}
	a := attrs.New()
	if err := json.Unmarshal([]byte(raw), a); err != nil {
		return nil, fmt.Errorf("core %s: %w", id, err)
	}
	return a, nil
}

// Save replaces the attributes stored under id. The stored energy is
// mirrored into its own column for ad-hoc queries.
func (s *SQLiteStore) Save(ctx context.Context, id uuid.UUID, a *attrs.Attributes) error {
	b, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encoding core %s: %w", id, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO cores (id, attrs_json, energy, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET attrs_json = excluded.attrs_json,
		   energy = excluded.energy, updated_at = excluded.updated_at`,
		id.String(), string(b), a.Int(attrs.KeyEnergy), s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving core %s: %w", id, err)
	}
	return nil
}

// Delete removes id. Deleting an absent id returns ErrNotFound.
func (s *SQLiteStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cores WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("deleting core %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("core %s: %w", id, ErrNotFound)
	}
	return nil
}

// List returns every stored id in ascending order.
func (s *SQLiteStore) List(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM cores ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing cores: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("bad core id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
