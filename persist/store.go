// Package persist stores core attribute maps: compressed snapshot files
// for whole runs and a SQLite store keyed by core instance id.
package persist

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/CFP106020087/Jason-more-rf-bauble-sub000/attrs"
)

// ErrNotFound is returned when no attributes are stored under an id.
var ErrNotFound = errors.New("persist: not found")

// Store loads and saves attribute maps per core instance.
type Store interface {
	Load(ctx context.Context, id uuid.UUID) (*attrs.Attributes, error)
	Save(ctx context.Context, id uuid.UUID, a *attrs.Attributes) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]uuid.UUID, error)
	Close() error
}
