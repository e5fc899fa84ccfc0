package store

import (
	"context"

	"github.com/starford/burnote/internal/models"
)

// NoteStore defines the storage operations the note service depends on.
// An empty owner means the operation is not scoped to a tenant.
type NoteStore interface {
	Save(ctx context.Context, p SaveParams) (int64, error)
	List(ctx context.Context, owner string) ([]models.Note, error)
	Delete(ctx context.Context, id int64, owner string) error
	ReadAndBurn(ctx context.Context, publicID string) (string, error)
	Ping(ctx context.Context) error
}

// Verify *DB satisfies NoteStore at compile time.
var _ NoteStore = (*DB)(nil)
