package i

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMazeNotFound = errors.New("maze not found")
)

// StoredMaze is a generated maze document as kept by a MazeStore.
type StoredMaze struct {
	ID        uuid.UUID // ID the document was saved under.
	Document  []byte    // Document is the JSON exchange document.
	CreatedAt time.Time // CreatedAt is when the document was saved.
}

// MazeStore defines the interface for maze document persistence.
type MazeStore interface {
	// Save inserts or replaces the document stored under its ID.
	Save(ctx context.Context, m *StoredMaze) error

	// ByID retrieves a document by its ID.
	// Returns ErrMazeNotFound if nothing is stored under id.
	ByID(ctx context.Context, id uuid.UUID) (*StoredMaze, error)

	// Delete removes the document stored under id.
	// Returns ErrMazeNotFound if nothing is stored under id.
	Delete(ctx context.Context, id uuid.UUID) error
}

// Locker serializes work on a key across every user of the same backend.
type Locker interface {
	// Lock blocks until key is held and returns the function releasing it.
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
