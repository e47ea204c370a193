// Package store provides persistence for catalog snapshots.
//
// A snapshot is an immutable copy of a built catalog in its wire form,
// tagged with a UUID and creation time. Snapshots let a server keep
// several catalog versions around (e.g. fall and winter terms) and serve
// queries against any of them.
//
// Two backends are available:
//   - memory: in-memory storage for development and testing
//   - mongo: MongoDB-backed storage for server deployments
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/coursegraph/coursegraph/pkg/graphio"
)

// Sentinel errors for snapshot operations.
var (
	// ErrNotFound is returned when a snapshot does not exist.
	ErrNotFound = errors.New("snapshot not found")
)

// Snapshot is a stored catalog version.
type Snapshot struct {
	ID        string          `json:"id" bson:"_id"`
	Name      string          `json:"name" bson:"name"`
	Catalog   graphio.Catalog `json:"catalog" bson:"catalog"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
}

// NewSnapshot creates a snapshot with a fresh UUID and the current time.
func NewSnapshot(name string, cat graphio.Catalog) *Snapshot {
	return &Snapshot{
		ID:        uuid.NewString(),
		Name:      name,
		Catalog:   cat,
		CreatedAt: time.Now().UTC(),
	}
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Save stores a snapshot. Saving an existing ID overwrites it.
	Save(ctx context.Context, snap *Snapshot) error

	// Get retrieves a snapshot by ID.
	// Returns ErrNotFound if no snapshot has that ID.
	Get(ctx context.Context, id string) (*Snapshot, error)

	// List returns all snapshots ordered by creation time, newest first.
	// Catalog payloads are included; callers that only need metadata
	// should ignore them.
	List(ctx context.Context) ([]*Snapshot, error)

	// Delete removes a snapshot.
	// Returns ErrNotFound if no snapshot has that ID.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the backend.
	Close(ctx context.Context) error
}
