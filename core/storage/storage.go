package storage

import (
	"context"
	"fmt"

	"habitboard/models"
)

// SetMode selects how a write is applied to an existing document.
type SetMode int

const (
	// Replace overwrites the whole document.
	Replace SetMode = iota
	// Merge updates only the fields the caller specifies.
	Merge
)

// DocumentStore is the boundary to the hosted document database. Reads return
// errorvalues.ErrNotFound on a lookup miss (leaderboard and roster reads
// return empty documents instead); any transport failure wraps
// errorvalues.ErrStoreUnavailable.
type DocumentStore interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error

	GetUser(ctx context.Context, name string) (*models.UserProfile, error)
	PutUser(ctx context.Context, profile *models.UserProfile, mode SetMode) error

	GetLeaderboard(ctx context.Context) (*models.Leaderboard, error)
	PutLeaderboard(ctx context.Context, board *models.Leaderboard) error

	GetRoster(ctx context.Context) (*models.Roster, error)
	PutRoster(ctx context.Context, roster *models.Roster) error

	// WatchUser and WatchLeaderboard push full document snapshots on every
	// remote change until the stop function is called or ctx is cancelled.
	// Snapshots are authoritative and not guaranteed monotonic; a snapshot
	// can reflect a write this client did not originate.
	WatchUser(ctx context.Context, name string) (<-chan models.UserProfile, func(), error)
	WatchLeaderboard(ctx context.Context) (<-chan models.Leaderboard, func(), error)
}

// NewStorage connects a MongoDB-backed DocumentStore.
func NewStorage(ctx context.Context, dbName, uri string) (DocumentStore, error) {
	store := NewMongoStore(dbName, uri)
	if err := store.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return store, nil
}
