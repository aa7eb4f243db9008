package storage

import (
	"context"

	"github.com/mcoot/wwfstate/internal/model"
)

// Storage caches reconstructed game states between calls
type Storage interface {
	// SaveSnapshot stores a snapshot, replacing any for the same game
	SaveSnapshot(ctx context.Context, snap *model.Snapshot) error

	// GetSnapshot returns ErrSnapshotNotFound if the game has no snapshot
	GetSnapshot(ctx context.Context, id model.GameID) (*model.Snapshot, error)

	// DeleteSnapshot is a no-op for unknown games
	DeleteSnapshot(ctx context.Context, id model.GameID) error

	// ListSnapshots returns the ids of all cached games in ascending order
	ListSnapshots(ctx context.Context) ([]model.GameID, error)
}
