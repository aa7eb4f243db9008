package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/mcoot/wwfstate/internal/model"
	"github.com/mcoot/wwfstate/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Snapshots are copied on the way in and out.
type Storage struct {
	mu sync.RWMutex

	snapshots map[model.GameID]*model.Snapshot
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		snapshots: make(map[model.GameID]*model.Snapshot),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveSnapshot(ctx context.Context, snap *model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snap.GameID] = copySnapshot(snap)
	return nil
}

func (s *Storage) GetSnapshot(ctx context.Context, id model.GameID) (*model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[id]
	if !ok {
		return nil, model.ErrSnapshotNotFound
	}
	return copySnapshot(snap), nil
}

func (s *Storage) DeleteSnapshot(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, id)
	return nil
}

func (s *Storage) ListSnapshots(ctx context.Context) ([]model.GameID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.snapshots)), nil
}

func copySnapshot(snap *model.Snapshot) *model.Snapshot {
	out := *snap
	if snap.State != nil {
		out.State = snap.State.Clone()
	}
	return &out
}
