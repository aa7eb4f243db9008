package redis

import (
	"fmt"

	"github.com/mcoot/wwfstate/internal/model"
)

// Key prefix for all cached data
const keyPrefix = "wwfstate"

// snapshotKey returns the Redis key for a game's snapshot
func snapshotKey(id model.GameID) string {
	return fmt.Sprintf("%s:snapshot:%d", keyPrefix, id)
}

// snapshotIndexKey returns the Redis key for the SET of cached game ids
func snapshotIndexKey() string {
	return fmt.Sprintf("%s:idx:snapshots", keyPrefix)
}
