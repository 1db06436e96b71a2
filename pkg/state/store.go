// Package state persists the incremental snapshot between runs.
package state

import (
	"context"

	"github.com/lycanstats/engine/pkg/incremental"
)

// Store is the persistence boundary for the incremental cache: the ingested
// game log, every player's serialized streak state, and the set of already
// absorbed sync files.
type Store interface {
	// LoadSnapshot returns the previously saved snapshot, or nil when no
	// snapshot exists yet (first run).
	LoadSnapshot(ctx context.Context) (*incremental.Snapshot, error)

	// SaveSnapshot persists a snapshot for the next run.
	SaveSnapshot(ctx context.Context, snapshot *incremental.Snapshot) error

	// MarkIngested records that a sync file has been absorbed.
	MarkIngested(ctx context.Context, file string) error

	// IsIngested reports whether a sync file was absorbed by a previous pass.
	IsIngested(ctx context.Context, file string) (bool, error)
}
