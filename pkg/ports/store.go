package ports

import (
	"context"
)

// SnapshotStore defines the interface for persisting task list snapshots.
// Each key is an independent slot holding one serialized snapshot.
type SnapshotStore interface {
	// Save replaces the snapshot held in the slot.
	Save(ctx context.Context, key string, data []byte) error

	// Load retrieves the snapshot held in the slot.
	// Returns domain.ErrSnapshotNotFound if the slot was never written.
	Load(ctx context.Context, key string) ([]byte, error)

	// Delete removes the slot. Deleting a missing slot is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the keys of every stored slot.
	List(ctx context.Context) ([]string, error)
}
