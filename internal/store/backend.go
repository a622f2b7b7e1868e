package store

import (
	"context"
	"encoding/json"
)

// ChangeKind distinguishes the two event types the realtime feed carries.
type ChangeKind string

const (
	ChangeInsert ChangeKind = "insert"
	ChangeUpdate ChangeKind = "update"
)

// Change is one realtime event: the full new row of a collection.
type Change struct {
	Collection string          `json:"collection"`
	Kind       ChangeKind      `json:"kind"`
	Row        json.RawMessage `json:"row"`
}

// Backend is the opaque persistence collaborator. The store treats it as
// fire-and-forget: local state is updated first and backend failures are
// logged, never surfaced to the mutating caller. Deletes exist only for
// inventory items and categories; orders, customers and couriers are
// never deleted in normal flow.
type Backend interface {
	ReadAll(ctx context.Context) (Snapshot, error)
	Upsert(ctx context.Context, collection, id string, row any) error
	UpdateByID(ctx context.Context, collection, id string, row any) error
	DeleteByID(ctx context.Context, collection, id string) error
}

// Feed is the change-notification stream keyed by collection name. Every
// local write is published; remote events are merged into the snapshot by
// id lookup.
type Feed interface {
	Publish(ctx context.Context, change Change) error
	Subscribe(ctx context.Context) (<-chan Change, error)
}
