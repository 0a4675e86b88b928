package store

import (
	"context"

	"github.com/Ivanblancs/weave-sync/models"
)

// LocalStore is the on-device persistent queue: one table per record kind,
// every row tagged with a synced flag.
type LocalStore interface {
	// Put upserts a record by id. It either fully succeeds or fails with an
	// error wrapping ErrStorageFault.
	Put(ctx context.Context, record models.Record) error

	// Get returns the record with the given id, or ErrRecordNotFound.
	Get(ctx context.Context, kind models.Kind, id string) (models.Record, error)

	// GetAll returns every record of the kind. Order is not significant.
	GetAll(ctx context.Context, kind models.Kind) ([]models.Record, error)

	// GetUnsynced returns only records with synced=false.
	GetUnsynced(ctx context.Context, kind models.Kind) ([]models.Record, error)

	// CountUnsynced returns the number of records with synced=false.
	CountUnsynced(ctx context.Context, kind models.Kind) (int, error)

	// MarkSynced flips synced to true for the given id. No-op if absent.
	MarkSynced(ctx context.Context, kind models.Kind, id string) error

	// ClearAll deletes every record in every kind table. Best-effort: a
	// failure on one table is logged and the remaining tables are still
	// cleared.
	ClearAll(ctx context.Context) error
}
