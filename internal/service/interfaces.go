package service

import (
	"context"

	"github.com/Ivanblancs/weave-sync/models"
)

// SyncEngine turns locally-queued records into confirmed remote writes.
//
// Add is the write path the rest of the application uses: it persists
// locally, returns at once, and syncs in the background. SyncPending is the
// drain used by the connectivity monitor and the periodic job.
type SyncEngine interface {
	// Add assigns an id if the payload carries none, writes the record
	// locally with synced=false, kicks off a tracked background sync, and
	// returns the id without waiting on the network. The only error it can
	// return is a local storage fault.
	Add(ctx context.Context, kind models.Kind, payload models.Payload) (string, error)

	// SyncItem resolves any pending binary references, merge-upserts the
	// payload remotely under the record's id, and marks the record synced.
	// On any failure the record stays unsynced and no partial state is
	// written anywhere.
	SyncItem(ctx context.Context, record models.Record) error

	// SyncPending drains every kind in fixed order. A failure on one record
	// never aborts the rest of the queue.
	SyncPending(ctx context.Context)

	// Clear deletes all local records across all kinds, synced or not.
	Clear(ctx context.Context) error

	// PendingCounts reports the number of unsynced records per kind.
	PendingCounts(ctx context.Context) (map[models.Kind]int, error)

	// Wait blocks until all in-flight background syncs have settled.
	Wait()
}
