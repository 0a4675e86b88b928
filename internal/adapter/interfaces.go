package adapter

import (
	"context"

	"github.com/Ivanblancs/weave-sync/models"
)

// MediaUploader pushes one binary asset to the media hosting service and
// returns its stable URL. No internal retry: on failure the owning record
// simply stays unsynced and is retried on the next drain.
type MediaUploader interface {
	Upload(ctx context.Context, ref models.FileRef, media models.MediaType) (string, error)
}

// DocumentStore is the authoritative remote backend. Upsert with merge=true
// performs a partial update: remote fields absent from payload are preserved.
type DocumentStore interface {
	Upsert(ctx context.Context, collection, id string, payload map[string]any, merge bool) error
}
