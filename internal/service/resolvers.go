package service

import (
	"context"
	"fmt"

	"github.com/Ivanblancs/weave-sync/internal/adapter"
	"github.com/Ivanblancs/weave-sync/models"
)

// resolverFunc turns a locally-stored payload into its remote-ready form:
// every pending binary reference replaced by a hosted URL, in input order.
// All-or-nothing: one failed upload fails the whole resolution and nothing
// is persisted.
type resolverFunc func(ctx context.Context, uploads adapter.MediaUploader, payload models.Payload) (models.Payload, error)

// resolvers maps each kind to its resolver. Carts are deliberately absent:
// they have no remote representation (see SyncItem).
var resolvers = map[models.Kind]resolverFunc{
	models.KindUser:     resolvePlain,
	models.KindProduct:  resolveProduct,
	models.KindOrder:    resolvePlain,
	models.KindDonation: resolvePlain,
	models.KindVideo:    resolveVideo,
}

// resolvePlain handles kinds that never carry binary fields.
func resolvePlain(_ context.Context, _ adapter.MediaUploader, payload models.Payload) (models.Payload, error) {
	return payload.Clone(), nil
}

// resolveProduct uploads any pending image references in the images list,
// keeping already-resolved URLs in place and preserving list order.
func resolveProduct(ctx context.Context, uploads adapter.MediaUploader, payload models.Payload) (models.Payload, error) {
	resolved := payload.Clone()

	images, ok := resolved["images"].([]any)
	if !ok {
		return resolved, nil
	}

	for i, image := range images {
		switch v := image.(type) {
		case string:
			// Already a hosted URL.
		case models.FileRef:
			url, err := uploads.Upload(ctx, v, models.MediaImage)
			if err != nil {
				return nil, fmt.Errorf("upload product image %d: %w", i, err)
			}
			images[i] = url
		default:
			return nil, fmt.Errorf("product image %d has unsupported type %T", i, image)
		}
	}

	return resolved, nil
}

// resolveVideo uploads the pending video file, if any, and replaces it with
// the hosted URL under the url field.
func resolveVideo(ctx context.Context, uploads adapter.MediaUploader, payload models.Payload) (models.Payload, error) {
	resolved := payload.Clone()

	ref, ok := resolved["file"].(models.FileRef)
	if !ok {
		return resolved, nil
	}

	url, err := uploads.Upload(ctx, ref, models.MediaVideo)
	if err != nil {
		return nil, fmt.Errorf("upload video file: %w", err)
	}

	resolved["url"] = url
	delete(resolved, "file")

	return resolved, nil
}
