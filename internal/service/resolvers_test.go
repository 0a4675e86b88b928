package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ivanblancs/weave-sync/models"
)

func TestResolveProduct_UploadsPendingImagesInOrder(t *testing.T) {
	uploader := &spyUploader{}
	payload := models.Payload{
		"name": "Table runner",
		"images": []any{
			"https://media.example/existing.jpg",
			models.FileRef{Name: "new1.jpg", Media: models.MediaImage, Data: []byte("a")},
			models.FileRef{Name: "new2.jpg", Media: models.MediaImage, Data: []byte("b")},
		},
	}

	resolved, err := resolveProduct(context.Background(), uploader, payload)
	require.NoError(t, err)

	images := resolved["images"].([]any)
	require.Len(t, images, 3)
	assert.Equal(t, "https://media.example/existing.jpg", images[0])
	assert.Contains(t, images[1], "new1.jpg")
	assert.Contains(t, images[2], "new2.jpg")
	assert.Equal(t, int64(2), uploader.uploads.Load())

	// The stored payload keeps its pending refs until the sync confirms.
	_, stillRef := payload["images"].([]any)[1].(models.FileRef)
	assert.True(t, stillRef)
}

func TestResolveProduct_OneFailedUploadFailsAll(t *testing.T) {
	uploader := &spyUploader{err: errors.New("rejected format")}
	payload := models.Payload{
		"images": []any{models.FileRef{Name: "x.jpg", Media: models.MediaImage, Data: []byte("a")}},
	}

	_, err := resolveProduct(context.Background(), uploader, payload)
	assert.Error(t, err)
}

func TestResolveProduct_UnsupportedImageType(t *testing.T) {
	payload := models.Payload{"images": []any{42}}

	_, err := resolveProduct(context.Background(), &spyUploader{}, payload)
	assert.Error(t, err)
}

func TestResolveProduct_NoImagesField(t *testing.T) {
	resolved, err := resolveProduct(context.Background(), &spyUploader{}, models.Payload{"name": "Scarf"})
	require.NoError(t, err)
	assert.Equal(t, "Scarf", resolved["name"])
}

func TestResolveVideo_ReplacesFileWithURL(t *testing.T) {
	uploader := &spyUploader{}
	payload := models.Payload{
		"title": "Loom basics",
		"file":  models.FileRef{Name: "loom.mp4", Media: models.MediaVideo, Data: []byte("v")},
	}

	resolved, err := resolveVideo(context.Background(), uploader, payload)
	require.NoError(t, err)

	assert.Contains(t, resolved["url"], "loom.mp4")
	assert.NotContains(t, resolved, "file")
	assert.False(t, resolved.HasFileRefs())
}

func TestResolveVideo_AlreadyResolvedPassesThrough(t *testing.T) {
	uploader := &spyUploader{}
	payload := models.Payload{"title": "A", "url": "https://media.example/a.mp4"}

	resolved, err := resolveVideo(context.Background(), uploader, payload)
	require.NoError(t, err)
	assert.Equal(t, "https://media.example/a.mp4", resolved["url"])
	assert.Equal(t, int64(0), uploader.uploads.Load())
}

func TestResolvePlain_DoesNotShareState(t *testing.T) {
	payload := models.Payload{"name": "Maria"}
	resolved, err := resolvePlain(context.Background(), nil, payload)
	require.NoError(t, err)

	resolved["name"] = "changed"
	assert.Equal(t, "Maria", payload["name"])
}
