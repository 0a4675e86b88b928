package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload_RehydratesFileRefs(t *testing.T) {
	original := Payload{
		"title": "Backstrap loom basics",
		"file":  FileRef{Name: "loom.mp4", Media: MediaVideo, Data: []byte("raw-bytes")},
	}

	encoded, err := json.Marshal(original)
	require.NoError(t, err)

	decoded, err := DecodePayload(encoded)
	require.NoError(t, err)

	assert.Equal(t, "Backstrap loom basics", decoded["title"])

	ref, ok := decoded["file"].(FileRef)
	require.True(t, ok, "file field must come back as a FileRef, got %T", decoded["file"])
	assert.Equal(t, "loom.mp4", ref.Name)
	assert.Equal(t, MediaVideo, ref.Media)
	assert.Equal(t, []byte("raw-bytes"), ref.Data)
}

func TestDecodePayload_RehydratesRefsInsideLists(t *testing.T) {
	original := Payload{
		"name": "Table runner",
		"images": []any{
			"https://media.example/woven1.jpg",
			FileRef{Name: "woven2.jpg", Media: MediaImage, Data: []byte{1, 2, 3}},
		},
	}

	encoded, err := json.Marshal(original)
	require.NoError(t, err)

	decoded, err := DecodePayload(encoded)
	require.NoError(t, err)

	images, ok := decoded["images"].([]any)
	require.True(t, ok)
	require.Len(t, images, 2)

	assert.Equal(t, "https://media.example/woven1.jpg", images[0])
	ref, ok := images[1].(FileRef)
	require.True(t, ok, "second image must come back as a FileRef")
	assert.Equal(t, MediaImage, ref.Media)
}

func TestDecodePayload_PlainObjectStaysPlain(t *testing.T) {
	encoded := []byte(`{"items":[{"productId":"p1","qty":2}],"total":40}`)

	decoded, err := DecodePayload(encoded)
	require.NoError(t, err)
	assert.False(t, decoded.HasFileRefs())
}

func TestPayload_HasFileRefs(t *testing.T) {
	assert.False(t, Payload{"name": "Maria"}.HasFileRefs())
	assert.True(t, Payload{"file": FileRef{Media: MediaVideo}}.HasFileRefs())
	assert.True(t, Payload{"images": []any{"url", FileRef{Media: MediaImage}}}.HasFileRefs())
	assert.True(t, Payload{"nested": map[string]any{"ref": FileRef{}}}.HasFileRefs())
}

func TestPayload_CloneIsolatesLists(t *testing.T) {
	p := Payload{"images": []any{"a", "b"}}
	clone := p.Clone()

	clone["images"].([]any)[0] = "changed"

	assert.Equal(t, "a", p["images"].([]any)[0], "clone must not share list backing arrays")
}
