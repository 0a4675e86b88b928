package models

import (
	"encoding/json"
	"fmt"
)

// MediaType selects the remote upload endpoint for a binary asset.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// fileRefMarker tags a FileRef in serialized payloads so it can be told apart
// from an ordinary object after a local-store round trip.
const fileRefMarker = "__fileref__"

// FileRef is a pending binary reference: a media asset that has not been
// uploaded yet. It carries either the raw bytes (base64 on the wire) or a
// path to the file on disk. A record holding a FileRef must never reach the
// remote document store; the reference is resolved to a URL first.
type FileRef struct {
	// Name is the original file name, used as the multipart file name.
	Name string `json:"name,omitempty"`

	// Media is the asset type, image or video.
	Media MediaType `json:"media"`

	// Data holds the file content in memory. Optional when Path is set.
	Data []byte `json:"data,omitempty"`

	// Path points at the file on the local filesystem. Used when Data is
	// empty.
	Path string `json:"path,omitempty"`
}

// fileRefJSON is the serialized form of FileRef, with the marker field added.
type fileRefJSON struct {
	Marker bool      `json:"__fileref__"`
	Name   string    `json:"name,omitempty"`
	Media  MediaType `json:"media"`
	Data   []byte    `json:"data,omitempty"`
	Path   string    `json:"path,omitempty"`
}

// MarshalJSON writes the reference with a marker field so DecodePayload can
// rehydrate it.
func (f FileRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(fileRefJSON{
		Marker: true,
		Name:   f.Name,
		Media:  f.Media,
		Data:   f.Data,
		Path:   f.Path,
	})
}

// Payload is a kind-specific document. Values are plain JSON types plus
// FileRef for not-yet-uploaded media.
type Payload map[string]any

// DecodePayload unmarshals a payload previously produced by json.Marshal,
// rehydrating marked maps back into FileRef values, including inside lists.
func DecodePayload(data []byte) (Payload, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return Payload(rehydrate(raw).(map[string]any)), nil
}

func rehydrate(v any) any {
	switch val := v.(type) {
	case map[string]any:
		if _, ok := val[fileRefMarker]; ok {
			if ref, err := mapToFileRef(val); err == nil {
				return ref
			}
		}
		for k, item := range val {
			val[k] = rehydrate(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = rehydrate(item)
		}
		return val
	default:
		return v
	}
}

func mapToFileRef(m map[string]any) (FileRef, error) {
	encoded, err := json.Marshal(m)
	if err != nil {
		return FileRef{}, err
	}
	var via fileRefJSON
	if err = json.Unmarshal(encoded, &via); err != nil {
		return FileRef{}, err
	}
	return FileRef{Name: via.Name, Media: via.Media, Data: via.Data, Path: via.Path}, nil
}

// HasFileRefs reports whether the payload still carries any pending binary
// reference. Used as a final guard before a remote write.
func (p Payload) HasFileRefs() bool {
	return anyFileRef(map[string]any(p))
}

func anyFileRef(v any) bool {
	switch val := v.(type) {
	case FileRef, *FileRef:
		return true
	case map[string]any:
		for _, item := range val {
			if anyFileRef(item) {
				return true
			}
		}
	case Payload:
		return anyFileRef(map[string]any(val))
	case []any:
		for _, item := range val {
			if anyFileRef(item) {
				return true
			}
		}
	}
	return false
}

// Clone returns a shallow-plus-lists copy of the payload. Resolvers mutate
// the copy when swapping refs for URLs, never the stored payload.
func (p Payload) Clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		if list, ok := v.([]any); ok {
			copied := make([]any, len(list))
			copy(copied, list)
			out[k] = copied
			continue
		}
		out[k] = v
	}
	return out
}
