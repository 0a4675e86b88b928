package adapter

import "errors"

var (
	// ErrUploadFailed is returned when the media service does not hand back
	// a usable URL: network failure, quota, rejected payload, or a response
	// without the secure_url field regardless of HTTP status.
	ErrUploadFailed = errors.New("media upload failed")

	// ErrRemoteWrite is returned when a document upsert fails (permission,
	// network, validation).
	ErrRemoteWrite = errors.New("remote document write failed")

	// ErrEmptyFileRef is returned when a pending binary reference carries
	// neither in-memory data nor a readable path.
	ErrEmptyFileRef = errors.New("file reference has no content")
)
