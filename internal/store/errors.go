package store

import "errors"

// Sentinel errors returned by store methods. Callers should use [errors.Is]
// to match against these values.
var (
	// ErrStorageFault is returned (wrapped) when the local persistent store
	// is unavailable or full. Add propagates it to its caller; the record is
	// not queued.
	ErrStorageFault = errors.New("local storage fault")

	// ErrRecordNotFound is returned when a lookup by id matches no row.
	ErrRecordNotFound = errors.New("record not found")

	// ErrUnknownKind is returned when an operation names a kind outside the
	// six known tables.
	ErrUnknownKind = errors.New("unknown record kind")
)
