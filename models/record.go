package models

import "fmt"

// Kind identifies one of the local entity tables. The string value is the
// local table name.
type Kind string

const (
	KindUser     Kind = "users"
	KindProduct  Kind = "products"
	KindCart     Kind = "carts"
	KindOrder    Kind = "orders"
	KindDonation Kind = "donations"
	KindVideo    Kind = "videos"
)

// Kinds returns every known kind in drain order. SyncPending walks kinds in
// exactly this order.
func Kinds() []Kind {
	return []Kind{KindUser, KindProduct, KindCart, KindOrder, KindDonation, KindVideo}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindUser, KindProduct, KindCart, KindOrder, KindDonation, KindVideo:
		return true
	}
	return false
}

// Table returns the local table name for the kind.
func (k Kind) Table() string {
	return string(k)
}

// Collection returns the remote document collection for the kind. Videos live
// remotely under "videoContents" while the local table stays "videos".
func (k Kind) Collection() string {
	if k == KindVideo {
		return "videoContents"
	}
	return string(k)
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind converts a table name into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown record kind %q", s)
	}
	return k, nil
}

// Record is the envelope for one locally persisted entity. Payload is the
// kind-specific document, keyed by field name; it may contain pending
// FileRef values in place of media URLs until the record is synced.
//
// Synced starts false and flips true only after the remote write is
// confirmed. It never flips back.
type Record struct {
	ID      string  `json:"id"`
	Kind    Kind    `json:"kind"`
	Payload Payload `json:"payload"`
	Synced  bool    `json:"synced"`
}
