package ports

import (
	"context"
)

// DocumentStore checks and records evidence documents such as purchase
// invoices, intake photos, and proof-of-delivery photos. Documents are
// addressed by opaque references issued at upload time.
type DocumentStore interface {
	// Exists reports whether a document reference resolves to a stored
	// object.
	Exists(ctx context.Context, ref string) (bool, error)
}
