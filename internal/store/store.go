// Package store holds the product catalog behind the serve mode: the set
// of known products and their running counts. Counts are updated when
// scanned sheets are posted back, so the catalog is the aggregation point
// of the whole workflow.
package store

import (
	"context"
)

// Product is one catalog entry. Key is the payload printed into the row's
// code image; Name is the human-readable label on the sheet.
type Product struct {
	Key   string `json:"key" bson:"_id"`
	Name  string `json:"name" bson:"name"`
	Count int    `json:"count" bson:"count"`
}

// Catalog is the persistence contract for products and counts.
//
// Increment follows scan semantics: counting against an unknown key
// creates the product with its key as a provisional name, so a sheet
// printed from an older catalog still lands somewhere visible instead of
// being dropped.
type Catalog interface {
	// List returns all products sorted by key.
	List(ctx context.Context) ([]Product, error)

	// Get returns the product with the given key, or NOT_FOUND.
	Get(ctx context.Context, key string) (Product, error)

	// Put creates or replaces a product entry.
	Put(ctx context.Context, p Product) error

	// Rename updates the name of an existing product, or returns NOT_FOUND.
	Rename(ctx context.Context, key, name string) error

	// Increment adds delta to the product's count, creating the product if
	// needed, and returns the updated entry.
	Increment(ctx context.Context, key string, delta int) (Product, error)

	// Close releases the backing resources.
	Close(ctx context.Context) error
}
