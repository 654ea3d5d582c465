package storage

import (
	"context"

	"github.com/poiesic/omnisearch/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the repository and releases resources.
	Close() error
}

// ListingRepository provides operations for the development catalog.
type ListingRepository interface {
	Repository

	// AddListings stores one or more listings, replacing any listing with
	// the same kind and key. Listings with an empty Key get a key derived
	// from their body (core.IDFromContent). Returns the stored listings.
	AddListings(ctx context.Context, listings ...*core.Listing) ([]*core.Listing, error)

	// DeleteListings removes listings of one kind by key.
	// Returns ErrNotFound if any listing doesn't exist.
	DeleteListings(ctx context.Context, kind core.ResultType, keys ...string) error

	// GetListing retrieves a single listing.
	// Returns ErrNotFound if the listing doesn't exist.
	GetListing(ctx context.Context, kind core.ResultType, key string) (*core.Listing, error)

	// ListListings returns every listing of one kind in key order.
	ListListings(ctx context.Context, kind core.ResultType) ([]*core.Listing, error)

	// SearchListings returns the listings of one kind whose body contains
	// term in any string value, case-sensitively, in key order.
	// An empty term matches every listing.
	SearchListings(ctx context.Context, kind core.ResultType, term string) ([]*core.Listing, error)

	// CountListings returns the number of listings of one kind.
	CountListings(ctx context.Context, kind core.ResultType) (int, error)
}
