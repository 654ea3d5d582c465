package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/storage"
)

// ListingRepository implements storage.ListingRepository for BadgerDB.
type ListingRepository struct {
	backend *Backend
}

var _ storage.ListingRepository = (*ListingRepository)(nil)

// NewListingRepository creates a new ListingRepository.
func NewListingRepository(backend *Backend) (storage.ListingRepository, error) {
	return &ListingRepository{
		backend: backend,
	}, nil
}

// Close releases resources. ListingRepository has no resources to release;
// the backend is closed by its owner.
func (r *ListingRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ListingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddListings stores one or more listings.
func (r *ListingRepository) AddListings(ctx context.Context, listings ...*core.Listing) ([]*core.Listing, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, listing := range listings {
			if listing != nil && listing.Key == "" {
				listing.Key = core.IDFromContent(listing.Body).String()
			}
			if err := core.ValidateListing(listing); err != nil {
				return err
			}

			key := makeListingKey(listing.Kind, listing.Key)
			if err := tx.Set(key, storage.MarshalListing(listing)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	r.backend.logger.Debug("listings stored", "count", len(listings))
	return listings, nil
}

// DeleteListings removes listings of one kind by key.
func (r *ListingRepository) DeleteListings(ctx context.Context, kind core.ResultType, keys ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, k := range keys {
			key := makeListingKey(kind, k)
			if _, err := tx.Get(key); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("%w: %s %q", storage.ErrNotFound, kind, k)
				}
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetListing retrieves a single listing.
func (r *ListingRepository) GetListing(ctx context.Context, kind core.ResultType, key string) (*core.Listing, error) {
	var result *core.Listing
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeListingKey(kind, key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			result, err = storage.UnmarshalListing(val)
			return err
		})
	}, false)
	return result, err
}

// ListListings returns every listing of one kind in key order.
func (r *ListingRepository) ListListings(ctx context.Context, kind core.ResultType) ([]*core.Listing, error) {
	return r.SearchListings(ctx, kind, "")
}

// SearchListings scans the listings of one kind and keeps those matching term.
func (r *ListingRepository) SearchListings(ctx context.Context, kind core.ResultType, term string) ([]*core.Listing, error) {
	results := []*core.Listing{}
	err := r.scan(ctx, kind, func(listing *core.Listing) {
		if storage.Matches(listing, term) {
			results = append(results, listing)
		}
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// CountListings returns the number of listings of one kind.
func (r *ListingRepository) CountListings(ctx context.Context, kind core.ResultType) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeListingKindPrefix(kind)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// scan visits every listing of one kind in key order.
func (r *ListingRepository) scan(ctx context.Context, kind core.ResultType, visit func(*core.Listing)) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeListingKindPrefix(kind)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var listing *core.Listing
			err := iter.Item().Value(func(val []byte) error {
				var err error
				listing, err = storage.UnmarshalListing(val)
				return err
			})
			if err != nil {
				return err
			}
			visit(listing)
		}
		return nil
	}, false)
}
