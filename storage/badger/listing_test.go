package badger

import (
	"context"
	"testing"

	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) storage.ListingRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func keys(listings []*core.Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.Key
	}
	return out
}

func seedPhones(t *testing.T, repo storage.ListingRepository) {
	t.Helper()
	_, err := repo.AddListings(context.Background(),
		&core.Listing{Kind: core.TypeItem, Key: "1", Body: `{"id":1,"title":"Phone"}`},
		&core.Listing{Kind: core.TypeItem, Key: "2", Body: `{"id":2,"title":"phone case"}`},
		&core.Listing{Kind: core.TypeItem, Key: "3", Body: `{"id":3,"title":"Laptop","description":"pairs with your Phone"}`},
		&core.Listing{Kind: core.TypeService, Key: "s1", Body: `{"id":"s1","service_name":"Phone repair"}`},
	)
	require.NoError(t, err)
}

func TestAddListings(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	t.Run("stores and retrieves", func(t *testing.T) {
		listing := &core.Listing{Kind: core.TypeItem, Key: "1", Body: `{"id":1}`}
		stored, err := repo.AddListings(ctx, listing)
		require.NoError(t, err)
		require.Len(t, stored, 1)

		got, err := repo.GetListing(ctx, core.TypeItem, "1")
		require.NoError(t, err)
		assert.Equal(t, listing, got)
	})

	t.Run("derives key from body", func(t *testing.T) {
		body := `{"slug":"dark-mode","name":"Dark mode"}`
		stored, err := repo.AddListings(ctx, &core.Listing{Kind: core.TypeFeature, Body: body})
		require.NoError(t, err)
		assert.Equal(t, core.IDFromContent(body).String(), stored[0].Key)

		_, err = repo.GetListing(ctx, core.TypeFeature, stored[0].Key)
		require.NoError(t, err)
	})

	t.Run("replaces existing key", func(t *testing.T) {
		_, err := repo.AddListings(ctx, &core.Listing{Kind: core.TypeItem, Key: "1", Body: `{"id":1,"title":"new"}`})
		require.NoError(t, err)

		got, err := repo.GetListing(ctx, core.TypeItem, "1")
		require.NoError(t, err)
		assert.Contains(t, got.Body, "new")
	})

	t.Run("rejects invalid listing", func(t *testing.T) {
		_, err := repo.AddListings(ctx, &core.Listing{Kind: "gadget", Key: "g", Body: "{}"})
		assert.ErrorIs(t, err, core.ErrInvalidListing)

		_, err = repo.AddListings(ctx, &core.Listing{Kind: core.TypeItem, Key: "x"})
		assert.ErrorIs(t, err, core.ErrInvalidListing)

		_, err = repo.AddListings(ctx, nil)
		assert.ErrorIs(t, err, core.ErrInvalidListing)
	})

	t.Run("invalid listing aborts the batch", func(t *testing.T) {
		_, err := repo.AddListings(ctx,
			&core.Listing{Kind: core.TypeAuction, Key: "a1", Body: `{"id":"a1"}`},
			&core.Listing{Kind: core.TypeAuction, Key: "a2"},
		)
		require.Error(t, err)

		_, err = repo.GetListing(ctx, core.TypeAuction, "a1")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestGetListing_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetListing(context.Background(), core.TypeItem, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListingsAreScopedByKind(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	seedPhones(t, repo)

	_, err := repo.GetListing(ctx, core.TypeService, "1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	items, err := repo.ListListings(ctx, core.TypeItem)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, keys(items))

	count, err := repo.CountListings(ctx, core.TypeService)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = repo.CountListings(ctx, core.TypeVertical)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSearchListings(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	seedPhones(t, repo)

	tests := []struct {
		name string
		kind core.ResultType
		term string
		want []string
	}{
		{"case-sensitive match", core.TypeItem, "Phone", []string{"1", "3"}},
		{"lowercase match", core.TypeItem, "phone", []string{"2"}},
		{"uppercase misses", core.TypeItem, "PHONE", []string{}},
		{"empty term lists all", core.TypeItem, "", []string{"1", "2", "3"}},
		{"other kind", core.TypeService, "Phone", []string{"s1"}},
		{"empty kind", core.TypeVertical, "Phone", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := repo.SearchListings(ctx, tt.kind, tt.term)
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys(results))
		})
	}

	t.Run("canceled context", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := repo.SearchListings(canceled, core.TypeItem, "Phone")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDeleteListings(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	seedPhones(t, repo)

	require.NoError(t, repo.DeleteListings(ctx, core.TypeItem, "1", "2"))

	items, err := repo.ListListings(ctx, core.TypeItem)
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, keys(items))

	err = repo.DeleteListings(ctx, core.TypeItem, "1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
