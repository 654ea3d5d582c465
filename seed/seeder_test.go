package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/storage"
	"github.com/poiesic/omnisearch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) storage.ListingRepository {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func items(n int) []*core.Listing {
	listings := make([]*core.Listing, n)
	for i := range listings {
		listings[i] = &core.Listing{
			Kind: core.TypeItem,
			Key:  fmt.Sprintf("%03d", i),
			Body: fmt.Sprintf(`{"id":%d,"title":"item %d"}`, i, i),
		}
	}
	return listings
}

// flakyRepo fails the first failures calls to AddListings.
type flakyRepo struct {
	storage.ListingRepository
	failures atomic.Int32
	calls    atomic.Int32
}

func (r *flakyRepo) AddListings(ctx context.Context, listings ...*core.Listing) ([]*core.Listing, error) {
	r.calls.Add(1)
	if r.failures.Add(-1) >= 0 {
		return nil, errors.New("transaction conflict")
	}
	return r.ListingRepository.AddListings(ctx, listings...)
}

func fastConfig() *Config {
	return &Config{BatchSize: 10, ReportInterval: 10, MaxRetries: 3, RetryDelay: time.Millisecond}
}

func TestSeeder_Run(t *testing.T) {
	repo := newRepo(t)
	var out bytes.Buffer

	n, err := NewSeeder(repo, fastConfig(), &out).Run(context.Background(), items(25))
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	count, err := repo.CountListings(context.Background(), core.TypeItem)
	require.NoError(t, err)
	assert.Equal(t, 25, count)
	assert.Contains(t, out.String(), "Seeding 25 listings")
	assert.Contains(t, out.String(), "25/25")
	assert.Contains(t, out.String(), "Seeding complete")
}

func TestSeeder_Empty(t *testing.T) {
	var out bytes.Buffer
	n, err := NewSeeder(newRepo(t), nil, &out).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Contains(t, out.String(), "No listings")
}

func TestSeeder_RetriesTransientFailures(t *testing.T) {
	repo := &flakyRepo{ListingRepository: newRepo(t)}
	repo.failures.Store(2)

	n, err := NewSeeder(repo, fastConfig(), nil).Run(context.Background(), items(5))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, int32(3), repo.calls.Load())
}

func TestSeeder_GivesUp(t *testing.T) {
	repo := &flakyRepo{ListingRepository: newRepo(t)}
	repo.failures.Store(100)

	n, err := NewSeeder(repo, fastConfig(), nil).Run(context.Background(), items(25))
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Equal(t, int32(3), repo.calls.Load())
}

func TestSeeder_InvalidListingNotRetried(t *testing.T) {
	repo := &flakyRepo{ListingRepository: newRepo(t)}
	listings := append(items(10), &core.Listing{Kind: "gadget", Key: "g", Body: "{}"})

	n, err := NewSeeder(repo, fastConfig(), nil).Run(context.Background(), listings)
	assert.ErrorIs(t, err, core.ErrInvalidListing)
	assert.Equal(t, 10, n, "the first batch was committed")
	assert.Equal(t, int32(2), repo.calls.Load())
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	for _, cfg := range []*Config{
		{BatchSize: 0, ReportInterval: 1, MaxRetries: 1},
		{BatchSize: 1, ReportInterval: 0, MaxRetries: 1},
		{BatchSize: 1, ReportInterval: 1, MaxRetries: 0},
	} {
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	}

	_, err := NewSeeder(newRepo(t), &Config{}, nil).Run(context.Background(), items(1))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
