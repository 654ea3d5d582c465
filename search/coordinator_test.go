package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/mock"
	"github.com/poiesic/omnisearch/source"
	"github.com/poiesic/omnisearch/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phoneCatalog() *mock.MockClient {
	return mock.NewMockClient().
		Add("/items/", "Phone", `{"id":1,"title":"Phone","price":"199"}`).
		Add("/services/", "phone", `{"id":"s1","service_name":"phone repair"}`).
		Add("/auctions/", "PHONE", `{"id":7,"item_name":"PHONE booth","current_bid":12}`).
		Add("/features/", "phone", `{"slug":"phone-support","name":"phone support"}`).
		Add("/verticals/", "Phone", `{"id":"v1","name":"Phones"}`)
}

func newTestCoordinator(t *testing.T, client *mock.MockClient, opts ...Option) *Coordinator {
	t.Helper()
	c, err := NewCoordinator(client, opts...)
	require.NoError(t, err)
	t.Cleanup(c.Release)
	return c
}

func TestNewCoordinator(t *testing.T) {
	client := mock.NewMockClient()

	t.Run("valid configuration", func(t *testing.T) {
		c, err := NewCoordinator(client)
		require.NoError(t, err)
		defer c.Release()
		assert.Len(t, c.Adapters(), 5)
		assert.Equal(t, 20, c.poolSize)
	})

	t.Run("with custom logger", func(t *testing.T) {
		c, err := NewCoordinator(client, WithLogger(slog.Default()))
		require.NoError(t, err)
		c.Release()
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		c, err := NewCoordinator(client, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, c.logger)
		c.Release()
	})

	t.Run("nil client", func(t *testing.T) {
		_, err := NewCoordinator(nil)
		assert.Equal(t, ErrClientRequired, err)
	})

	t.Run("empty adapters", func(t *testing.T) {
		_, err := NewCoordinator(client, WithAdapters())
		assert.Equal(t, ErrNoAdapters, err)
	})

	t.Run("nil adapter", func(t *testing.T) {
		_, err := NewCoordinator(client, WithAdapters(source.NewItems(), nil))
		assert.Equal(t, ErrNilAdapter, err)
	})

	t.Run("pool size floor", func(t *testing.T) {
		c, err := NewCoordinator(client, WithPoolSize(-3))
		require.NoError(t, err)
		assert.Equal(t, 1, c.poolSize)
		c.Release()
	})
}

func TestSearch_MergesInSourceOrder(t *testing.T) {
	c := newTestCoordinator(t, phoneCatalog())

	results := c.Search(context.Background(), "  phone ")
	require.Len(t, results, 5)

	types := make([]core.ResultType, len(results))
	for i, r := range results {
		types[i] = r.Type
	}
	assert.Equal(t, core.ResultTypes, types)
	assert.Equal(t, "/items/1", results[0].URL)
	assert.Equal(t, "/verticals/v1", results[4].URL)
}

func TestSearch_OrderIndependentOfCompletionTime(t *testing.T) {
	client := phoneCatalog()
	client.SearchFunc = func(ctx context.Context, endpoint, term string) ([]byte, error) {
		// Earlier sources finish last.
		switch endpoint {
		case "/items/":
			time.Sleep(40 * time.Millisecond)
		case "/services/":
			time.Sleep(20 * time.Millisecond)
		}
		return client.Respond(endpoint, term)
	}
	c := newTestCoordinator(t, client)

	results := c.Search(context.Background(), "phone")
	require.Len(t, results, 5)
	assert.Equal(t, core.TypeItem, results[0].Type)
	assert.Equal(t, core.TypeService, results[1].Type)
}

func TestSearch_SourcesRunInParallel(t *testing.T) {
	client := phoneCatalog()

	// Every source waits until all five have issued a request. A sequential
	// fan-out would never get past the first source.
	var arrived sync.WaitGroup
	arrived.Add(5)
	allArrived := make(chan struct{})
	go func() {
		arrived.Wait()
		close(allArrived)
	}()
	var once sync.Map
	client.SearchFunc = func(ctx context.Context, endpoint, term string) ([]byte, error) {
		if _, seen := once.LoadOrStore(endpoint, true); !seen {
			arrived.Done()
		}
		select {
		case <-allArrived:
		case <-time.After(2 * time.Second):
			return nil, errors.New("sources were not queried concurrently")
		}
		return client.Respond(endpoint, term)
	}
	c := newTestCoordinator(t, client)

	results := c.Search(context.Background(), "phone")
	assert.Len(t, results, 5)
}

func TestSearch_FailureIsolatedPerSource(t *testing.T) {
	client := phoneCatalog().
		Fail("/auctions/", errors.New("503")).
		Fail("/verticals/", errors.New("dns"))
	c := newTestCoordinator(t, client)

	results := c.Search(context.Background(), "phone")
	require.Len(t, results, 3)
	for _, r := range results {
		assert.NotEqual(t, core.TypeAuction, r.Type)
		assert.NotEqual(t, core.TypeVertical, r.Type)
	}
}

func TestSearch_AllSourcesFail(t *testing.T) {
	client := mock.NewMockClient()
	client.SearchFunc = func(context.Context, string, string) ([]byte, error) {
		return nil, errors.New("offline")
	}
	c := newTestCoordinator(t, client)

	results := c.Search(context.Background(), "phone")
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearch_EmptyQueryIssuesNoFetch(t *testing.T) {
	client := phoneCatalog()
	c := newTestCoordinator(t, client)

	assert.Empty(t, c.Search(context.Background(), "   "))
	assert.Zero(t, client.CallCount())
}

func TestSearch_MaxPerSource(t *testing.T) {
	client := mock.NewMockClient().
		Add("/items/", "phone", `{"id":1}`, `{"id":2}`, `{"id":3}`).
		Add("/verticals/", "phone", `{"id":"a"}`, `{"id":"b"}`)
	c := newTestCoordinator(t, client, WithMaxPerSource(2))

	results := c.Search(context.Background(), "phone")
	require.Len(t, results, 4)
	assert.Equal(t, "2", results[1].ID)
	assert.Equal(t, "a", results[2].ID)
}

func TestSearch_ExactPolicy(t *testing.T) {
	client := phoneCatalog()
	c := newTestCoordinator(t, client, WithPolicy(variant.Exact()))

	results := c.Search(context.Background(), "phone")
	// Only sources indexed under the lower-case term match.
	require.Len(t, results, 2)
	assert.Equal(t, 5, client.CallCount())
}

func TestSearch_CustomAdapters(t *testing.T) {
	client := phoneCatalog()
	c := newTestCoordinator(t, client, WithAdapters(source.NewVerticals(), source.NewItems()))

	results := c.Search(context.Background(), "phone")
	require.Len(t, results, 2)
	assert.Equal(t, core.TypeVertical, results[0].Type)
	assert.Equal(t, core.TypeItem, results[1].Type)
}

func TestRun_StaleGenerationDiscarded(t *testing.T) {
	client := mock.NewMockClient().
		Add("/items/", "old", `{"id":"old-1"}`, `{"id":"old-2"}`).
		Add("/items/", "new", `{"id":"new-1"}`)

	releaseOld := make(chan struct{})
	oldStarted := make(chan struct{})
	var startOnce sync.Once
	client.SearchFunc = func(ctx context.Context, endpoint, term string) ([]byte, error) {
		if term == "old" {
			startOnce.Do(func() { close(oldStarted) })
			<-releaseOld
		}
		return client.Respond(endpoint, term)
	}
	c := newTestCoordinator(t, client)

	var tracker Tracker
	rec := &recordingMonitor{}

	gen1 := tracker.Next()
	type outcome struct {
		batch Batch
		fresh bool
	}
	oldDone := make(chan outcome, 1)
	go func() {
		b, fresh := c.Run(context.Background(), Request{Query: "old", Generation: gen1, Tracker: &tracker, Monitor: rec})
		oldDone <- outcome{b, fresh}
	}()
	<-oldStarted

	gen2 := tracker.Next()
	newBatch, fresh := c.Run(context.Background(), Request{Query: "new", Generation: gen2, Tracker: &tracker, Monitor: rec})
	require.True(t, fresh)
	require.Len(t, newBatch.Results, 1)
	assert.Equal(t, gen2, newBatch.Generation)

	close(releaseOld)
	old := <-oldDone
	assert.False(t, old.fresh, "superseded generation must not be published")
	assert.Empty(t, old.batch.Results)
	assert.Equal(t, []Generation{gen1}, rec.discardedGens())
}

func TestRun_CanceledContextIsNotFresh(t *testing.T) {
	client := phoneCatalog()
	c := newTestCoordinator(t, client)

	var tracker Tracker
	gen := tracker.Next()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch, fresh := c.Run(ctx, Request{Query: "phone", Generation: gen, Tracker: &tracker})
	assert.False(t, fresh)
	assert.Empty(t, batch.Results)
}

func TestRun_ReportsToMonitor(t *testing.T) {
	c := newTestCoordinator(t, phoneCatalog())
	rec := &recordingMonitor{}

	_, fresh := c.Run(context.Background(), Request{Query: "phone", Generation: 3, Monitor: rec})
	require.True(t, fresh)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []Generation{3}, rec.started)
	assert.Equal(t, []Generation{3}, rec.finished)
	assert.Len(t, rec.sources, 5)
}

func TestTracker(t *testing.T) {
	var tracker Tracker
	assert.Equal(t, Generation(0), tracker.Latest())

	g1 := tracker.Next()
	g2 := tracker.Next()
	assert.Greater(t, g2, g1)
	assert.False(t, tracker.IsCurrent(g1))
	assert.True(t, tracker.IsCurrent(g2))
}
