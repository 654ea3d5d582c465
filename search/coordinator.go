package search

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/fetch"
	"github.com/poiesic/omnisearch/source"
	"github.com/poiesic/omnisearch/variant"
)

// Coordinator fans a query out to every source and merges the outcomes.
type Coordinator struct {
	fetcher      *Fetcher
	adapters     []source.Adapter
	policy       variant.Policy
	pool         *ants.Pool
	poolSize     int
	maxPerSource int
	logger       *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithAdapters replaces the default sources. Merge order follows the
// order given here.
func WithAdapters(adapters ...source.Adapter) Option {
	return func(c *Coordinator) error {
		if len(adapters) == 0 {
			return ErrNoAdapters
		}
		for _, a := range adapters {
			if a == nil {
				return ErrNilAdapter
			}
		}
		c.adapters = append([]source.Adapter(nil), adapters...)
		return nil
	}
}

// WithPolicy sets the casing variant policy.
// Default is variant.Default().
func WithPolicy(policy variant.Policy) Option {
	return func(c *Coordinator) error {
		c.policy = policy
		return nil
	}
}

// WithPoolSize sets the worker pool size shared by all searches.
// Default is four workers per source.
func WithPoolSize(size int) Option {
	return func(c *Coordinator) error {
		if size < 1 {
			size = 1
		}
		c.poolSize = size
		return nil
	}
}

// WithMaxPerSource caps how many results each source contributes.
// Zero or negative means no cap.
func WithMaxPerSource(n int) Option {
	return func(c *Coordinator) error {
		c.maxPerSource = n
		return nil
	}
}

// NewCoordinator creates a coordinator over the default sources.
func NewCoordinator(client fetch.Client, opts ...Option) (*Coordinator, error) {
	if client == nil {
		return nil, ErrClientRequired
	}

	c := &Coordinator{
		adapters: source.Defaults(),
		policy:   variant.Default(),
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.poolSize == 0 {
		c.poolSize = 4 * len(c.adapters)
	}

	fetcher, err := NewFetcher(client, c.logger)
	if err != nil {
		return nil, err
	}
	c.fetcher = fetcher

	logger := c.logger
	pool, err := ants.NewPool(c.poolSize, ants.WithPanicHandler(func(p any) {
		logger.Error("source worker panicked", "panic", p)
	}))
	if err != nil {
		return nil, err
	}
	c.pool = pool

	return c, nil
}

// Adapters returns the sources in merge order.
func (c *Coordinator) Adapters() []source.Adapter {
	return append([]source.Adapter(nil), c.adapters...)
}

// Request describes one coordinator run.
type Request struct {
	Query      string
	Generation Generation
	// Tracker decides freshness once all sources finish. A nil tracker
	// treats every run as current.
	Tracker *Tracker
	Monitor SearchMonitor
}

// Batch is the merged outcome of one run.
type Batch struct {
	Query      string
	Generation Generation
	Results    []core.Result
	Elapsed    time.Duration
}

// Search runs an untracked search and returns the merged results.
// An empty query returns an empty list without contacting any source.
func (c *Coordinator) Search(ctx context.Context, query string) []core.Result {
	batch, _ := c.Run(ctx, Request{Query: query})
	return batch.Results
}

// Run fans the query out to every source in parallel, waits for all of
// them, and merges their results in adapter order. The returned flag is
// false when the run was superseded (its generation is no longer the
// tracker's latest) or its context was canceled; the batch is then empty
// and must not be published.
func (c *Coordinator) Run(ctx context.Context, req Request) (Batch, bool) {
	monitor := req.Monitor
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	query := core.NormalizeQuery(req.Query)
	batch := Batch{Query: query, Generation: req.Generation, Results: []core.Result{}}
	if query == "" {
		return batch, c.fresh(ctx, req)
	}

	started := time.Now()
	monitor.Start(query, req.Generation)

	variants := c.policy.Variants(query)
	outcomes := make([][]core.Result, len(c.adapters))

	var wg sync.WaitGroup
	for i, adapter := range c.adapters {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results := c.fetcher.Fetch(ctx, adapter, variants, monitor)
			if c.maxPerSource > 0 && len(results) > c.maxPerSource {
				results = results[:c.maxPerSource]
			}
			outcomes[i] = results
			monitor.AfterSource(adapter.Kind(), results)
		}
		if err := c.pool.Submit(task); err != nil {
			c.logger.Warn("worker pool unavailable, running source inline", "source", adapter.Kind(), "err", err)
			go task()
		}
	}
	wg.Wait()

	if !c.fresh(ctx, req) {
		monitor.Discarded(req.Generation)
		return Batch{Query: query, Generation: req.Generation}, false
	}

	for _, results := range outcomes {
		batch.Results = append(batch.Results, results...)
	}
	batch.Elapsed = time.Since(started)
	monitor.Finish(req.Generation, batch.Results)

	return batch, true
}

func (c *Coordinator) fresh(ctx context.Context, req Request) bool {
	if ctx.Err() != nil {
		return false
	}
	return req.Tracker == nil || req.Tracker.IsCurrent(req.Generation)
}

// Release releases the worker pool. The coordinator should not be used
// after calling Release.
func (c *Coordinator) Release() {
	if c.pool != nil {
		c.pool.Release()
	}
}
