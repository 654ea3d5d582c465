package omnisearch

import (
	"context"
	"log/slog"

	"github.com/poiesic/omnisearch/config"
	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/fetch"
	"github.com/poiesic/omnisearch/search"
	"github.com/poiesic/omnisearch/session"
)

// Aggregator wires the HTTP transport and the federated coordinator from a
// Config. It is safe for concurrent use.
type Aggregator struct {
	cfg     *config.Config
	coord   *search.Coordinator
	monitor search.SearchMonitor
	logger  *slog.Logger
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*aggregatorOptions)

type aggregatorOptions struct {
	logger  *slog.Logger
	monitor search.SearchMonitor
	client  fetch.Client
}

// WithLogger sets the logger passed to every component.
func WithLogger(logger *slog.Logger) AggregatorOption {
	return func(o *aggregatorOptions) {
		o.logger = logger
	}
}

// WithMonitor attaches a monitor to every search.
func WithMonitor(monitor search.SearchMonitor) AggregatorOption {
	return func(o *aggregatorOptions) {
		o.monitor = monitor
	}
}

// WithClient replaces the HTTP transport built from the config.
func WithClient(client fetch.Client) AggregatorOption {
	return func(o *aggregatorOptions) {
		o.client = client
	}
}

// NewAggregator validates cfg and builds the search stack. A nil cfg uses
// config.DefaultConfig().
func NewAggregator(cfg *config.Config, opts ...AggregatorOption) (*Aggregator, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &aggregatorOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	client := options.client
	if client == nil {
		httpClient, err := fetch.New(cfg.Fetch())
		if err != nil {
			return nil, err
		}
		client = httpClient
	}

	policy, err := cfg.VariantPolicy()
	if err != nil {
		return nil, err
	}

	searchOpts := []search.Option{
		search.WithLogger(options.logger),
		search.WithPolicy(policy),
		search.WithMaxPerSource(cfg.MaxPerSource),
	}
	if cfg.PoolSize > 0 {
		searchOpts = append(searchOpts, search.WithPoolSize(cfg.PoolSize))
	}
	coord, err := search.NewCoordinator(client, searchOpts...)
	if err != nil {
		return nil, err
	}

	return &Aggregator{
		cfg:     cfg,
		coord:   coord,
		monitor: options.monitor,
		logger:  options.logger,
	}, nil
}

// Search runs one federated search and returns the merged results.
func (a *Aggregator) Search(ctx context.Context, query string) []core.Result {
	batch, _ := a.coord.Run(ctx, search.Request{Query: query, Monitor: a.monitor})
	if batch.Results == nil {
		return []core.Result{}
	}
	return batch.Results
}

// NewSession creates a search session using the configured debounce.
// Options given here are applied after the defaults.
func (a *Aggregator) NewSession(nav session.Navigator, opts ...session.Option) (*session.Session, error) {
	defaults := []session.Option{
		session.WithLogger(a.logger),
		session.WithDebounce(a.cfg.Debounce),
	}
	if a.monitor != nil {
		defaults = append(defaults, session.WithMonitor(a.monitor))
	}
	return session.New(a.coord, nav, append(defaults, opts...)...)
}

// Coordinator returns the underlying coordinator.
func (a *Aggregator) Coordinator() *search.Coordinator {
	return a.coord
}

// Close releases the coordinator's worker pool.
func (a *Aggregator) Close() error {
	a.coord.Release()
	return nil
}
