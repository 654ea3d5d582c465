package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/fetch"
	"github.com/poiesic/omnisearch/source"
)

// Fetcher queries one source with an ordered list of variants and returns
// the canonicalized records of the first variant that yields any.
type Fetcher struct {
	client fetch.Client
	logger *slog.Logger
}

// NewFetcher creates a Fetcher. A nil logger uses slog.Default().
func NewFetcher(client fetch.Client, logger *slog.Logger) (*Fetcher, error) {
	if client == nil {
		return nil, ErrClientRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{client: client, logger: logger}, nil
}

// Fetch tries each variant in order. A transport or decode failure counts
// as an empty result for that variant and the next one is tried. Fetch
// never fails: exhausting the variants, or cancellation of ctx, yields an
// empty list.
func (f *Fetcher) Fetch(ctx context.Context, adapter source.Adapter, variants []string, monitor SearchMonitor) []core.Result {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	for _, v := range variants {
		if ctx.Err() != nil {
			return []core.Result{}
		}

		records, err := f.attempt(ctx, adapter, v)
		monitor.AfterAttempt(adapter.Kind(), v, len(records), err)
		if err != nil {
			f.logger.Debug("source attempt failed", "source", adapter.Kind(), "variant", v, "err", err)
			continue
		}
		if len(records) == 0 {
			continue
		}

		results := make([]core.Result, len(records))
		for i, rec := range records {
			results[i] = adapter.Canonicalize(rec)
			if err := core.ValidateResult(&results[i]); err != nil {
				// kept anyway; missing fields degrade, they never drop a record
				f.logger.Debug("incomplete record", "source", adapter.Kind(), "variant", v, "err", err)
			}
		}
		return results
	}

	return []core.Result{}
}

func (f *Fetcher) attempt(ctx context.Context, adapter source.Adapter, term string) ([]source.Record, error) {
	payload, err := f.client.Search(ctx, adapter.Endpoint(), term)
	if err != nil {
		return nil, err
	}
	return adapter.ExtractList(payload)
}
