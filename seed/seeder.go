package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/storage"
)

// Config holds configuration for a seeding run.
type Config struct {
	// BatchSize is the number of listings stored per transaction.
	BatchSize int

	// ReportInterval is how often to report progress (number of listings).
	ReportInterval int

	// MaxRetries is the maximum number of attempts per batch.
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff.
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     100 * time.Millisecond,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be greater than 0", ErrInvalidConfig)
	}
	if c.ReportInterval <= 0 {
		return fmt.Errorf("%w: report interval must be greater than 0", ErrInvalidConfig)
	}
	if c.MaxRetries <= 0 {
		return fmt.Errorf("%w: max retries must be greater than 0", ErrInvalidConfig)
	}
	return nil
}

// Seeder writes listings into a repository in batches.
type Seeder struct {
	repo     storage.ListingRepository
	config   *Config
	progress io.Writer
}

// NewSeeder creates a seeder. A nil config uses DefaultConfig.
// progress: where to write progress output (typically os.Stderr)
func NewSeeder(repo storage.ListingRepository, config *Config, progress io.Writer) *Seeder {
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}
	return &Seeder{
		repo:     repo,
		config:   config,
		progress: progress,
	}
}

// Run stores listings and returns how many were written. On error, the
// count covers the batches that were committed before the failure.
func (s *Seeder) Run(ctx context.Context, listings []*core.Listing) (int, error) {
	if err := s.config.Validate(); err != nil {
		return 0, err
	}
	if len(listings) == 0 {
		fmt.Fprintln(s.progress, "No listings to seed")
		return 0, nil
	}

	fmt.Fprintf(s.progress, "Seeding %d listings (batch size: %d)\n", len(listings), s.config.BatchSize)

	progress := NewProgress(s.progress, len(listings), s.config.BatchSize, s.config.ReportInterval)

	for batch := range slices.Chunk(listings, s.config.BatchSize) {
		err := Retry(ctx, s.config.MaxRetries, s.config.RetryDelay, func(ctx context.Context) error {
			_, err := s.repo.AddListings(ctx, batch...)
			if errors.Is(err, core.ErrInvalidListing) {
				return Permanent(err)
			}
			return err
		})
		if err != nil {
			fmt.Fprintln(s.progress)
			return progress.Stored(), fmt.Errorf("failed to store batch: %w", err)
		}
		progress.Committed(batch)
	}

	progress.Finish()
	fmt.Fprintf(s.progress, "Seeding complete. Stored %d listings in %v\n",
		len(listings), progress.Elapsed().Round(time.Millisecond))

	return len(listings), nil
}
