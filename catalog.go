// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package omnisearch

import (
	"log/slog"

	"github.com/poiesic/omnisearch/devserver"
	"github.com/poiesic/omnisearch/storage"
	"github.com/poiesic/omnisearch/storage/badger"
)

// Catalog is an opened development catalog.
type Catalog struct {
	backend *badger.Backend
	repo    storage.ListingRepository
	logger  *slog.Logger
}

// OpenCatalog opens the badger catalog at path, creating it if needed.
// An empty path opens an in-memory catalog.
func OpenCatalog(path string, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}

	backend, err := badger.OpenBackend(path, path == "", badger.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewListingRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Catalog{
		backend: backend,
		repo:    repo,
		logger:  logger,
	}, nil
}

// Repository returns the listing repository.
func (c *Catalog) Repository() storage.ListingRepository {
	return c.repo
}

// NewServer creates a development server over the catalog.
func (c *Catalog) NewServer(opts ...devserver.Option) (*devserver.Server, error) {
	return devserver.New(c.repo, append([]devserver.Option{devserver.WithLogger(c.logger)}, opts...)...)
}

func (c *Catalog) Close() error {
	if err := c.repo.Close(); err != nil {
		c.logger.Error("error closing listing repository", "err", err)
		return err
	}
	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
