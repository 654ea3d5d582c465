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

// Package storage provides the storage abstraction for the development catalog.
//
// The catalog holds raw source records (core.Listing) exactly as each
// source would serve them, grouped by result type. It backs the local
// development server so the aggregator can be exercised end to end
// without the real content sources.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return the repository interface:
//
//	repo, err := badger.NewListingRepository(backend)  // returns storage.ListingRepository
//
// Internal helpers may return concrete types since they're only used
// within the implementation package.
//
// # Search Semantics
//
// SearchListings mirrors a plain backend filter: a listing matches when any
// string value in its JSON body contains the term as an exact, case-sensitive
// substring. There is no ranking. Listings are returned in key order.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	repo, err := badger.NewListingRepository(backend)
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryRepository()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
