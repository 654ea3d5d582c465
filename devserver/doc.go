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

// Package devserver serves the development catalog over HTTP.
//
// Each default source gets one GET route at its endpoint. The route filters
// that source's listings with the "search" query parameter (exact,
// case-sensitive substring) and answers in the source's native list shape:
// nested under "results" for items, services, auctions and features, and a
// bare array for verticals. Pointing the aggregator at a devserver exercises
// casing-variant fallback exactly as the real case-sensitive sources would.
//
// Listings come from YAML fixtures (see LoadFixtures) persisted in a
// storage.ListingRepository.
package devserver
