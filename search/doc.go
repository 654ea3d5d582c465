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

// Package search provides federated search over several content sources.
//
// A Coordinator fans one query out to every source.Adapter in parallel.
// For each source a Fetcher tries the query's casing variants in order and
// stops at the first variant that returns records; transport failures are
// treated as "no results" for that variant and never reach the caller.
// Once every source has finished, results are concatenated in adapter
// order (items, services, auctions, features, verticals). No relevance
// scoring is applied; source order is the only ranking.
//
// Every run carries a Generation issued by a Tracker. A run whose
// generation is no longer the tracker's latest when the fan-out completes
// is discarded, so results from a superseded query never replace fresher
// ones.
package search
