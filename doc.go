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

// Package omnisearch is a federated, as-you-type search aggregator.
//
// One free-text query is sent to several independent content sources
// (items, services, auctions, features, verticals). Each source is
// case-sensitive, so the query is retried in a few casing variants until
// one returns results. The per-source results are canonicalized into one
// core.Result shape and merged in a fixed source order.
//
// Aggregator wires the pieces together from a config.Config:
//
//	agg, err := omnisearch.NewAggregator(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer agg.Close()
//
//	results := agg.Search(ctx, "phone")
//
// Interactive surfaces use a session.Session from NewSession, which
// debounces input and never shows results from an abandoned query.
//
// Catalog opens the development catalog that stands in for the real
// sources during local work.
package omnisearch
