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

// Package session drives one as-you-type search surface.
//
// A Session owns the query, the current generation, the merged results,
// the loading flag and the highlight. All of that state is written by a
// single event loop (Run); Open, Close, Input, Key and Snapshot post events
// to it, and debounce timers and finished searches post back into it. No
// locks guard session state: staleness is handled by generations instead.
//
// Input is debounced: a search starts only after the query has been
// quiet for the debounce interval (300ms by default). Each started search
// takes a new generation and cancels the previous one's context. A
// finished search is applied only if its generation is still the latest,
// so a slow, superseded query can never overwrite fresher (possibly empty)
// results. Clearing the query takes effect immediately and issues no
// request.
package session
