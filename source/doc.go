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

// Package source defines the per-category adapters consulted by the
// federated search.
//
// Each Adapter knows three things about its backend:
//   - the fixed endpoint path searched with ?search=<term>
//   - the list shape of the response payload (results nested under a
//     "results" field, or a bare JSON array)
//   - how to canonicalize one raw record into a core.Result
//
// Raw records are decoded leniently: every canonical field falls back
// through a short list of source-specific alternates, and a field with an
// unexpected JSON type is left empty rather than failing the record.
package source
