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

// Package variant generates the casing variants tried against exact-match
// search endpoints.
//
// A Policy is an ordered list of named transforms. Variants applies each
// transform to the query and removes duplicates while keeping first-seen
// order, so callers can stop at the first variant that yields results:
//
//	for _, v := range variant.Default().Variants("red phone") {
//	    // "red phone", "RED PHONE", "Red phone", "Red Phone"
//	}
//
// Backends that already search case-insensitively can use Exact, which
// yields only the query itself.
package variant
