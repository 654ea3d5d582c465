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

// Package seed loads listings into the development catalog.
//
// Listings are written in batches. Each batch is a single repository
// transaction retried with exponential backoff, so a batch is either
// stored whole or not at all. Progress is reported to an io.Writer as
// batches complete.
//
//	seeder := seed.NewSeeder(repo, seed.DefaultConfig(), os.Stderr)
//	n, err := seeder.Run(ctx, listings)
package seed
