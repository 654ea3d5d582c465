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

package core

import "fmt"

// ValidateResult validates a Result according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Type must be one of the known result types
//   - URL must not be empty
//
// Title, Description and Category may be empty; sources are not required
// to provide them.
func ValidateResult(result *Result) error {
	if result == nil {
		return fmt.Errorf("%w: result is nil", ErrInvalidResult)
	}
	if result.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidResult, ErrEmptyID)
	}
	if err := ValidateResultType(result.Type); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResult, err)
	}
	if result.URL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidResult, ErrEmptyURL)
	}
	return nil
}

// ValidateListing validates a Listing before it is stored.
func ValidateListing(listing *Listing) error {
	if listing == nil {
		return fmt.Errorf("%w: listing is nil", ErrInvalidListing)
	}
	if listing.Key == "" {
		return fmt.Errorf("%w: %w", ErrInvalidListing, ErrEmptyID)
	}
	if err := ValidateResultType(listing.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidListing, err)
	}
	if listing.Body == "" {
		return fmt.Errorf("%w: %w", ErrInvalidListing, ErrEmptyBody)
	}
	return nil
}

// ValidateResultType validates that a ResultType has a known value.
func ValidateResultType(t ResultType) error {
	for _, known := range ResultTypes {
		if t == known {
			return nil
		}
	}
	return fmt.Errorf("%w: value %q", ErrInvalidResultType, t)
}
