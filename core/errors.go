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

import "errors"

// Domain validation errors
var (
	// ErrInvalidResult indicates a Result failed validation.
	ErrInvalidResult = errors.New("invalid result")

	// ErrInvalidListing indicates a Listing failed validation.
	ErrInvalidListing = errors.New("invalid listing")

	// ErrInvalidResultType indicates an unknown ResultType value.
	ErrInvalidResultType = errors.New("invalid result type")

	// ErrEmptyID indicates the identifier is empty.
	ErrEmptyID = errors.New("id cannot be empty")

	// ErrEmptyURL indicates the navigation URL is empty.
	ErrEmptyURL = errors.New("url cannot be empty")

	// ErrEmptyBody indicates a listing has no raw body.
	ErrEmptyBody = errors.New("body cannot be empty")
)
