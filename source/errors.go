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

package source

import "errors"

var (
	// ErrUnknownSource is returned when no adapter serves the requested type.
	ErrUnknownSource = errors.New("unknown source")

	// ErrMalformedPayload is returned when a response body cannot be decoded
	// into the adapter's list shape.
	ErrMalformedPayload = errors.New("malformed payload")
)
