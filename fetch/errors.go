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

package fetch

import (
	"errors"
	"fmt"
)

var (
	// ErrBaseURLRequired is returned when no base URL is configured.
	ErrBaseURLRequired = errors.New("base URL required")

	// ErrInvalidBaseURL is returned when the base URL cannot be used.
	ErrInvalidBaseURL = errors.New("invalid base URL")

	// ErrBodyTooLarge is returned when a response exceeds Config.MaxBytes.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrUnexpectedStatus matches any StatusError via errors.Is.
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d", e.Code)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}
