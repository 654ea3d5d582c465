package devserver

import "errors"

var (
	// ErrRepositoryRequired is returned when a listing repository is not provided.
	ErrRepositoryRequired = errors.New("listing repository required")

	// ErrInvalidFixtures is returned when a fixtures document cannot be used.
	ErrInvalidFixtures = errors.New("invalid fixtures")
)
