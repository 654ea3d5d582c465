package config

import "errors"

// ErrInvalidConfig is returned when a configuration cannot be used.
var ErrInvalidConfig = errors.New("invalid config")
