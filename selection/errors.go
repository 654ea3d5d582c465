package selection

import "errors"

// ErrUnknownKey is returned by ParseKey for unrecognized key names.
var ErrUnknownKey = errors.New("unknown key")
