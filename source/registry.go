package source

import (
	"fmt"

	"github.com/poiesic/omnisearch/core"
)

// Defaults returns one adapter per source in merge order:
// items, services, auctions, features, verticals.
func Defaults() []Adapter {
	return []Adapter{
		NewItems(),
		NewServices(),
		NewAuctions(),
		NewFeatures(),
		NewVerticals(),
	}
}

// ForKind returns the default adapter for a result type.
func ForKind(kind core.ResultType) (Adapter, error) {
	for _, a := range Defaults() {
		if a.Kind() == kind {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSource, kind)
}
