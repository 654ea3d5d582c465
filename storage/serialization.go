package storage

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/poiesic/omnisearch/core"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalListing serializes a Listing to bytes.
func MarshalListing(listing *core.Listing) []byte {
	buf := make([]byte, core.ListingMUS.Size(*listing))
	core.ListingMUS.Marshal(*listing, buf)
	return buf
}

// UnmarshalListing deserializes a Listing from bytes.
func UnmarshalListing(data []byte) (*core.Listing, error) {
	listing, _, err := core.ListingMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &listing, nil
}

// Matches reports whether any string value in the listing's JSON body
// contains term. Matching is exact and case-sensitive. Object keys are not
// searched. A body that is not valid JSON never matches a non-empty term.
func Matches(listing *core.Listing, term string) bool {
	if term == "" {
		return true
	}
	var body any
	if err := json.UnmarshalFromString(listing.Body, &body); err != nil {
		return false
	}
	return containsString(body, term)
}

func containsString(v any, term string) bool {
	switch val := v.(type) {
	case string:
		return strings.Contains(val, term)
	case []any:
		for _, elem := range val {
			if containsString(elem, term) {
				return true
			}
		}
	case map[string]any:
		for _, elem := range val {
			if containsString(elem, term) {
				return true
			}
		}
	}
	return false
}
