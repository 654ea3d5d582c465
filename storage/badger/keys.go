package badger

import "github.com/poiesic/omnisearch/core"

// Key prefix for catalog listings.
// Format: lst:<kind>:<key>
const listingPrefix = "lst"

// makeListingKey generates the primary key for a listing.
func makeListingKey(kind core.ResultType, key string) []byte {
	prefix := makeListingKindPrefix(kind)
	buf := make([]byte, len(prefix)+len(key))
	offset := copy(buf, prefix)
	copy(buf[offset:], key)
	return buf
}

// makeListingKindPrefix generates the prefix shared by every listing of a kind.
func makeListingKindPrefix(kind core.ResultType) []byte {
	return []byte(listingPrefix + ":" + string(kind) + ":")
}
