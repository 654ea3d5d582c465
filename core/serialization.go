package core

import (
	"github.com/mus-format/mus-go/ord"
)

// ListingMUS is the MUS serializer for Listing.
// Fields are written in declaration order as length-prefixed strings.
var ListingMUS = listingMUS{}

type listingMUS struct{}

func (s listingMUS) Marshal(v Listing, bs []byte) (n int) {
	n = ord.String.Marshal(string(v.Kind), bs)
	n += ord.String.Marshal(v.Key, bs[n:])
	return n + ord.String.Marshal(v.Body, bs[n:])
}

func (s listingMUS) Unmarshal(bs []byte) (v Listing, n int, err error) {
	kind, n, err := ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Kind = ResultType(kind)
	var n1 int
	v.Key, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Body, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s listingMUS) Size(v Listing) (size int) {
	size = ord.String.Size(string(v.Kind))
	size += ord.String.Size(v.Key)
	return size + ord.String.Size(v.Body)
}
