package core

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier for catalog listings.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// String renders the ID as fixed-width lowercase hex, suitable for URLs.
func (id ID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// ResultType identifies which content source produced a result.
type ResultType string

const (
	// TypeItem is a catalog item.
	TypeItem ResultType = "item"
	// TypeService is a service listing.
	TypeService ResultType = "service"
	// TypeAuction is an auction.
	TypeAuction ResultType = "auction"
	// TypeFeature is a feature listing.
	TypeFeature ResultType = "feature"
	// TypeVertical is a category vertical.
	TypeVertical ResultType = "vertical"
)

// ResultTypes lists every result type in merge order.
var ResultTypes = []ResultType{TypeItem, TypeService, TypeAuction, TypeFeature, TypeVertical}

// Slug returns the path segment used in navigation URLs and endpoints.
func (t ResultType) Slug() string {
	return string(t) + "s"
}

// ParseResultType accepts either the singular type name or its slug.
func ParseResultType(s string) (ResultType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range ResultTypes {
		if s == string(t) || s == t.Slug() {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidResultType, s)
}

// Result is the canonical shape every source's records are mapped into.
type Result struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Type        ResultType `json:"type"`
	URL         string     `json:"url"`
	Price       *float64   `json:"price,omitempty"`
	Image       string     `json:"image,omitempty"`
}

// ResultURL builds the navigation path for a result of the given type.
func ResultURL(t ResultType, id string) string {
	return "/" + t.Slug() + "/" + id
}

// Listing is a raw source record held by the development catalog.
// Body is the record's JSON exactly as the source would serve it.
type Listing struct {
	Kind ResultType
	Key  string
	Body string
}

// NormalizeQuery trims surrounding whitespace. An empty result means
// no search should be issued.
func NormalizeQuery(q string) string {
	return strings.TrimSpace(q)
}
