package devserver

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/poiesic/omnisearch/core"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:embed catalog.yaml
var defaultFixtures []byte

// Fixtures maps a source slug (items, services, auctions, features,
// verticals) to the raw records that source serves.
type Fixtures map[string][]map[string]any

// LoadFixtures decodes a YAML fixtures document into listings, ordered by
// source and then by position in the document. A record's key is its "id",
// else its "slug", else an id derived from its JSON body.
func LoadFixtures(r io.Reader) ([]*core.Listing, error) {
	var fixtures Fixtures
	if err := yaml.NewDecoder(r).Decode(&fixtures); err != nil {
		if errors.Is(err, io.EOF) {
			return []*core.Listing{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidFixtures, err)
	}
	return fixtures.Listings()
}

// LoadFixturesFile reads fixtures from a YAML file.
func LoadFixturesFile(path string) ([]*core.Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadFixtures(f)
}

// DefaultListings returns the built-in sample catalog.
func DefaultListings() ([]*core.Listing, error) {
	var fixtures Fixtures
	if err := yaml.Unmarshal(defaultFixtures, &fixtures); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFixtures, err)
	}
	return fixtures.Listings()
}

// Listings converts the fixtures into catalog listings.
func (f Fixtures) Listings() ([]*core.Listing, error) {
	known := make(map[string]bool, len(core.ResultTypes))
	for _, kind := range core.ResultTypes {
		known[kind.Slug()] = true
	}
	for slug := range f {
		if !known[slug] {
			return nil, fmt.Errorf("%w: unknown source %q", ErrInvalidFixtures, slug)
		}
	}

	listings := []*core.Listing{}
	for _, kind := range core.ResultTypes {
		for i, record := range f[kind.Slug()] {
			body, err := json.MarshalToString(record)
			if err != nil {
				return nil, fmt.Errorf("%w: %s[%d]: %w", ErrInvalidFixtures, kind.Slug(), i, err)
			}
			listings = append(listings, &core.Listing{
				Kind: kind,
				Key:  recordKey(record, body),
				Body: body,
			})
		}
	}
	return listings, nil
}

func recordKey(record map[string]any, body string) string {
	for _, field := range []string{"id", "slug"} {
		if v, ok := record[field]; ok && v != nil {
			if key := fmt.Sprint(v); key != "" {
				return key
			}
		}
	}
	return core.IDFromContent(body).String()
}
