package source

import "github.com/poiesic/omnisearch/core"

// Items adapts the catalog item search.
type Items struct{ base }

var _ Adapter = (*Items)(nil)

// NewItems creates the items adapter.
func NewItems() *Items {
	return &Items{base{kind: core.TypeItem, endpoint: "/items/", shape: Nested}}
}

type itemRecord struct {
	ID          string `mapstructure:"id"`
	UUID        string `mapstructure:"uuid"`
	Title       string `mapstructure:"title"`
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Summary     string `mapstructure:"summary"`
	Category    any    `mapstructure:"category"`
	CategoryAlt any    `mapstructure:"category_name"`
	Price       any    `mapstructure:"price"`
	Image       string `mapstructure:"image"`
	ImageURL    string `mapstructure:"image_url"`
	Thumbnail   string `mapstructure:"thumbnail"`
}

// Canonicalize maps an item record.
func (a *Items) Canonicalize(rec Record) core.Result {
	var raw itemRecord
	decode(rec, &raw)

	r := a.result(first(raw.ID, raw.UUID))
	r.Title = first(raw.Title, raw.Name)
	r.Description = first(raw.Description, raw.Summary)
	r.Category = first(text(raw.Category), text(raw.CategoryAlt))
	r.Price = price(raw.Price)
	r.Image = first(raw.Image, raw.ImageURL, raw.Thumbnail)
	return r
}
