package source

import "github.com/poiesic/omnisearch/core"

// Verticals adapts the category vertical search. Unlike the other sources,
// its response body is the list itself.
type Verticals struct{ base }

var _ Adapter = (*Verticals)(nil)

// NewVerticals creates the verticals adapter.
func NewVerticals() *Verticals {
	return &Verticals{base{kind: core.TypeVertical, endpoint: "/verticals/", shape: Bare}}
}

type verticalRecord struct {
	ID          string `mapstructure:"id"`
	Slug        string `mapstructure:"slug"`
	Name        string `mapstructure:"name"`
	Title       string `mapstructure:"title"`
	Label       string `mapstructure:"label"`
	Description string `mapstructure:"description"`
	Summary     string `mapstructure:"summary"`
	Category    any    `mapstructure:"category"`
	Parent      any    `mapstructure:"parent"`
	Image       string `mapstructure:"image"`
	Banner      string `mapstructure:"banner"`
}

func (a *Verticals) Canonicalize(rec Record) core.Result {
	var raw verticalRecord
	decode(rec, &raw)

	r := a.result(first(raw.ID, raw.Slug))
	r.Title = first(raw.Name, raw.Title, raw.Label)
	r.Description = first(raw.Description, raw.Summary)
	r.Category = first(text(raw.Category), text(raw.Parent))
	r.Image = first(raw.Image, raw.Banner)
	return r
}
