package source

import "github.com/poiesic/omnisearch/core"

// Features adapts the feature listing search. Features carry no price.
type Features struct{ base }

var _ Adapter = (*Features)(nil)

// NewFeatures creates the features adapter.
func NewFeatures() *Features {
	return &Features{base{kind: core.TypeFeature, endpoint: "/features/", shape: Nested}}
}

type featureRecord struct {
	ID          string `mapstructure:"id"`
	Slug        string `mapstructure:"slug"`
	Title       string `mapstructure:"title"`
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	Summary     string `mapstructure:"summary"`
	Tagline     string `mapstructure:"tagline"`
	Category    any    `mapstructure:"category"`
	Section     any    `mapstructure:"section"`
	Icon        string `mapstructure:"icon"`
	Image       string `mapstructure:"image"`
}

func (a *Features) Canonicalize(rec Record) core.Result {
	var raw featureRecord
	decode(rec, &raw)

	r := a.result(first(raw.ID, raw.Slug))
	r.Title = first(raw.Title, raw.Name)
	r.Description = first(raw.Description, raw.Summary, raw.Tagline)
	r.Category = first(text(raw.Category), text(raw.Section))
	r.Image = first(raw.Icon, raw.Image)
	return r
}
