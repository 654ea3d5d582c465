package source

import "github.com/poiesic/omnisearch/core"

// Auctions adapts the auction search.
type Auctions struct{ base }

var _ Adapter = (*Auctions)(nil)

// NewAuctions creates the auctions adapter.
func NewAuctions() *Auctions {
	return &Auctions{base{kind: core.TypeAuction, endpoint: "/auctions/", shape: Nested}}
}

type auctionRecord struct {
	ID            string `mapstructure:"id"`
	UUID          string `mapstructure:"uuid"`
	Title         string `mapstructure:"title"`
	ItemName      string `mapstructure:"item_name"`
	Name          string `mapstructure:"name"`
	Description   string `mapstructure:"description"`
	Summary       string `mapstructure:"summary"`
	Category      any    `mapstructure:"category"`
	CategoryAlt   any    `mapstructure:"category_name"`
	CurrentBid    any    `mapstructure:"current_bid"`
	StartingPrice any    `mapstructure:"starting_price"`
	Price         any    `mapstructure:"price"`
	Image         string `mapstructure:"image"`
	ImageURL      string `mapstructure:"image_url"`
}

// Canonicalize maps an auction record. The price is the current bid when
// there is one, otherwise the starting price.
func (a *Auctions) Canonicalize(rec Record) core.Result {
	var raw auctionRecord
	decode(rec, &raw)

	r := a.result(first(raw.ID, raw.UUID))
	r.Title = first(raw.Title, raw.ItemName, raw.Name)
	r.Description = first(raw.Description, raw.Summary)
	r.Category = first(text(raw.Category), text(raw.CategoryAlt))
	r.Price = price(raw.CurrentBid, raw.StartingPrice, raw.Price)
	r.Image = first(raw.Image, raw.ImageURL)
	return r
}
