package source

import "github.com/poiesic/omnisearch/core"

// Services adapts the service listing search.
type Services struct{ base }

var _ Adapter = (*Services)(nil)

// NewServices creates the services adapter.
func NewServices() *Services {
	return &Services{base{kind: core.TypeService, endpoint: "/services/", shape: Nested}}
}

type serviceRecord struct {
	ID          string `mapstructure:"id"`
	UUID        string `mapstructure:"uuid"`
	Title       string `mapstructure:"title"`
	Name        string `mapstructure:"name"`
	ServiceName string `mapstructure:"service_name"`
	Description string `mapstructure:"description"`
	Details     string `mapstructure:"details"`
	Category    any    `mapstructure:"category"`
	ServiceType any    `mapstructure:"service_type"`
	Price       any    `mapstructure:"price"`
	HourlyRate  any    `mapstructure:"hourly_rate"`
	Image       string `mapstructure:"image"`
	CoverImage  string `mapstructure:"cover_image"`
}

// Canonicalize maps a service record. A fixed price wins over an hourly rate.
func (a *Services) Canonicalize(rec Record) core.Result {
	var raw serviceRecord
	decode(rec, &raw)

	r := a.result(first(raw.ID, raw.UUID))
	r.Title = first(raw.Title, raw.Name, raw.ServiceName)
	r.Description = first(raw.Description, raw.Details)
	r.Category = first(text(raw.Category), text(raw.ServiceType))
	r.Price = price(raw.Price, raw.HourlyRate)
	r.Image = first(raw.Image, raw.CoverImage)
	return r
}
