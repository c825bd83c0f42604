package catalog

import (
	"github.com/gamedex/gamedex/internal/catalog/resource"
	"github.com/gamedex/gamedex/internal/platform/validate"
)

// Publisher is a company that releases videogames. A publisher owns its
// titles directly; deleting one with titles still attached is refused.
type Publisher struct {
	ID           int    `db:"publisher_id" json:"publisher_id"`
	Name         string `db:"publisher_name" json:"publisher_name"`
	Country      string `db:"country" json:"country"`
	FoundedYear  int    `db:"founded_year" json:"founded_year"`
	WebsiteURL   string `db:"website_url" json:"website_url"`
	ActiveStatus bool   `db:"active_status" json:"active_status"`

	// Populated on list responses, absent elsewhere.
	Videogames []*Videogame `db:"-" json:"videogames,omitzero"`
}

var publisherDesc = resource.Descriptor{
	Name:          "Publisher",
	Table:         "publishers",
	Key:           "publisher_id",
	Columns:       []string{"publisher_id", "publisher_name", "country", "founded_year", "website_url", "active_status"},
	Sortable:      []string{"publisher_id", "publisher_name", "country", "founded_year", "active_status"},
	NumericSearch: []string{"publisher_id", "founded_year"},
	TextSearch:    []string{"publisher_name", "country", "website_url"},
}

var publisherBind = resource.Binding[Publisher]{
	Columns: []string{"publisher_name", "country", "founded_year", "website_url", "active_status"},
	Values: func(p *Publisher) []any {
		return []any{p.Name, p.Country, p.FoundedYear, p.WebsiteURL, p.ActiveStatus}
	},
	Key:    func(p *Publisher) int { return p.ID },
	SetKey: func(p *Publisher, id int) { p.ID = id },
}

var publisherVideogames = resource.HasMany[Videogame]{
	Name:     "videogames",
	Child:    videogameDesc,
	OwnerKey: "publisher_id",
	ChildKey: func(g *Videogame) int { return g.ID },
}

func validatePublisher(p *Publisher) error {
	var v validate.Validator
	return v.
		Required("publisher_name", p.Name).
		MaxLen("publisher_name", p.Name, 128).
		Required("country", p.Country).
		MaxLen("country", p.Country, 64).
		Range("founded_year", p.FoundedYear, 1900, 2030).
		URLOrEmpty("website_url", p.WebsiteURL).
		Err()
}
