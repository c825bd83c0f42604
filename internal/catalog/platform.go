package catalog

import (
	"github.com/gamedex/gamedex/internal/catalog/resource"
	"github.com/gamedex/gamedex/internal/platform/validate"
)

// Platform is a system videogames run on. Titles attach to platforms
// through an association table, so a title can ship on many systems.
type Platform struct {
	ID                  int    `db:"platform_id" json:"platform_id"`
	Name                string `db:"platform_name" json:"platform_name"`
	FormFactor          string `db:"form_factor" json:"form_factor"`
	Generation          int    `db:"generation" json:"generation"`
	ReleaseYear         int    `db:"release_year" json:"release_year"`
	BackwardsCompatible bool   `db:"is_backwards_compatible" json:"is_backwards_compatible"`

	// Populated on list responses, absent elsewhere.
	Videogames []*Videogame `db:"-" json:"videogames,omitzero"`
}

var platformDesc = resource.Descriptor{
	Name:          "Platform",
	Table:         "platforms",
	Key:           "platform_id",
	Columns:       []string{"platform_id", "platform_name", "form_factor", "generation", "release_year", "is_backwards_compatible"},
	Sortable:      []string{"platform_id", "platform_name", "form_factor", "generation", "release_year"},
	NumericSearch: []string{"platform_id", "generation", "release_year"},
	TextSearch:    []string{"platform_name", "form_factor"},
}

var platformBind = resource.Binding[Platform]{
	Columns: []string{"platform_name", "form_factor", "generation", "release_year", "is_backwards_compatible"},
	Values: func(p *Platform) []any {
		return []any{p.Name, p.FormFactor, p.Generation, p.ReleaseYear, p.BackwardsCompatible}
	},
	Key:    func(p *Platform) int { return p.ID },
	SetKey: func(p *Platform, id int) { p.ID = id },
}

var platformVideogames = resource.HasMany[Videogame]{
	Name:         "videogames",
	Child:        videogameDesc,
	OwnerKey:     "platform_id",
	JoinTable:    "videogame_platforms",
	JoinChildKey: "videogame_id",
	ChildKey:     func(g *Videogame) int { return g.ID },
}

func validatePlatform(p *Platform) error {
	var v validate.Validator
	return v.
		Required("platform_name", p.Name).
		MaxLen("platform_name", p.Name, 128).
		Required("form_factor", p.FormFactor).
		MaxLen("form_factor", p.FormFactor, 64).
		Custom("generation", p.Generation < 0, "Must not be negative").
		Range("release_year", p.ReleaseYear, 1900, 2030).
		Err()
}
