package catalog

import (
	"github.com/gamedex/gamedex/internal/catalog/resource"
	"github.com/gamedex/gamedex/internal/platform/validate"
)

// ESRB rating symbols accepted on a title.
var esrbRatings = []string{"E", "E10+", "T", "M", "AO"}

// Videogame is a title in the catalog. It belongs to exactly one publisher
// and reaches platforms and categories through association tables.
type Videogame struct {
	ID          int    `db:"videogame_id" json:"videogame_id"`
	PublisherID int    `db:"publisher_id" json:"publisher_id"`
	Title       string `db:"title" json:"title"`
	ReleaseYear int    `db:"release_year" json:"release_year"`
	ESRBRating  string `db:"esrb_rating" json:"esrb_rating"`
	Description string `db:"game_description" json:"game_description"`
	Multiplayer bool   `db:"is_multiplayer" json:"is_multiplayer"`
}

var videogameDesc = resource.Descriptor{
	Name:          "Videogame",
	Table:         "videogames",
	Key:           "videogame_id",
	Columns:       []string{"videogame_id", "publisher_id", "title", "release_year", "esrb_rating", "game_description", "is_multiplayer"},
	Sortable:      []string{"videogame_id", "publisher_id", "title", "release_year", "esrb_rating"},
	NumericSearch: []string{"videogame_id", "publisher_id", "release_year"},
	TextSearch:    []string{"title", "esrb_rating", "game_description"},
}

var videogameBind = resource.Binding[Videogame]{
	Columns: []string{"publisher_id", "title", "release_year", "esrb_rating", "game_description", "is_multiplayer"},
	Values: func(g *Videogame) []any {
		return []any{g.PublisherID, g.Title, g.ReleaseYear, g.ESRBRating, g.Description, g.Multiplayer}
	},
	Key:    func(g *Videogame) int { return g.ID },
	SetKey: func(g *Videogame, id int) { g.ID = id },
}

var videogameCategories = resource.HasMany[Category]{
	Name:         "categories",
	Child:        categoryDesc,
	OwnerKey:     "videogame_id",
	JoinTable:    "videogame_categories",
	JoinChildKey: "category_id",
	ChildKey:     func(c *Category) int { return c.ID },
}

var videogamePlatforms = resource.HasMany[Platform]{
	Name:         "platforms",
	Child:        platformDesc,
	OwnerKey:     "videogame_id",
	JoinTable:    "videogame_platforms",
	JoinChildKey: "platform_id",
	ChildKey:     func(p *Platform) int { return p.ID },
}

func validateVideogame(g *Videogame) error {
	var v validate.Validator
	return v.
		Required("title", g.Title).
		MaxLen("title", g.Title, 256).
		Positive("publisher_id", g.PublisherID).
		Range("release_year", g.ReleaseYear, 1900, 2030).
		OneOf("esrb_rating", g.ESRBRating, esrbRatings...).
		Required("game_description", g.Description).
		Err()
}
