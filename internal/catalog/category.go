package catalog

import (
	"github.com/gamedex/gamedex/internal/catalog/resource"
	"github.com/gamedex/gamedex/internal/platform/validate"
)

// Category is a genre label attached to videogames through an association
// table.
type Category struct {
	ID          int    `db:"category_id" json:"category_id"`
	Name        string `db:"category_name" json:"category_name"`
	Description string `db:"description" json:"description"`

	// Populated on list responses, absent elsewhere.
	Videogames []*Videogame `db:"-" json:"videogames,omitzero"`
}

var categoryDesc = resource.Descriptor{
	Name:          "Category",
	Table:         "categories",
	Key:           "category_id",
	Columns:       []string{"category_id", "category_name", "description"},
	Sortable:      []string{"category_id", "category_name"},
	NumericSearch: []string{"category_id"},
	TextSearch:    []string{"category_name", "description"},
}

var categoryBind = resource.Binding[Category]{
	Columns: []string{"category_name", "description"},
	Values: func(c *Category) []any {
		return []any{c.Name, c.Description}
	},
	Key:    func(c *Category) int { return c.ID },
	SetKey: func(c *Category, id int) { c.ID = id },
}

var categoryVideogames = resource.HasMany[Videogame]{
	Name:         "videogames",
	Child:        videogameDesc,
	OwnerKey:     "category_id",
	JoinTable:    "videogame_categories",
	JoinChildKey: "videogame_id",
	ChildKey:     func(g *Videogame) int { return g.ID },
}

func validateCategory(c *Category) error {
	var v validate.Validator
	return v.
		Required("category_name", c.Name).
		MaxLen("category_name", c.Name, 64).
		Required("description", c.Description).
		MaxLen("description", c.Description, 512).
		Err()
}
