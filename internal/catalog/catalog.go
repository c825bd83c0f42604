/*
Package catalog declares the four catalog entities — publishers, platforms,
categories and videogames — and mounts their routes.

Each entity is one file: a struct with db/json tags, a resource.Descriptor,
a resource.Binding, its relations and its validation rules. Everything
behavioral lives in the generic resource package; this package is the
declarative layer where the entities differ.
*/
package catalog

import (
	"github.com/go-chi/chi/v5"

	"github.com/gamedex/gamedex/internal/catalog/resource"
)

// Catalog bundles the per-entity services over one shared database pool.
type Catalog struct {
	Publishers *resource.Service[Publisher]
	Platforms  *resource.Service[Platform]
	Categories *resource.Service[Category]
	Videogames *resource.Service[Videogame]
}

func New(db resource.DB) *Catalog {
	return &Catalog{
		Publishers: resource.NewService(resource.NewStore(db, publisherDesc, publisherBind), validatePublisher,
			resource.Eager(publisherVideogames, publisherBind.Key, func(p *Publisher, v []*Videogame) { p.Videogames = v })),
		Platforms: resource.NewService(resource.NewStore(db, platformDesc, platformBind), validatePlatform,
			resource.Eager(platformVideogames, platformBind.Key, func(p *Platform, v []*Videogame) { p.Videogames = v })),
		Categories: resource.NewService(resource.NewStore(db, categoryDesc, categoryBind), validateCategory,
			resource.Eager(categoryVideogames, categoryBind.Key, func(c *Category, v []*Videogame) { c.Videogames = v })),
		Videogames: resource.NewService(resource.NewStore(db, videogameDesc, videogameBind), validateVideogame),
	}
}

// Register mounts the catalog route tree on the given router, normally the
// gated group under the API prefix.
func (c *Catalog) Register(router chi.Router) {
	router.Route("/publishers", func(r chi.Router) {
		resource.NewHandler(c.Publishers).Register(r)
		r.Get("/{id}/videogames", resource.RelatedHandler(c.Publishers, publisherVideogames))
	})
	router.Route("/platforms", func(r chi.Router) {
		resource.NewHandler(c.Platforms).Register(r)
		r.Get("/{id}/videogames", resource.RelatedHandler(c.Platforms, platformVideogames))
	})
	router.Route("/categories", func(r chi.Router) {
		resource.NewHandler(c.Categories).Register(r)
		r.Get("/{id}/videogames", resource.RelatedHandler(c.Categories, categoryVideogames))
	})
	router.Route("/videogames", func(r chi.Router) {
		resource.NewHandler(c.Videogames).Register(r)
		r.Get("/{id}/categories", resource.RelatedHandler(c.Videogames, videogameCategories))
		r.Get("/{id}/platforms", resource.RelatedHandler(c.Videogames, videogamePlatforms))
	})
}
