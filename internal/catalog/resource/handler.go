// Copyright (c) 2026 Gamedex. All rights reserved.

package resource

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/gamedex/gamedex/internal/platform/request"
	"github.com/gamedex/gamedex/internal/platform/respond"
	"github.com/gamedex/gamedex/pkg/pagination"
	"github.com/gamedex/gamedex/pkg/search"
)

// Handler serves the uniform REST surface of one catalog entity.
type Handler[T any] struct {
	svc *Service[T]
}

func NewHandler[T any](svc *Service[T]) *Handler[T] {
	return &Handler[T]{svc: svc}
}

// Register mounts the entity's routes on the given subrouter. Relation
// routes are added separately by the entity declarations.
func (h *Handler[T]) Register(router chi.Router) {
	router.Get("/", h.list)
	router.Post("/", h.create)
	router.Get("/{id}", h.get)
	router.Put("/{id}", h.update)
	router.Delete("/{id}", h.delete)
}

// list serves both listing and search. A usable q parameter switches the
// request to search mode and the pagination and sort parameters are ignored;
// a blank q behaves as if it were absent.
func (h *Handler[T]) list(writer http.ResponseWriter, request *http.Request) {
	if term, ok := search.ParseTerm(request.URL.Query().Get("q")); ok {
		items, err := h.svc.Search(request.Context(), term)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, items)
		return
	}

	page := pagination.FromRequest(request)
	result, err := h.svc.List(request.Context(), page, request.URL.Query().Get("sort"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	links := pagination.Links(pagination.BaseURL(request), page.Limit, page.Offset, result.Total)
	respond.List(writer, result.Items, result.Total, page, links, result.Sort)
}

func (h *Handler[T]) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	item, err := h.svc.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, item)
}

func (h *Handler[T]) create(writer http.ResponseWriter, request *http.Request) {
	var entity T
	if err := requestutil.DecodeJSON(request, &entity); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := h.svc.Create(request.Context(), &entity); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, h.status("created"), &entity)
}

func (h *Handler[T]) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	var entity T
	if err := requestutil.DecodeJSON(request, &entity); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := h.svc.Update(request.Context(), id, &entity); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Updated(writer, h.status("updated"), &entity)
}

func (h *Handler[T]) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := h.svc.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Deleted(writer, h.status("deleted"))
}

func (h *Handler[T]) status(verb string) string {
	return fmt.Sprintf("%s %s", h.svc.store.desc.Name, verb)
}

// RelatedHandler serves GET /{id}/<relation> for one declared relation.
func RelatedHandler[T, C any](svc *Service[T], rel HasMany[C]) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := requestutil.IntParam(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		children, err := Related(request.Context(), svc, rel, id)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, children)
	}
}
