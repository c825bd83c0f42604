// Copyright (c) 2026 Gamedex. All rights reserved.

package resource

import (
	"context"
	"fmt"

	"github.com/gamedex/gamedex/internal/platform/apperr"
	"github.com/gamedex/gamedex/pkg/pagination"
	"github.com/gamedex/gamedex/pkg/search"
	"github.com/gamedex/gamedex/pkg/sortkey"
)

// Service holds the behavior shared by every catalog entity: sort-key
// screening, validation before writes, pagination bookkeeping and
// list-time relation loading. The per-entity variation arrives through
// the store configuration, the validate hook and the loaders.
type Service[T any] struct {
	store    *Store[T]
	validate func(*T) error
	loaders  []Loader[T]
}

// Loader attaches related rows to a page of entities before it is
// enveloped. Build one with [Eager].
type Loader[T any] func(ctx context.Context, db DB, items []*T) error

func NewService[T any](store *Store[T], validate func(*T) error, loaders ...Loader[T]) *Service[T] {
	return &Service[T]{store: store, validate: validate, loaders: loaders}
}

// Eager turns a declared relation into a list-time loader: the relation is
// batch-loaded for the whole page and attached owner by owner. Owners with
// no children receive an empty, non-nil slice so the relation still
// serializes as an array.
func Eager[T, C any](rel HasMany[C], owner func(*T) int, attach func(*T, []*C)) Loader[T] {
	return func(ctx context.Context, db DB, items []*T) error {
		ids := make([]int, len(items))
		for i, item := range items {
			ids[i] = owner(item)
		}
		grouped, err := rel.ForAll(ctx, db, ids)
		if err != nil {
			return err
		}
		for _, item := range items {
			children := grouped[owner(item)]
			if children == nil {
				children = []*C{}
			}
			attach(item, children)
		}
		return nil
	}
}

// Page is one list window plus the totals the envelope needs.
type Page[T any] struct {
	Items []*T
	Total int
	Sort  sortkey.Keys
}

// List returns one page in the requested order. Every parsed sort column
// must belong to the entity's sortable set; an unknown column is a caller
// error, not a silent skip.
func (s *Service[T]) List(ctx context.Context, page pagination.Params, sortSpec string) (*Page[T], error) {
	keys := sortkey.Parse(sortSpec)
	sortable := s.store.desc.SortableSet()
	for _, key := range keys {
		if !sortable[key.Column] {
			return nil, apperr.BadRequest(fmt.Sprintf("Unknown sort column: %s", key.Column))
		}
	}

	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.store.List(ctx, keys, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*T{}
	}
	for _, load := range s.loaders {
		if err := load(ctx, s.store.db, items); err != nil {
			return nil, err
		}
	}
	return &Page[T]{Items: items, Total: total, Sort: keys}, nil
}

func (s *Service[T]) Get(ctx context.Context, id int) (*T, error) {
	return s.store.Get(ctx, id)
}

// Search returns every entity matching the term, with no pagination or sort
// layered on top.
func (s *Service[T]) Search(ctx context.Context, term search.Term) ([]*T, error) {
	items, err := s.store.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*T{}
	}
	return items, nil
}

func (s *Service[T]) Create(ctx context.Context, entity *T) error {
	if err := s.validate(entity); err != nil {
		return err
	}
	return s.store.Create(ctx, entity)
}

// Update replaces the entity stored under the path ID. The ID in the URL is
// authoritative; any key in the body is overwritten before validation.
func (s *Service[T]) Update(ctx context.Context, id int, entity *T) error {
	s.store.bind.SetKey(entity, id)
	if err := s.validate(entity); err != nil {
		return err
	}
	return s.store.Update(ctx, entity)
}

func (s *Service[T]) Delete(ctx context.Context, id int) error {
	return s.store.Delete(ctx, id)
}

// Related returns the children of one owner, failing with the owner's
// not-found error when the owner itself does not exist. A free function
// because Go methods cannot introduce the child type parameter.
func Related[T, C any](ctx context.Context, svc *Service[T], rel HasMany[C], ownerID int) ([]*C, error) {
	if _, err := svc.Get(ctx, ownerID); err != nil {
		return nil, err
	}
	return rel.For(ctx, svc.store.db, ownerID)
}
