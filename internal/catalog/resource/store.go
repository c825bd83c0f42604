// Copyright (c) 2026 Gamedex. All rights reserved.

package resource

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/gamedex/gamedex/internal/platform/apperr"
	"github.com/gamedex/gamedex/internal/platform/dberr"
	"github.com/gamedex/gamedex/pkg/search"
	"github.com/gamedex/gamedex/pkg/sortkey"
)

// Store is the generic repository over one catalog table.
type Store[T any] struct {
	db   DB
	desc Descriptor
	bind Binding[T]
}

// NewStore wires a store to its table. The descriptor and binding are assumed
// consistent (same column order between Descriptor.Columns and the struct's
// db tags); that is checked once at startup by the entity packages' tests.
func NewStore[T any](db DB, desc Descriptor, bind Binding[T]) *Store[T] {
	return &Store[T]{db: db, desc: desc, bind: bind}
}

// Descriptor exposes the store's configuration to the service layer.
func (s *Store[T]) Descriptor() Descriptor { return s.desc }

// Count returns the total number of rows, independent of any page window.
func (s *Store[T]) Count(ctx context.Context) (int, error) {
	var total int
	if err := s.db.QueryRow(ctx, buildCount(s.desc)).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, "count "+s.desc.Table)
	}
	return total, nil
}

// List returns one page of rows in the given order. Sort keys must already be
// validated against the sortable set.
func (s *Store[T]) List(ctx context.Context, keys sortkey.Keys, limit, offset int) ([]*T, error) {
	sql, args := buildList(s.desc, keys, limit, offset)
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list "+s.desc.Table)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, dberr.Wrap(err, "scan "+s.desc.Table)
	}
	return items, nil
}

// Get returns the row with the given key.
func (s *Store[T]) Get(ctx context.Context, id int) (*T, error) {
	rows, err := s.db.Query(ctx, buildGet(s.desc), id)
	if err != nil {
		return nil, dberr.Wrap(err, "get "+s.desc.Table)
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(s.desc.Name)
		}
		return nil, dberr.Wrap(err, "get "+s.desc.Table)
	}
	return item, nil
}

// Search returns every row matching the term, unpaginated.
func (s *Store[T]) Search(ctx context.Context, term search.Term) ([]*T, error) {
	sql, args := buildSearch(s.desc, term)
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "search "+s.desc.Table)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, dberr.Wrap(err, "scan "+s.desc.Table)
	}
	return items, nil
}

// Create inserts the entity. A positive key on the entity is honored as a
// client-assigned ID; otherwise the sequence assigns one and it is written
// back onto the entity.
func (s *Store[T]) Create(ctx context.Context, entity *T) error {
	if id := s.bind.Key(entity); id > 0 {
		args := append([]any{id}, s.bind.Values(entity)...)
		if _, err := s.db.Exec(ctx, buildInsert(s.desc, s.bind, true), args...); err != nil {
			return dberr.Wrap(err, "create "+s.desc.Table)
		}
		return nil
	}
	var id int
	err := s.db.QueryRow(ctx, buildInsert(s.desc, s.bind, false), s.bind.Values(entity)...).Scan(&id)
	if err != nil {
		return dberr.Wrap(err, "create "+s.desc.Table)
	}
	s.bind.SetKey(entity, id)
	return nil
}

// Update replaces every writable column of the row identified by the
// entity's key. A missing row is a not-found error.
func (s *Store[T]) Update(ctx context.Context, entity *T) error {
	args := append([]any{s.bind.Key(entity)}, s.bind.Values(entity)...)
	tag, err := s.db.Exec(ctx, buildUpdate(s.desc, s.bind), args...)
	if err != nil {
		return dberr.Wrap(err, "update "+s.desc.Table)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(s.desc.Name)
	}
	return nil
}

// Delete removes the row with the given key. Deleting a missing row is
// dberr.ErrNotFound; rows still referenced elsewhere surface as a conflict
// from the foreign-key constraint.
func (s *Store[T]) Delete(ctx context.Context, id int) error {
	tag, err := s.db.Exec(ctx, buildDelete(s.desc), id)
	if err != nil {
		return dberr.Wrap(err, "delete "+s.desc.Table)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(s.desc.Name)
	}
	return nil
}
