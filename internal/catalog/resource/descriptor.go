// Copyright (c) 2026 Gamedex. All rights reserved.

/*
Package resource implements the one generic catalog repository.

Every catalog entity (publisher, platform, category, videogame) exposes the
same operations — paginated list, lookup by ID, relationship traversal,
free-text/numeric search, and validated create/update/delete. The entity
packages differ only in configuration: a [Descriptor] naming the table and
its field sets, a [Binding] mapping the entity struct to column values, and
[HasMany] relation declarations. The machinery itself lives here exactly
once.

SQL assembly is pure and separated from execution so it can be tested
without a database.
*/
package resource

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the minimal query surface the store needs. *pgxpool.Pool satisfies it.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Descriptor is the per-entity configuration consumed by [Store].
//
// All fields are fixed at startup and never mutated afterwards; a Descriptor
// may be shared freely across goroutines.
type Descriptor struct {
	// Name is the client-facing resource name used in error messages
	// ("Platform", "Videogame").
	Name string

	// Table is the relation holding the entity rows.
	Table string

	// Key is the integer primary-key column.
	Key string

	// Columns is the full select list, in struct scan order.
	Columns []string

	// Sortable is the set of columns list callers may order by. Sort keys
	// outside this set are a caller error, rejected before any SQL is built.
	Sortable []string

	// NumericSearch is the column set matched with an inclusive >= bound
	// when the search term is numeric.
	NumericSearch []string

	// TextSearch is the column set matched by case-insensitive,
	// accent-folded substring when the search term is textual.
	TextSearch []string
}

// SortableSet returns the sortable columns as a membership set.
func (d Descriptor) SortableSet() map[string]bool {
	set := make(map[string]bool, len(d.Sortable))
	for _, column := range d.Sortable {
		set[column] = true
	}
	return set
}

// Binding maps an entity struct to its writable column values.
//
// Columns excludes the primary key: key handling (client-assigned vs
// sequence-assigned) is the store's concern.
type Binding[T any] struct {
	// Columns are the writable columns, aligned with the output of Values.
	Columns []string

	// Values extracts the column values for insert/update.
	Values func(*T) []any

	// Key reads the primary-key value; zero means "not assigned".
	Key func(*T) int

	// SetKey writes a sequence-assigned primary key back onto the entity.
	SetKey func(*T, int)
}
