// Copyright (c) 2026 Gamedex. All rights reserved.

package resource

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/gamedex/gamedex/internal/platform/dberr"
)

// HasMany declares a to-many relation from an owning entity to child rows of
// type C. With a JoinTable it traverses an association table; without one it
// follows a foreign-key column on the child table directly.
//
// Like [Descriptor], a HasMany is configured once at startup and never
// mutated afterwards.
type HasMany[C any] struct {
	// Name is the relation segment in URLs and envelopes ("videogames").
	Name string

	// Child describes the related entity's table and columns.
	Child Descriptor

	// OwnerKey is the column referencing the owner: on the join table when
	// JoinTable is set, on the child table otherwise.
	OwnerKey string

	// JoinTable is the association table for many-to-many relations. Empty
	// means one-to-many via OwnerKey on the child table.
	JoinTable string

	// JoinChildKey is the join-table column referencing the child. Unused
	// when JoinTable is empty.
	JoinChildKey string

	// ChildKey extracts a child's primary key, used to regroup batch-loaded
	// children under their owners.
	ChildKey func(*C) int
}

// buildRelated returns the statement selecting every child of one owner.
func (r HasMany[C]) buildRelated() string {
	columns := qualify("c", r.Child.Columns)
	if r.JoinTable == "" {
		return fmt.Sprintf("SELECT %s FROM %s c WHERE c.%s = $1 ORDER BY c.%s ASC",
			columns, r.Child.Table, r.OwnerKey, r.Child.Key)
	}
	return fmt.Sprintf("SELECT %s FROM %s c JOIN %s j ON j.%s = c.%s WHERE j.%s = $1 ORDER BY c.%s ASC",
		columns, r.Child.Table, r.JoinTable, r.JoinChildKey, r.Child.Key, r.OwnerKey, r.Child.Key)
}

// For returns the children of a single owner. Owner existence is the
// caller's concern; an unknown owner simply yields an empty slice here.
func (r HasMany[C]) For(ctx context.Context, db DB, ownerID int) ([]*C, error) {
	rows, err := db.Query(ctx, r.buildRelated(), ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, "load "+r.Name)
	}
	children, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[C])
	if err != nil {
		return nil, dberr.Wrap(err, "scan "+r.Name)
	}
	if children == nil {
		children = []*C{}
	}
	return children, nil
}

// buildPairs returns the statement selecting (owner key, child key) pairs
// for a set of owners, ordered by child key so grouped children keep the
// same order For produces.
func (r HasMany[C]) buildPairs() string {
	if r.JoinTable == "" {
		return fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s = ANY($1) ORDER BY %s ASC",
			r.OwnerKey, r.Child.Key, r.Child.Table, r.OwnerKey, r.Child.Key)
	}
	return fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s = ANY($1) ORDER BY %s ASC",
		r.OwnerKey, r.JoinChildKey, r.JoinTable, r.OwnerKey, r.JoinChildKey)
}

// buildChildren returns the statement selecting child rows by primary key.
func (r HasMany[C]) buildChildren() string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s = ANY($1)",
		strings.Join(r.Child.Columns, ", "), r.Child.Table, r.Child.Key)
}

// ForAll returns the children of every listed owner in two queries: the
// key pairs first, then the distinct child rows. Owners without children
// are simply absent from the map.
func (r HasMany[C]) ForAll(ctx context.Context, db DB, ownerIDs []int) (map[int][]*C, error) {
	grouped := make(map[int][]*C)
	if len(ownerIDs) == 0 {
		return grouped, nil
	}

	rows, err := db.Query(ctx, r.buildPairs(), ownerIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "load "+r.Name+" keys")
	}
	defer rows.Close()
	type pair struct{ owner, child int }
	var pairs []pair
	childIDs := make([]int, 0)
	seen := make(map[int]bool)
	for rows.Next() {
		var p pair
		if err := rows.Scan(&p.owner, &p.child); err != nil {
			return nil, dberr.Wrap(err, "scan "+r.Name+" keys")
		}
		pairs = append(pairs, p)
		if !seen[p.child] {
			seen[p.child] = true
			childIDs = append(childIDs, p.child)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "scan "+r.Name+" keys")
	}
	if len(childIDs) == 0 {
		return grouped, nil
	}

	childRows, err := db.Query(ctx, r.buildChildren(), childIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "load "+r.Name)
	}
	children, err := pgx.CollectRows(childRows, pgx.RowToAddrOfStructByName[C])
	if err != nil {
		return nil, dberr.Wrap(err, "scan "+r.Name)
	}
	byKey := make(map[int]*C, len(children))
	for _, child := range children {
		byKey[r.ChildKey(child)] = child
	}
	for _, p := range pairs {
		if child, ok := byKey[p.child]; ok {
			grouped[p.owner] = append(grouped[p.owner], child)
		}
	}
	return grouped, nil
}

func qualify(alias string, columns []string) string {
	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = alias + "." + column
	}
	return strings.Join(qualified, ", ")
}
