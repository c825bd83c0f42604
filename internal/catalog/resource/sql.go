// Copyright (c) 2026 Gamedex. All rights reserved.

package resource

import (
	"fmt"
	"strings"

	"github.com/gamedex/gamedex/pkg/search"
	"github.com/gamedex/gamedex/pkg/sortkey"
)

// buildCount returns the total-row count statement backing pagination links.
func buildCount(d Descriptor) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.Table)
}

// buildList returns the page statement. Sort keys must already be validated
// against d.Sortable; the primary key is appended as a final ascending
// tiebreak so pages stay stable across requests.
func buildList(d Descriptor, keys sortkey.Keys, limit, offset int) (string, []any) {
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s ORDER BY ", strings.Join(d.Columns, ", "), d.Table)
	for _, key := range keys {
		fmt.Fprintf(&b, "%s %s, ", key.Column, strings.ToUpper(key.Direction))
	}
	fmt.Fprintf(&b, "%s ASC LIMIT $1 OFFSET $2", d.Key)
	return b.String(), []any{limit, offset}
}

func buildGet(d Descriptor) string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		strings.Join(d.Columns, ", "), d.Table, d.Key)
}

// buildSearch returns the search statement for the given term. Numeric terms
// take an inclusive lower bound across the numeric field set; textual terms
// take an accent-folded substring match across the text field set. A match on
// any field qualifies the row.
func buildSearch(d Descriptor, term search.Term) (string, []any) {
	var (
		predicates []string
		arg        any
	)
	if term.Numeric {
		arg = term.Value
		for _, column := range d.NumericSearch {
			predicates = append(predicates, fmt.Sprintf("%s >= $1", column))
		}
	} else {
		arg = term.Pattern()
		for _, column := range d.TextSearch {
			predicates = append(predicates, fmt.Sprintf("unaccent(%s) ILIKE $1", column))
		}
	}
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s ASC",
		strings.Join(d.Columns, ", "), d.Table, strings.Join(predicates, " OR "), d.Key)
	return sql, []any{arg}
}

// buildInsert returns the insert statement. With withKey, the caller supplies
// the primary key as the first argument; otherwise the sequence assigns it
// and the statement returns the new key.
func buildInsert[T any](d Descriptor, bind Binding[T], withKey bool) string {
	columns := bind.Columns
	if withKey {
		columns = append([]string{d.Key}, columns...)
	}
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
	if !withKey {
		sql += fmt.Sprintf(" RETURNING %s", d.Key)
	}
	return sql
}

// buildUpdate returns the full-replace update statement; $1 is the key.
func buildUpdate[T any](d Descriptor, bind Binding[T]) string {
	assignments := make([]string, len(bind.Columns))
	for i, column := range bind.Columns {
		assignments[i] = fmt.Sprintf("%s = $%d", column, i+2)
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = $1",
		d.Table, strings.Join(assignments, ", "), d.Key)
}

func buildDelete(d Descriptor) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = $1", d.Table, d.Key)
}
