// Copyright (c) 2026 Gamedex. All rights reserved.

// Package search classifies free-text search terms for catalog lookups.
//
// # Dispatch policy
//
// A term that parses as an integer searches the entity's numeric fields with
// an inclusive lower bound (field >= term), matching any of them. Any other
// term searches the entity's text fields for a case-insensitive substring.
// The >= semantics for numeric terms are intentional: "2000" finds every
// platform from the year 2000 onward, not just exact matches.
package search

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Term is a classified search term ready for predicate construction.
type Term struct {
	// Raw is the term exactly as supplied by the caller.
	Raw string

	// Numeric reports whether the term dispatches to numeric-range matching.
	Numeric bool

	// Value is the parsed integer when Numeric is true.
	Value int

	// Folded is the normalized form used for substring matching:
	// lowercased with diacritics removed, so "Pokémon" matches "pokemon".
	Folded string
}

// foldTransformer strips combining marks after canonical decomposition.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ParseTerm classifies a raw search term.
//
// It returns ok=false for blank input, which callers treat as "no search".
func ParseTerm(raw string) (Term, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Term{}, false
	}

	term := Term{Raw: trimmed, Folded: Fold(trimmed)}

	if value, err := strconv.Atoi(trimmed); err == nil {
		term.Numeric = true
		term.Value = value
	}

	return term, true
}

// Pattern returns the SQL LIKE pattern for substring matching.
func (t Term) Pattern() string {
	return "%" + t.Folded + "%"
}

// Fold lowercases s and removes diacritical marks.
//
// Transformation failures fall back to plain lowercasing; a partially
// folded pattern still matches more than an unfolded one.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
