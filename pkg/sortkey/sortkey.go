// Copyright (c) 2026 Gamedex. All rights reserved.

// Package sortkey parses the compact sort specification accepted by list
// endpoints.
//
// # Format
//
// Sort keys are optionally enclosed in brackets and separated with commas.
// A direction can be appended to each key, separated by a colon, and
// defaults to ascending: "[generation:desc,release_year]" sorts by
// generation descending, then release_year ascending.
//
// The parser preserves key order, since multi-column sorting is
// order-sensitive, and performs no validation against any column set;
// that is the resource layer's responsibility.
package sortkey

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Directions understood by the parser.
const (
	Asc  = "asc"
	Desc = "desc"
)

// Key is a single (column, direction) pair.
type Key struct {
	Column    string
	Direction string
}

// Keys is an ordered list of sort keys. The first key is the primary sort.
type Keys []Key

// Parse converts a sort specification string into ordered [Keys].
//
// Brackets and internal whitespace are stripped. A token without a colon
// is treated as a column with ascending direction; a direction other than
// "asc" or "desc" falls back to ascending. Empty input yields nil.
func Parse(spec string) Keys {
	cleaned := strings.NewReplacer("[", "", "]", "", " ", "", "\t", "").Replace(spec)
	if cleaned == "" {
		return nil
	}

	var keys Keys
	for _, token := range strings.Split(cleaned, ",") {
		if token == "" {
			continue
		}

		column := token
		direction := Asc

		if idx := strings.Index(token, ":"); idx > 0 {
			column = token[:idx]
			if d := strings.ToLower(token[idx+1:]); d == Desc {
				direction = Desc
			}
		}

		keys = append(keys, Key{Column: column, Direction: direction})
	}

	return keys
}

// Columns returns the column names in declaration order.
func (k Keys) Columns() []string {
	cols := make([]string, len(k))
	for i, key := range k {
		cols[i] = key.Column
	}
	return cols
}

// MarshalJSON renders the keys as a JSON object whose member order follows
// the key order, e.g. {"generation":"desc","release_year":"asc"}.
//
// An empty key set marshals as {} rather than null so list envelopes always
// carry an object-shaped sort member.
func (k Keys) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, key := range k {
		if i > 0 {
			buf.WriteByte(',')
		}

		col, err := json.Marshal(key.Column)
		if err != nil {
			return nil, err
		}
		dir, err := json.Marshal(key.Direction)
		if err != nil {
			return nil, err
		}

		buf.Write(col)
		buf.WriteByte(':')
		buf.Write(dir)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
