// Copyright (c) 2026 Gamedex. All rights reserved.

package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedex/gamedex/pkg/search"
)

func TestParseTerm_Dispatch(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		ok          bool
		numeric     bool
		value       int
		folded      string
	}{
		{"blank", "   ", false, false, 0, ""},
		{"numeric_year", "2000", true, true, 2000, "2000"},
		{"negative_number", "-5", true, true, -5, "-5"},
		{"text", "switch", true, false, 0, "switch"},
		{"mixed_is_text", "E10+", true, false, 0, "e10+"},
		{"trimmed", "  Handheld ", true, false, 0, "handheld"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, ok := search.ParseTerm(tt.raw)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}

			assert.Equal(t, tt.numeric, term.Numeric)
			assert.Equal(t, tt.value, term.Value)
			assert.Equal(t, tt.folded, term.Folded)
		})
	}
}

func TestFold_RemovesDiacritics(t *testing.T) {
	assert.Equal(t, "pokemon", search.Fold("Pokémon"))
	assert.Equal(t, "uber", search.Fold("Über"))
	assert.Equal(t, "okami", search.Fold("Ōkami"))
}

func TestTerm_Pattern(t *testing.T) {
	term, ok := search.ParseTerm("Pokémon")
	require.True(t, ok)
	assert.Equal(t, "%pokemon%", term.Pattern())
}
