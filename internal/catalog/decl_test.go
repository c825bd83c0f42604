package catalog

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedex/gamedex/internal/catalog/resource"
)

func dbTags(t *testing.T, entity any) []string {
	t.Helper()
	typ := reflect.TypeOf(entity)
	tags := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("db")
		require.NotEmpty(t, tag)
		if tag == "-" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// The store scans by column name, so every descriptor must agree exactly
// with its struct's db tags, and every binding must produce one value per
// writable column.
func TestDeclarationsAreConsistent(t *testing.T) {
	t.Run("publisher", func(t *testing.T) {
		checkEntity(t, publisherDesc, publisherBind, Publisher{ID: 1})
	})
	t.Run("platform", func(t *testing.T) {
		checkEntity(t, platformDesc, platformBind, Platform{ID: 1})
	})
	t.Run("category", func(t *testing.T) {
		checkEntity(t, categoryDesc, categoryBind, Category{ID: 1})
	})
	t.Run("videogame", func(t *testing.T) {
		checkEntity(t, videogameDesc, videogameBind, Videogame{ID: 1})
	})
}

func checkEntity[T any](t *testing.T, desc resource.Descriptor, bind resource.Binding[T], entity T) {
	t.Helper()

	assert.Equal(t, dbTags(t, entity), desc.Columns)
	assert.Equal(t, desc.Columns[1:], bind.Columns, "writable columns follow the key")
	assert.Len(t, bind.Values(&entity), len(bind.Columns))
	assert.Equal(t, 1, bind.Key(&entity))

	bind.SetKey(&entity, 42)
	assert.Equal(t, 42, bind.Key(&entity))

	for _, set := range [][]string{desc.Sortable, desc.NumericSearch, desc.TextSearch} {
		for _, column := range set {
			assert.Contains(t, desc.Columns, column)
		}
	}
}
