package catalog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedex/gamedex/internal/catalog"
)

// fakeDB answers pgx queries from canned result sets keyed on the statement
// text, so the whole handler → service → store → scan pipeline runs without
// Postgres.
type fakeDB struct {
	total   int
	onQuery func(sql string, args []any) (cols []string, rows [][]any)
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	cols, rows := f.onQuery(sql, args)
	return &fakeRows{cols: cols, rows: rows}, nil
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return &fakeRow{vals: []any{f.total}}
}

func (f *fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("DELETE 1"), nil
}

type fakeRow struct{ vals []any }

func (r *fakeRow) Scan(dest ...any) error { return scanInto(r.vals, dest) }

type fakeRows struct {
	cols []string
	rows [][]any
	idx  int
}

func (r *fakeRows) Close()                        {}
func (r *fakeRows) Err() error                    { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *fakeRows) Next() bool                    { r.idx++; return r.idx <= len(r.rows) }
func (r *fakeRows) Scan(dest ...any) error        { return scanInto(r.rows[r.idx-1], dest) }
func (r *fakeRows) Values() ([]any, error)        { return r.rows[r.idx-1], nil }
func (r *fakeRows) RawValues() [][]byte           { return nil }
func (r *fakeRows) Conn() *pgx.Conn               { return nil }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	fds := make([]pgconn.FieldDescription, len(r.cols))
	for i, col := range r.cols {
		fds[i].Name = col
	}
	return fds
}

func scanInto(vals []any, dest []any) error {
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(vals[i]))
	}
	return nil
}

var platformCols = []string{
	"platform_id", "platform_name", "form_factor", "generation", "release_year", "is_backwards_compatible",
}

var publisherCols = []string{
	"publisher_id", "publisher_name", "country", "founded_year", "website_url", "active_status",
}

var videogameCols = []string{
	"videogame_id", "publisher_id", "title", "release_year", "esrb_rating", "game_description", "is_multiplayer",
}

func platformRow(id int, name string, generation int) []any {
	return []any{id, name, "console", generation, 2000 + generation, false}
}

func serve(t *testing.T, db *fakeDB, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	router := chi.NewRouter()
	catalog.New(db).Register(router)
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestPlatformList(t *testing.T) {
	db := &fakeDB{
		total: 12,
		onQuery: func(sql string, args []any) ([]string, [][]any) {
			switch {
			case strings.Contains(sql, "FROM videogame_platforms"):
				assert.Equal(t, []any{[]int{9, 8, 7, 6, 5}}, args)
				return []string{"platform_id", "videogame_id"}, [][]any{{9, 1}, {8, 1}, {8, 2}}
			case strings.Contains(sql, "FROM videogames"):
				assert.Equal(t, []any{[]int{1, 2}}, args)
				return videogameCols, [][]any{
					{1, 3, "Tears of the Kingdom", 2023, "E10+", "Open-world adventure", false},
					{2, 3, "Mario Kart World", 2025, "E", "Kart racing", true},
				}
			default:
				assert.Contains(t, sql, "ORDER BY generation DESC, platform_id ASC")
				assert.Equal(t, []any{5, 0}, args)
				return platformCols, [][]any{
					platformRow(9, "Switch 2", 9),
					platformRow(8, "PS5", 9),
					platformRow(7, "Xbox Series X", 9),
					platformRow(6, "Switch", 8),
					platformRow(5, "PS4", 8),
				}
			}
		},
	}

	recorder := serve(t, db, http.MethodGet, "/platforms?limit=5&sort=[generation:desc]", "")

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		TotalCount int `json:"totalCount"`
		Limit      int `json:"limit"`
		Offset     int `json:"offset"`
		Links      []struct {
			Rel  string `json:"rel"`
			Href string `json:"href"`
		} `json:"links"`
		Sort map[string]string            `json:"sort"`
		Data []map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	assert.Equal(t, 12, envelope.TotalCount)
	assert.Equal(t, 5, envelope.Limit)
	assert.Equal(t, 0, envelope.Offset)
	assert.Equal(t, map[string]string{"generation": "desc"}, envelope.Sort)
	assert.Len(t, envelope.Data, 5)

	// Every listed platform embeds its videogames collection, empty or not.
	var games []struct {
		Title string `json:"title"`
	}
	require.Contains(t, envelope.Data[0], "videogames")
	require.NoError(t, json.Unmarshal(envelope.Data[0]["videogames"], &games))
	require.Len(t, games, 1)
	assert.Equal(t, "Tears of the Kingdom", games[0].Title)
	require.Contains(t, envelope.Data[1], "videogames")
	require.NoError(t, json.Unmarshal(envelope.Data[1]["videogames"], &games))
	assert.Len(t, games, 2)
	require.Contains(t, envelope.Data[2], "videogames")
	assert.JSONEq(t, `[]`, string(envelope.Data[2]["videogames"]))

	rels := make(map[string]string)
	for _, link := range envelope.Links {
		rels[link.Rel] = link.Href
	}
	assert.NotContains(t, rels, "prev")
	assert.Contains(t, rels["next"], "offset=5")
	assert.Contains(t, rels["last"], "offset=10")
	assert.Contains(t, rels["first"], "offset=0")
}

func TestPlatformListUnknownSortColumn(t *testing.T) {
	db := &fakeDB{onQuery: func(string, []any) ([]string, [][]any) {
		t.Fatal("no statement should run for a rejected sort")
		return nil, nil
	}}

	recorder := serve(t, db, http.MethodGet, "/platforms?sort=[form_factory:desc]", "")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "form_factory")
}

func TestPlatformSearchBypassesPagination(t *testing.T) {
	db := &fakeDB{onQuery: func(sql string, args []any) ([]string, [][]any) {
		assert.Contains(t, sql, "platform_id >= $1 OR generation >= $1 OR release_year >= $1")
		assert.Equal(t, []any{8}, args)
		return platformCols, [][]any{platformRow(6, "Switch", 8)}
	}}

	recorder := serve(t, db, http.MethodGet, "/platforms?q=8&limit=2&offset=4&sort=[bogus]", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	var envelope struct {
		Data []map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 1)
	assert.NotContains(t, recorder.Body.String(), "totalCount")
}

func TestCategoryCreateValidation(t *testing.T) {
	db := &fakeDB{onQuery: func(string, []any) ([]string, [][]any) {
		t.Fatal("no statement should run for an invalid payload")
		return nil, nil
	}}

	recorder := serve(t, db, http.MethodPost, "/categories",
		`{"category_name": "", "description": "Turn-based and real-time strategy"}`)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	var envelope struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Errors, 1)
	assert.Contains(t, envelope.Errors, "category_name")
}

func TestPublisherRelatedVideogames(t *testing.T) {
	db := &fakeDB{onQuery: func(sql string, args []any) ([]string, [][]any) {
		if strings.Contains(sql, "FROM publishers") {
			return publisherCols, [][]any{{3, "Nintendo", "Japan", 1889, "https://nintendo.com", true}}
		}
		assert.Contains(t, sql, "WHERE c.publisher_id = $1")
		assert.Equal(t, []any{3}, args)
		return videogameCols, [][]any{
			{1, 3, "Tears of the Kingdom", 2023, "E10+", "Open-world adventure", false},
			{2, 3, "Mario Kart World", 2025, "E", "Kart racing", true},
		}
	}}

	recorder := serve(t, db, http.MethodGet, "/publishers/3/videogames", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	var envelope struct {
		Data []struct {
			Title string `json:"title"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
	assert.Equal(t, "Tears of the Kingdom", envelope.Data[0].Title)
}

func TestPlatformCreateAcceptsEarlyHardware(t *testing.T) {
	db := &fakeDB{total: 7, onQuery: func(string, []any) ([]string, [][]any) {
		t.Fatal("create goes through QueryRow, not Query")
		return nil, nil
	}}

	recorder := serve(t, db, http.MethodPost, "/platforms",
		`{"platform_name": "Odyssey", "form_factor": "console", "generation": 0, "release_year": 1920, "is_backwards_compatible": false}`)

	require.Equal(t, http.StatusCreated, recorder.Code)
	var envelope struct {
		Data struct {
			ID int `json:"platform_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, 7, envelope.Data.ID)
}

func TestPublisherSearchMatchesWebsite(t *testing.T) {
	db := &fakeDB{onQuery: func(sql string, args []any) ([]string, [][]any) {
		assert.Contains(t, sql, "unaccent(website_url) ILIKE $1")
		assert.Equal(t, []any{"%nintendo.com%"}, args)
		return publisherCols, [][]any{{3, "Nintendo", "Japan", 1889, "https://nintendo.com", true}}
	}}

	recorder := serve(t, db, http.MethodGet, "/publishers?q=nintendo.com", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Nintendo")
}

func TestVideogameCreateAccumulatesAllFieldErrors(t *testing.T) {
	db := &fakeDB{onQuery: func(string, []any) ([]string, [][]any) {
		t.Fatal("no statement should run for an invalid payload")
		return nil, nil
	}}

	recorder := serve(t, db, http.MethodPost, "/videogames",
		`{"title": "", "publisher_id": 0, "release_year": 1492, "esrb_rating": "X", "game_description": "ok"}`)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	var envelope struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Errors, 4)
	for _, field := range []string{"title", "publisher_id", "release_year", "esrb_rating"} {
		assert.Contains(t, envelope.Errors, field)
	}
}
