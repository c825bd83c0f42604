package users

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedex/gamedex/internal/platform/apperr"
	"github.com/gamedex/gamedex/internal/platform/sec"
)

var userCols = []string{"user_id", "name", "email", "username", "password", "role"}

// fakeDB serves canned user rows for Query and a fixed sequence key for
// QueryRow, capturing statements and arguments for assertions.
type fakeDB struct {
	rows [][]any

	lastSQL  string
	lastArgs []any
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.lastSQL, f.lastArgs = sql, args
	return &fakeRows{cols: userCols, rows: f.rows}, nil
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.lastSQL, f.lastArgs = sql, args
	return fakeKeyRow{}
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL, f.lastArgs = sql, args
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

type fakeKeyRow struct{}

func (fakeKeyRow) Scan(dest ...any) error {
	*(dest[0].(*int)) = 7
	return nil
}

type fakeRows struct {
	cols []string
	rows [][]any
	idx  int
}

func (r *fakeRows) Close()                        {}
func (r *fakeRows) Err() error                    { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *fakeRows) Next() bool                    { r.idx++; return r.idx <= len(r.rows) }
func (r *fakeRows) Values() ([]any, error)        { return r.rows[r.idx-1], nil }
func (r *fakeRows) RawValues() [][]byte           { return nil }
func (r *fakeRows) Conn() *pgx.Conn               { return nil }

func (r *fakeRows) Scan(dest ...any) error {
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.rows[r.idx-1][i]))
	}
	return nil
}

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	fds := make([]pgconn.FieldDescription, len(r.cols))
	for i, col := range r.cols {
		fds[i].Name = col
	}
	return fds
}

func storedUser(t *testing.T, password string) []any {
	t.Helper()
	hash, err := sec.HashPassword(password)
	require.NoError(t, err)
	return []any{4, "Ada Lovelace", "ada@gamedex.dev", "ada", hash, sec.RoleAdmin}
}

func TestValidatePayload(t *testing.T) {
	payload := &Payload{
		User: User{Name: "Ada", Email: "not-an-email", Username: "ada", Role: 2},
	}

	err := validatePayload(payload)

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Len(t, appErr.Fields, 2)
	assert.Contains(t, appErr.Fields, "email")
	assert.Contains(t, appErr.Fields, "password")
}

func TestCheckCredentials(t *testing.T) {
	db := &fakeDB{rows: [][]any{storedUser(t, "correct horse")}}
	svc := NewService(NewStore(db), nil, nil)

	t.Run("valid credentials yield the principal", func(t *testing.T) {
		principal, err := svc.CheckCredentials(context.Background(), "ada", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, &sec.Principal{UserID: 4, Username: "ada", Role: sec.RoleAdmin}, principal)
		assert.Equal(t, []any{"ada"}, db.lastArgs)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		_, err := svc.CheckCredentials(context.Background(), "ada", "incorrect horse")
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, apperr.As(err).HTTPStatus)
	})

	t.Run("unknown username is unauthorized", func(t *testing.T) {
		empty := &fakeDB{}
		svc := NewService(NewStore(empty), nil, nil)
		_, err := svc.CheckCredentials(context.Background(), "ghost", "whatever")
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, apperr.As(err).HTTPStatus)
	})
}

func TestCreateHashesPassword(t *testing.T) {
	db := &fakeDB{}
	svc := NewService(NewStore(db), nil, nil)

	user, err := svc.Create(context.Background(), &Payload{
		User:     User{Name: "Ada Lovelace", Email: "ada@gamedex.dev", Username: "ada", Role: 2},
		Password: "correct horse",
	})

	require.NoError(t, err)
	assert.Equal(t, 7, user.ID, "sequence key written back")
	require.Len(t, db.lastArgs, 5)
	storedHash, ok := db.lastArgs[3].(string)
	require.True(t, ok)
	assert.NotEqual(t, "correct horse", storedHash)
	assert.True(t, sec.CheckPasswordHash("correct horse", storedHash))
}

func TestCreateRejectsInvalidPayloadBeforeStore(t *testing.T) {
	db := &fakeDB{}
	svc := NewService(NewStore(db), nil, nil)

	_, err := svc.Create(context.Background(), &Payload{})

	require.Error(t, err)
	assert.Empty(t, db.lastSQL, "no statement may run for an invalid payload")
}
