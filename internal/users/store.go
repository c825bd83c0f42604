package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/gamedex/gamedex/internal/catalog/resource"
	"github.com/gamedex/gamedex/internal/platform/apperr"
	"github.com/gamedex/gamedex/internal/platform/dberr"
)

// Store adds the username lookup the credential check needs on top of the
// generic keyed store.
type Store struct {
	*resource.Store[User]
	db resource.DB
}

func NewStore(db resource.DB) *Store {
	return &Store{Store: resource.NewStore(db, userDesc, userBind), db: db}
}

func (s *Store) GetByUsername(ctx context.Context, username string) (*User, error) {
	rows, err := s.db.Query(ctx,
		"SELECT user_id, name, email, username, password, role FROM users WHERE username = $1",
		username)
	if err != nil {
		return nil, dberr.Wrap(err, "get user by username")
	}
	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, dberr.Wrap(err, "get user by username")
	}
	return user, nil
}
