// Package users manages the account store behind the authentication gate:
// CRUD over the same generic storage machinery as the catalog, bcrypt
// credential checks, and bearer/JWT token issuance.
package users

import (
	"github.com/gamedex/gamedex/internal/catalog/resource"
	"github.com/gamedex/gamedex/internal/platform/sec"
	"github.com/gamedex/gamedex/internal/platform/validate"
)

// User is a stored account. The password column holds a bcrypt hash and is
// never serialized; plaintext passwords exist only inside a request payload.
type User struct {
	ID           int      `db:"user_id" json:"user_id"`
	Name         string   `db:"name" json:"name"`
	Email        string   `db:"email" json:"email"`
	Username     string   `db:"username" json:"username"`
	PasswordHash string   `db:"password" json:"-"`
	Role         sec.Role `db:"role" json:"role"`
}

// Payload is the request body for create/update: the stored fields plus the
// plaintext password, which is hashed before anything touches the store.
type Payload struct {
	User
	Password string `json:"password"`
}

var userDesc = resource.Descriptor{
	Name:          "User",
	Table:         "users",
	Key:           "user_id",
	Columns:       []string{"user_id", "name", "email", "username", "password", "role"},
	Sortable:      []string{"user_id", "name", "email", "username", "role"},
	NumericSearch: []string{"user_id", "role"},
	TextSearch:    []string{"name", "email", "username"},
}

var userBind = resource.Binding[User]{
	Columns: []string{"name", "email", "username", "password", "role"},
	Values: func(u *User) []any {
		return []any{u.Name, u.Email, u.Username, u.PasswordHash, u.Role}
	},
	Key:    func(u *User) int { return u.ID },
	SetKey: func(u *User, id int) { u.ID = id },
}

func validatePayload(p *Payload) error {
	var v validate.Validator
	return v.
		Required("name", p.Name).
		MaxLen("name", p.Name, 128).
		Email("email", p.Email).
		Required("username", p.Username).
		MaxLen("username", p.Username, 64).
		Custom("password", len(p.Password) < 8, "Must be at least 8 characters").
		Custom("role", !p.Role.Valid(), "Must be between 1 and 4").
		Err()
}
