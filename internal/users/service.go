package users

import (
	"context"

	"github.com/gamedex/gamedex/internal/catalog/resource"
	"github.com/gamedex/gamedex/internal/platform/apperr"
	"github.com/gamedex/gamedex/internal/platform/constants"
	"github.com/gamedex/gamedex/internal/platform/sec"
	"github.com/gamedex/gamedex/pkg/pagination"
	"github.com/gamedex/gamedex/pkg/search"
)

// Service owns account lifecycle and token issuance. Reads and deletes ride
// the generic machinery; create and update are local because the plaintext
// password must be validated and hashed before the store sees anything.
type Service struct {
	reads  *resource.Service[User]
	store  *Store
	tokens *TokenStore
	signer *sec.TokenService
}

func NewService(store *Store, tokens *TokenStore, signer *sec.TokenService) *Service {
	return &Service{
		reads:  resource.NewService(store.Store, func(*User) error { return nil }),
		store:  store,
		tokens: tokens,
		signer: signer,
	}
}

func (s *Service) List(ctx context.Context, page pagination.Params, sortSpec string) (*resource.Page[User], error) {
	return s.reads.List(ctx, page, sortSpec)
}

func (s *Service) Get(ctx context.Context, id int) (*User, error) {
	return s.reads.Get(ctx, id)
}

func (s *Service) Search(ctx context.Context, term search.Term) ([]*User, error) {
	return s.reads.Search(ctx, term)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.reads.Delete(ctx, id)
}

func (s *Service) Create(ctx context.Context, payload *Payload) (*User, error) {
	if err := validatePayload(payload); err != nil {
		return nil, err
	}
	hash, err := sec.HashPassword(payload.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	user := payload.User
	user.PasswordHash = hash
	if err := s.store.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update is a full replacement, password included: the payload must carry a
// password and it is re-hashed, matching create semantics.
func (s *Service) Update(ctx context.Context, id int, payload *Payload) (*User, error) {
	payload.ID = id
	if err := validatePayload(payload); err != nil {
		return nil, err
	}
	hash, err := sec.HashPassword(payload.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	user := payload.User
	user.PasswordHash = hash
	if err := s.store.Update(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CheckCredentials implements the gate's credential capability. The bcrypt
// comparison runs even for unknown usernames so response timing does not
// reveal which accounts exist.
func (s *Service) CheckCredentials(ctx context.Context, username, password string) (*sec.Principal, error) {
	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		sec.CheckPasswordHash(password, dummyHash)
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	return &sec.Principal{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// IssueBearerToken authenticates and mints an opaque token backed by Redis.
func (s *Service) IssueBearerToken(ctx context.Context, username, password string) (string, error) {
	principal, err := s.CheckCredentials(ctx, username, password)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(ctx, principal, constants.BearerTokenTTL)
}

// IssueJWT authenticates and mints a signed access token.
func (s *Service) IssueJWT(ctx context.Context, username, password string) (string, error) {
	principal, err := s.CheckCredentials(ctx, username, password)
	if err != nil {
		return "", err
	}
	return s.signer.GenerateAccessToken(principal.UserID, principal.Username, principal.Role, constants.JWTAccessTTL)
}

// dummyHash is bcrypt("placeholder") used to equalize timing on unknown
// usernames.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
