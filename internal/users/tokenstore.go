package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/gamedex/gamedex/internal/platform/constants"
	"github.com/gamedex/gamedex/internal/platform/sec"
)

// TokenStore keeps the opaque bearer tokens issued by authBearer in Redis.
// The token value is the whole secret; Redis expiry enforces the lifetime,
// so a restart of the API never invalidates outstanding tokens.
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Issue mints a fresh token for the principal and stores it with the given
// time to live.
func (t *TokenStore) Issue(ctx context.Context, principal *sec.Principal, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	payload, err := json.Marshal(principal)
	if err != nil {
		return "", fmt.Errorf("marshal principal: %w", err)
	}
	if err := t.client.Set(ctx, tokenKey(token), payload, ttl).Err(); err != nil {
		return "", fmt.Errorf("store bearer token: %w", err)
	}
	return token, nil
}

// CheckToken resolves a presented token to its principal. Unknown and
// expired tokens are indistinguishable here; both read as absent keys.
func (t *TokenStore) CheckToken(ctx context.Context, token string) (*sec.Principal, error) {
	payload, err := t.client.Get(ctx, tokenKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errors.New("unknown bearer token")
	}
	if err != nil {
		return nil, fmt.Errorf("read bearer token: %w", err)
	}
	var principal sec.Principal
	if err := json.Unmarshal(payload, &principal); err != nil {
		return nil, fmt.Errorf("decode bearer token payload: %w", err)
	}
	return &principal, nil
}

func tokenKey(token string) string {
	return constants.RedisPrefixBearerToken + token
}
