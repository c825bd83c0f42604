// Copyright (c) 2026 Gamedex. All rights reserved.

package authgate_test

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedex/gamedex/internal/platform/apperr"
	"github.com/gamedex/gamedex/internal/platform/authgate"
	"github.com/gamedex/gamedex/internal/platform/sec"
)

// fakeUserStore accepts exactly one username/password pair.
type fakeUserStore struct {
	username string
	password string
}

func (f *fakeUserStore) CheckCredentials(_ context.Context, username, password string) (*sec.Principal, error) {
	if username == f.username && password == f.password {
		return &sec.Principal{UserID: 1, Username: username, Role: sec.RoleEditor}, nil
	}
	return nil, errors.New("bad credentials")
}

// fakeTokenStore accepts exactly one opaque token.
type fakeTokenStore struct {
	token string
}

func (f *fakeTokenStore) CheckToken(_ context.Context, token string) (*sec.Principal, error) {
	if token == f.token {
		return &sec.Principal{UserID: 2, Username: "bob", Role: sec.RoleViewer}, nil
	}
	return nil, errors.New("unknown token")
}

func newRequest(headers map[string]string) *http.Request {
	r := httptest.NewRequest("GET", "/api/v1/platforms", nil)
	for k, v := range headers {
		r.Header.Set(k, v)
	}
	return r
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	ae := apperr.As(err)
	require.NotNil(t, ae)
	return ae.HTTPStatus
}

func TestNone_AdmitsAnonymous(t *testing.T) {
	principal, err := authgate.None{}.Authenticate(newRequest(nil))
	assert.NoError(t, err)
	assert.Nil(t, principal)
}

func TestSharedHeader(t *testing.T) {
	gate := &authgate.SharedHeader{Users: &fakeUserStore{username: "bob", password: "s3cret"}}

	t.Run("missing_header_is_unauthorized", func(t *testing.T) {
		_, err := gate.Authenticate(newRequest(nil))
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})

	t.Run("wrong_password_is_forbidden", func(t *testing.T) {
		_, err := gate.Authenticate(newRequest(map[string]string{"Gamedex-Authorization": "bob:wrong"}))
		assert.Equal(t, http.StatusForbidden, statusOf(t, err))
	})

	t.Run("malformed_value_is_forbidden", func(t *testing.T) {
		_, err := gate.Authenticate(newRequest(map[string]string{"Gamedex-Authorization": "no-colon-here"}))
		assert.Equal(t, http.StatusForbidden, statusOf(t, err))
	})

	t.Run("valid_credentials_pass", func(t *testing.T) {
		principal, err := gate.Authenticate(newRequest(map[string]string{"Gamedex-Authorization": "bob:s3cret"}))
		require.NoError(t, err)
		assert.Equal(t, "bob", principal.Username)
	})
}

func TestBasic(t *testing.T) {
	gate := &authgate.Basic{Users: &fakeUserStore{username: "bob", password: "s3cret"}}

	encode := func(creds string) string {
		return "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
	}

	t.Run("missing_header_is_unauthorized", func(t *testing.T) {
		_, err := gate.Authenticate(newRequest(nil))
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})

	// Present-but-wrong credential material must be Forbidden, never Unauthorized.
	t.Run("wrong_password_is_forbidden", func(t *testing.T) {
		_, err := gate.Authenticate(newRequest(map[string]string{"Authorization": encode("bob:wrong")}))
		assert.Equal(t, http.StatusForbidden, statusOf(t, err))
	})

	t.Run("invalid_base64_is_forbidden", func(t *testing.T) {
		_, err := gate.Authenticate(newRequest(map[string]string{"Authorization": "Basic %%%%"}))
		assert.Equal(t, http.StatusForbidden, statusOf(t, err))
	})

	t.Run("valid_credentials_pass", func(t *testing.T) {
		principal, err := gate.Authenticate(newRequest(map[string]string{"Authorization": encode("bob:s3cret")}))
		require.NoError(t, err)
		assert.Equal(t, 1, principal.UserID)
	})

	t.Run("advertises_challenge", func(t *testing.T) {
		assert.Contains(t, gate.Challenge(), "Basic realm=")
	})
}

func TestBearer(t *testing.T) {
	gate := &authgate.Bearer{Tokens: &fakeTokenStore{token: "opaque-token-1"}}

	t.Run("missing_header_is_unauthorized", func(t *testing.T) {
		_, err := gate.Authenticate(newRequest(nil))
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})

	t.Run("unknown_token_is_forbidden", func(t *testing.T) {
		_, err := gate.Authenticate(newRequest(map[string]string{"Authorization": "Bearer nope"}))
		assert.Equal(t, http.StatusForbidden, statusOf(t, err))
	})

	t.Run("wrong_scheme_is_forbidden", func(t *testing.T) {
		_, err := gate.Authenticate(newRequest(map[string]string{"Authorization": "Token opaque-token-1"}))
		assert.Equal(t, http.StatusForbidden, statusOf(t, err))
	})

	t.Run("known_token_passes", func(t *testing.T) {
		principal, err := gate.Authenticate(newRequest(map[string]string{"Authorization": "Bearer opaque-token-1"}))
		require.NoError(t, err)
		assert.Equal(t, "bob", principal.Username)
	})
}

func TestJWT(t *testing.T) {
	tokens, err := sec.NewTokenService("test-secret", "gamedex.dev")
	require.NoError(t, err)

	gate := &authgate.JWT{Verifier: tokens}

	t.Run("missing_header_is_unauthorized", func(t *testing.T) {
		_, err := gate.Authenticate(newRequest(nil))
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	})

	t.Run("garbage_token_is_forbidden", func(t *testing.T) {
		_, err := gate.Authenticate(newRequest(map[string]string{"Authorization": "Bearer not.a.jwt"}))
		assert.Equal(t, http.StatusForbidden, statusOf(t, err))
	})

	t.Run("expired_token_is_forbidden", func(t *testing.T) {
		signed, err := tokens.GenerateAccessToken(9, "eve", sec.RoleViewer, -time.Minute)
		require.NoError(t, err)

		_, err = gate.Authenticate(newRequest(map[string]string{"Authorization": "Bearer " + signed}))
		assert.Equal(t, http.StatusForbidden, statusOf(t, err))
	})

	t.Run("valid_token_passes", func(t *testing.T) {
		signed, err := tokens.GenerateAccessToken(9, "eve", sec.RoleModerator, time.Hour)
		require.NoError(t, err)

		principal, err := gate.Authenticate(newRequest(map[string]string{"Authorization": "Bearer " + signed}))
		require.NoError(t, err)
		assert.Equal(t, 9, principal.UserID)
		assert.Equal(t, sec.RoleModerator, principal.Role)
	})
}

func TestNew_SelectsVariant(t *testing.T) {
	users := &fakeUserStore{}
	tokensStore := &fakeTokenStore{}
	verifier, err := sec.NewTokenService("s", "iss")
	require.NoError(t, err)

	tests := []struct {
		mode    string
		want    interface{}
		wantErr bool
	}{
		{"none", authgate.None{}, false},
		{"shared", &authgate.SharedHeader{}, false},
		{"basic", &authgate.Basic{}, false},
		{"bearer", &authgate.Bearer{}, false},
		{"jwt", &authgate.JWT{}, false},
		{"saml", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			gate, err := authgate.New(tt.mode, users, tokensStore, verifier)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, gate)
		})
	}
}
