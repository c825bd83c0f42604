// Copyright (c) 2026 Gamedex. All rights reserved.

/*
Package authgate implements the pluggable request-authentication gate.

Every variant is an interchangeable implementation of the [Authenticator]
interface. Exactly one variant is selected at process configuration time and
mounted in front of the catalog routes; the variants are never stacked.

Variants:

  - None: pass-through for open deployments.
  - SharedHeader: custom header carrying plain "username:password".
  - Basic: standard RFC 7617 Authorization header.
  - Bearer: opaque pre-shared token looked up in the token store.
  - JWT: signed, time-bound token verified offline.

Outcome contract: absent credential material yields 401 Unauthorized;
present-but-invalid material yields 403 Forbidden. On success the resolved
[sec.Principal] proceeds with the request; the gate never mutates anything
else.
*/
package authgate

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/gamedex/gamedex/internal/platform/apperr"
	"github.com/gamedex/gamedex/internal/platform/config"
	"github.com/gamedex/gamedex/internal/platform/constants"
	"github.com/gamedex/gamedex/internal/platform/sec"
)

// Authenticator gates a request before it reaches any resource handler.
//
// A nil Principal with a nil error means the variant intentionally admits
// anonymous requests (the None variant).
type Authenticator interface {
	Authenticate(r *http.Request) (*sec.Principal, error)
}

// CredentialChecker validates a username/password pair against the user
// store. Implementations return the matching principal or any error; the
// gate maps every failure to Forbidden without inspecting it.
type CredentialChecker interface {
	CheckCredentials(ctx context.Context, username, password string) (*sec.Principal, error)
}

// TokenChecker resolves an opaque bearer token to the principal it was
// issued for.
type TokenChecker interface {
	CheckToken(ctx context.Context, token string) (*sec.Principal, error)
}

// TokenVerifier verifies a signed token's signature and validity window.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*sec.Principal, error)
}

// Challenger is implemented by variants that advertise an authentication
// challenge header on failure (currently only Basic).
type Challenger interface {
	Challenge() string
}

// New selects the gate variant for the given AUTH_MODE value.
func New(mode string, users CredentialChecker, tokens TokenChecker, verifier TokenVerifier) (Authenticator, error) {
	switch mode {
	case config.AuthModeNone:
		return None{}, nil
	case config.AuthModeShared:
		return &SharedHeader{Users: users}, nil
	case config.AuthModeBasic:
		return &Basic{Users: users}, nil
	case config.AuthModeBearer:
		return &Bearer{Tokens: tokens}, nil
	case config.AuthModeJWT:
		return &JWT{Verifier: verifier}, nil
	default:
		return nil, fmt.Errorf("authgate: unknown auth mode %q", mode)
	}
}

// # Variant: None

// None admits every request without establishing an identity.
type None struct{}

// Authenticate implements [Authenticator].
func (None) Authenticate(*http.Request) (*sec.Principal, error) {
	return nil, nil
}

// # Variant: SharedHeader

// SharedHeader authenticates via the custom Gamedex-Authorization header,
// whose value is plain "username:password".
type SharedHeader struct {
	Users CredentialChecker
}

// Authenticate implements [Authenticator].
func (a *SharedHeader) Authenticate(r *http.Request) (*sec.Principal, error) {
	raw := r.Header.Get(constants.HeaderSharedAuth)
	if raw == "" {
		return nil, apperr.Unauthorized(constants.HeaderSharedAuth + " header not found")
	}

	username, password, ok := strings.Cut(raw, ":")
	if !ok {
		return nil, apperr.Forbidden("Malformed credentials")
	}

	principal, err := a.Users.CheckCredentials(r.Context(), username, password)
	if err != nil {
		return nil, apperr.Forbidden("Authentication failed")
	}

	return principal, nil
}

// # Variant: Basic

// Basic authenticates via the standard Authorization header with the
// "Basic base64(username:password)" scheme.
type Basic struct {
	Users CredentialChecker
}

// Challenge implements [Challenger]. The realm is advertised alongside
// every Basic failure so generic HTTP clients can prompt for credentials.
func (b *Basic) Challenge() string {
	return constants.BasicAuthRealm
}

// Authenticate implements [Authenticator].
func (b *Basic) Authenticate(r *http.Request) (*sec.Principal, error) {
	raw := r.Header.Get(constants.HeaderAuthorization)
	if raw == "" {
		return nil, apperr.Unauthorized("Authorization header not found")
	}

	scheme, encoded, ok := strings.Cut(raw, " ")
	if !ok || !strings.EqualFold(scheme, "Basic") {
		return nil, apperr.Forbidden("Malformed authorization header")
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, apperr.Forbidden("Malformed authorization header")
	}

	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return nil, apperr.Forbidden("Malformed credentials")
	}

	principal, err := b.Users.CheckCredentials(r.Context(), username, password)
	if err != nil {
		return nil, apperr.Forbidden("Authentication failed")
	}

	return principal, nil
}

// # Variant: Bearer

// Bearer authenticates via an opaque pre-shared token issued by
// POST /users/authBearer and held in the token store.
type Bearer struct {
	Tokens TokenChecker
}

// Authenticate implements [Authenticator].
func (a *Bearer) Authenticate(r *http.Request) (*sec.Principal, error) {
	token, err := bearerToken(r)
	if err != nil {
		return nil, err
	}

	principal, err := a.Tokens.CheckToken(r.Context(), token)
	if err != nil {
		return nil, apperr.Forbidden("Authentication failed")
	}

	return principal, nil
}

// # Variant: JWT

// JWT authenticates via a signed, time-bound token. Verification is fully
// offline: signature and expiry are checked without touching any store.
type JWT struct {
	Verifier TokenVerifier
}

// Authenticate implements [Authenticator].
func (a *JWT) Authenticate(r *http.Request) (*sec.Principal, error) {
	token, err := bearerToken(r)
	if err != nil {
		return nil, err
	}

	principal, err := a.Verifier.VerifyToken(token)
	if err != nil {
		return nil, apperr.Forbidden("Invalid or expired token")
	}

	return principal, nil
}

// bearerToken extracts the credential from an "Authorization: Bearer x"
// header, distinguishing an absent header (Unauthorized) from a malformed
// one (Forbidden).
func bearerToken(r *http.Request) (string, error) {
	raw := r.Header.Get(constants.HeaderAuthorization)
	if raw == "" {
		return "", apperr.Unauthorized("Authorization header not found")
	}

	scheme, token, ok := strings.Cut(raw, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", apperr.Forbidden("Malformed authorization header")
	}

	return token, nil
}
