// Copyright (c) 2026 Gamedex. All rights reserved.

package middleware

import (
	"net/http"

	"github.com/gamedex/gamedex/internal/platform/apperr"
	"github.com/gamedex/gamedex/internal/platform/authgate"
	"github.com/gamedex/gamedex/internal/platform/ctxutil"
	"github.com/gamedex/gamedex/internal/platform/respond"
	"github.com/gamedex/gamedex/internal/platform/sec"
)

// Gate mounts the configured authentication variant in front of a route
// group.
//
// # Flow
//  1. The variant inspects the inbound headers.
//  2. On failure the structured 401/403 outcome is written and processing
//     stops; variants implementing [authgate.Challenger] also advertise
//     their challenge header.
//  3. On success the resolved [sec.Principal] (nil for the None variant)
//     is injected into the request context and the request proceeds
//     unmodified.
func Gate(gate authgate.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal, err := gate.Authenticate(request)
			if err != nil {
				if challenger, ok := gate.(authgate.Challenger); ok {
					writer.Header().Set("WWW-Authenticate", challenger.Challenge())
				}
				respond.Error(writer, request, err)
				return
			}

			if principal != nil {
				request = request.WithContext(ctxutil.WithPrincipal(request.Context(), principal))
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireRole blocks requests whose principal does not meet the required
// role level.
//
// # Usage
//
// Must be registered AFTER [Gate]. Anonymous requests (including every
// request under the None variant) are rejected with 401; an authenticated
// principal below the required level gets 403.
func RequireRole(role sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := ctxutil.GetPrincipal(request.Context())

			if principal == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			if !principal.Role.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
