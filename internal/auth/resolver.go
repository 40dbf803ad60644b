// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package auth

import (
	"net/http"
	"strings"

	"github.com/inkwell-api/inkwell/internal/authz"
	"github.com/inkwell-api/inkwell/internal/logging"
)

// Resolver is the identity resolution middleware. It runs once per request,
// before any enforcement gate, and attaches a verified actor to the request
// context.
//
// The resolver fails open to anonymous: a missing, malformed, expired,
// revoked, or otherwise unverifiable credential produces an anonymous
// request, not an error response. Rejecting anonymous requests is the job
// of the downstream gates, which also report the more precise
// INVALID_TOKEN code when the resolver flagged a failed credential.
type Resolver struct {
	tokens   *TokenManager
	authMode string
}

// NewResolver creates the identity resolver. With authMode "none" every
// request resolves to anonymous regardless of headers.
func NewResolver(tokens *TokenManager, authMode string) *Resolver {
	return &Resolver{
		tokens:   tokens,
		authMode: authMode,
	}
}

// ResolveIdentity is the middleware entry point.
func (rv *Resolver) ResolveIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rv.authMode == "none" || rv.tokens == nil {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, ok := BearerToken(r)
		if !ok {
			// No credential: anonymous, evaluated as guest downstream.
			next.ServeHTTP(w, r)
			return
		}

		claims, err := rv.tokens.VerifyToken(r.Context(), tokenString)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Credential verification failed, continuing as anonymous")
			next.ServeHTTP(w, r.WithContext(authz.ContextWithInvalidCredential(r.Context())))
			return
		}

		actor, ok := actorFromClaims(claims)
		if !ok {
			// A verified token carrying an unrecognized role is treated the
			// same as a failed verification. Defaulting an unknown role to
			// anything else would let a stale or mis-issued token pick its
			// own privilege.
			logging.Ctx(r.Context()).Warn().
				Str("role", claims.Role).
				Str("subject", claims.Subject).
				Msg("Token carries unknown role, continuing as anonymous")
			next.ServeHTTP(w, r.WithContext(authz.ContextWithInvalidCredential(r.Context())))
			return
		}

		next.ServeHTTP(w, r.WithContext(authz.ContextWithActor(r.Context(), actor)))
	})
}

// actorFromClaims builds the request actor from verified claims. A missing
// role claim defaults to reader, the lowest authenticated role; an
// unrecognized role fails resolution entirely.
func actorFromClaims(claims *Claims) (*authz.Actor, bool) {
	role := authz.RoleReader
	if claims.Role != "" {
		parsed, ok := authz.ParseRole(claims.Role)
		if !ok {
			return nil, false
		}
		role = parsed
	}

	return &authz.Actor{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  role,
	}, true
}

// BearerToken pulls the token out of the Authorization header. Any shape
// other than "Bearer <token>" counts as no credential.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
