// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package authz

import "context"

// Actor is the resolved identity attached to one request. It lives only
// for the duration of the request; nothing persists it. A nil *Actor
// means the caller is anonymous and is evaluated as RoleGuest.
type Actor struct {
	ID    string
	Email string
	Role  Role
}

type contextKey string

const (
	actorContextKey             contextKey = "authz.actor"
	invalidCredentialContextKey contextKey = "authz.invalid_credential"
)

// ContextWithActor attaches a resolved actor to ctx. The identity resolver
// calls this once per authenticated request.
func ContextWithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// ActorFromContext returns the request's actor, or nil when the request is
// anonymous or never passed through the identity resolver.
func ActorFromContext(ctx context.Context) *Actor {
	actor, _ := ctx.Value(actorContextKey).(*Actor)
	return actor
}

// ContextWithInvalidCredential marks ctx as carrying a credential that
// failed verification. The identity resolver sets this when it downgrades a
// bad token to anonymous, so authentication-requiring gates can report
// INVALID_TOKEN instead of MISSING_TOKEN.
func ContextWithInvalidCredential(ctx context.Context) context.Context {
	return context.WithValue(ctx, invalidCredentialContextKey, true)
}

// CredentialInvalid reports whether the request presented a credential that
// failed verification.
func CredentialInvalid(ctx context.Context) bool {
	invalid, _ := ctx.Value(invalidCredentialContextKey).(bool)
	return invalid
}

// EffectiveRole returns the role authorization decisions evaluate against:
// the actor's role, or RoleGuest for an anonymous request.
func EffectiveRole(actor *Actor) Role {
	if actor == nil {
		return RoleGuest
	}
	return actor.Role
}
