// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package authz

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/inkwell-api/inkwell/internal/audit"
	"github.com/inkwell-api/inkwell/internal/logging"
	"github.com/inkwell-api/inkwell/internal/models"
)

// OwnerResolver fetches the owner id of the resource a request targets.
// Implementations should fetch only the owner id, not the full resource,
// since this lookup sits on the critical path of every ownership-gated
// request. Returning ok=false means the resource does not exist; the gate
// responds 404 so a denied caller cannot distinguish "not yours" from
// "not found" by probing.
type OwnerResolver func(r *http.Request) (ownerID string, ok bool, err error)

// Gates wires the pure decision functions into HTTP middleware. Each gate
// either passes control to the next handler or terminates the request with
// a denial response; the protected handler never runs after a denial.
//
// Gates hold no per-request state. The audit logger is optional.
type Gates struct {
	auditLogger *audit.Logger
}

// NewGates creates the enforcement gate set. auditLogger may be nil to
// disable audit records for denials.
func NewGates(auditLogger *audit.Logger) *Gates {
	return &Gates{auditLogger: auditLogger}
}

// RequireAuth denies anonymous requests with MISSING_TOKEN. It checks only
// presence of a resolved actor; capability checks belong to
// RequirePermission.
func (g *Gates) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ActorFromContext(r.Context()) == nil {
			g.deny(w, r, "require_auth", g.anonymousDenial(r))
			return
		}
		recordAllowed("require_auth")
		next.ServeHTTP(w, r)
	})
}

// RequireMinimumRole denies requests whose effective role ranks below
// required. Anonymous requests are evaluated as guest.
func (g *Gates) RequireMinimumRole(required Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := EffectiveRole(ActorFromContext(r.Context()))
			if !MeetsMinimumRole(role, required) {
				g.deny(w, r, "require_minimum_role", DenyInsufficientRole(required, role))
				return
			}
			recordAllowed("require_minimum_role")
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission denies requests whose effective role lacks the
// capability in the permission matrix. Anonymous requests are evaluated as
// guest, so guest-granted capabilities pass without authentication.
func (g *Gates) RequirePermission(c Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := EffectiveRole(ActorFromContext(r.Context()))
			if !HasPermission(role, c) {
				g.deny(w, r, "require_permission", DenyMissingCapability(c, role))
				return
			}
			recordAllowed("require_permission")
			next.ServeHTTP(w, r)
		})
	}
}

// RequireOwnership denies requests unless the actor's id matches the owner
// id resolved for the target resource. There is no admin override here;
// use this gate only where strict self-ownership is required regardless of
// role. Anonymous requests are denied with MISSING_TOKEN.
func (g *Gates) RequireOwnership(resolve OwnerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := ActorFromContext(r.Context())
			if actor == nil {
				g.deny(w, r, "require_ownership", g.anonymousDenial(r))
				return
			}

			ownerID, ok, err := resolve(r)
			if err != nil {
				logging.Ctx(r.Context()).Error().Err(err).Msg("Owner resolution failed")
				writeEnvelope(w, r, http.StatusInternalServerError, &models.APIError{
					Code:    "INTERNAL_ERROR",
					Message: "failed to resolve resource ownership",
				})
				return
			}
			if !ok {
				writeEnvelope(w, r, http.StatusNotFound, &models.APIError{
					Code:    "NOT_FOUND",
					Message: "resource not found",
				})
				return
			}

			if !IsOwner(actor.ID, ownerID) {
				g.deny(w, r, "require_ownership", DenyNotOwner())
				return
			}
			recordAllowed("require_ownership")
			next.ServeHTTP(w, r)
		})
	}
}

// RequireCanModify denies requests unless the actor owns the target
// resource or holds the admin role. This is the owner-or-admin override
// path; RequireOwnership is the strict variant without it.
func (g *Gates) RequireCanModify(resolve OwnerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := ActorFromContext(r.Context())
			if actor == nil {
				g.deny(w, r, "require_can_modify", g.anonymousDenial(r))
				return
			}

			ownerID, ok, err := resolve(r)
			if err != nil {
				logging.Ctx(r.Context()).Error().Err(err).Msg("Owner resolution failed")
				writeEnvelope(w, r, http.StatusInternalServerError, &models.APIError{
					Code:    "INTERNAL_ERROR",
					Message: "failed to resolve resource ownership",
				})
				return
			}
			if !ok {
				writeEnvelope(w, r, http.StatusNotFound, &models.APIError{
					Code:    "NOT_FOUND",
					Message: "resource not found",
				})
				return
			}

			if !CanModify(actor, ownerID) {
				g.deny(w, r, "require_can_modify", Denial{
					Code:    CodeForbidden,
					Message: "operation is restricted to the resource owner or an administrator",
				})
				return
			}
			recordAllowed("require_can_modify")
			next.ServeHTTP(w, r)
		})
	}
}

// RequireOwnProfileOrAdmin guards profile routes: admins pass for any
// requested profile, everyone else only for their own. The requested user
// id is read from the named URL parameter, so no storage lookup is needed.
// Anonymous requests never match a profile id and are denied FORBIDDEN.
func (g *Gates) RequireOwnProfileOrAdmin(userIDParam string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := ActorFromContext(r.Context())
			if IsAdmin(actor) {
				recordAllowed("require_own_profile_or_admin")
				next.ServeHTTP(w, r)
				return
			}

			requested := chi.URLParam(r, userIDParam)
			if actor == nil || requested == "" || requested != actor.ID {
				g.deny(w, r, "require_own_profile_or_admin", DenyNotOwnProfile())
				return
			}
			recordAllowed("require_own_profile_or_admin")
			next.ServeHTTP(w, r)
		})
	}
}

// ForbidHardDelete denies every request unconditionally, admin included.
// Mount it on delete-shaped routes. The permission matrix already encodes
// all-false delete capabilities; this gate is the second, independent
// mechanism and must stay even though it looks redundant.
func (g *Gates) ForbidHardDelete(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.deny(w, r, "forbid_hard_delete", DenyHardDelete())
	})
}

// anonymousDenial distinguishes "no credential" from "credential failed
// verification" for gates that require authentication.
func (g *Gates) anonymousDenial(r *http.Request) Denial {
	if CredentialInvalid(r.Context()) {
		return DenyInvalidToken()
	}
	return DenyMissingToken()
}

// deny terminates the request with the denial response, records metrics,
// and emits structured log and audit records.
func (g *Gates) deny(w http.ResponseWriter, r *http.Request, gate string, d Denial) {
	actor := ActorFromContext(r.Context())
	role := EffectiveRole(actor)

	recordDenied(gate, d, role)

	logging.Ctx(r.Context()).Warn().
		Str("gate", gate).
		Str("code", string(d.Code)).
		Str("role", string(role)).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("Authorization denied")

	g.auditDenial(r, gate, d, actor, role)

	apiErr := &models.APIError{
		Code:    string(d.Code),
		Message: d.Message,
	}
	if d.Code == CodeInsufficientPermissions {
		apiErr.RequiredRole = string(d.RequiredRole)
		apiErr.UserRole = string(d.UserRole)
	}
	writeEnvelope(w, r, d.HTTPStatus(), apiErr)
}

func (g *Gates) auditDenial(r *http.Request, gate string, d Denial, actor *Actor, role Role) {
	if g.auditLogger == nil {
		return
	}

	auditActor := audit.Actor{ID: "anonymous", Role: string(role)}
	if actor != nil {
		auditActor = audit.Actor{ID: actor.ID, Role: string(actor.Role), Email: actor.Email}
	}

	g.auditLogger.Log(&audit.Event{
		Type:        audit.EventTypeAuthzDenied,
		Severity:    audit.SeverityWarning,
		Outcome:     audit.OutcomeFailure,
		Actor:       auditActor,
		Source:      audit.ExtractSource(r),
		Action:      "authz.gate." + gate,
		Description: string(d.Code) + ": " + d.Message,
		RequestID:   logging.RequestIDFromContext(r.Context()),
	})
}

// writeEnvelope writes the standard response envelope for gate-terminated
// requests.
func writeEnvelope(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError) {
	resp := models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
		Error: apiErr,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode denial response")
	}
}
