// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package authz

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/inkwell-api/inkwell/internal/logging"
	"github.com/inkwell-api/inkwell/internal/models"
)

// EffectivePermissions is the introspection payload describing what the
// calling identity may do.
type EffectivePermissions struct {
	Role          Role          `json:"role"`
	Authenticated bool          `json:"authenticated"`
	UserID        string        `json:"userId,omitempty"`
	Permissions   PermissionSet `json:"permissions"`
}

// HandleEffectivePermissions reports the caller's effective role and full
// capability record. Anonymous callers get the guest record rather than a
// denial, so clients can render capability-aware UI before login.
func HandleEffectivePermissions(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	role := EffectiveRole(actor)

	payload := EffectivePermissions{
		Role:          role,
		Authenticated: actor != nil,
		Permissions:   PermissionsFor(role),
	}
	if actor != nil {
		payload.UserID = actor.ID
	}

	resp := models.APIResponse{
		Status: "success",
		Data:   payload,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode permissions response")
	}
}
