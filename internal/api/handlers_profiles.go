// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwell-api/inkwell/internal/audit"
	"github.com/inkwell-api/inkwell/internal/authz"
	"github.com/inkwell-api/inkwell/internal/logging"
	"github.com/inkwell-api/inkwell/internal/metrics"
	"github.com/inkwell-api/inkwell/internal/models"
)

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles := s.store.ListProfiles()
	metrics.RecordContentOperation("profile", "list")
	respondSuccess(w, r, http.StatusOK, profiles)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	profile, ok := s.store.GetProfile(userID)
	if !ok {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "profile not found", nil)
		return
	}
	metrics.RecordContentOperation("profile", "get")
	respondSuccess(w, r, http.StatusOK, profile)
}

// handleUpdateProfile applies a partial update to a profile. The route gate
// admits the profile's own user and administrators; which of the two acted
// is recorded in the audit trail.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	userID := chi.URLParam(r, "userID")
	profile, ok := s.store.UpdateProfile(userID, req)
	if !ok {
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "profile not found", nil)
		return
	}

	actor := authz.ActorFromContext(r.Context())
	operation := "update"
	if req.Deleted {
		operation = "soft_delete"
	}
	metrics.RecordContentOperation("profile", operation)
	logging.Ctx(r.Context()).Info().
		Str("user_id", userID).
		Str("actor_id", actor.ID).
		Str("operation", operation).
		Msg("Profile updated")

	if s.auditLogger != nil {
		s.auditLogger.Log(&audit.Event{
			Type:     audit.EventTypeProfileModified,
			Severity: audit.SeverityInfo,
			Outcome:  audit.OutcomeSuccess,
			Actor: audit.Actor{
				ID:    actor.ID,
				Role:  actor.Role.String(),
				Email: actor.Email,
			},
			Target:      &audit.Target{ID: userID, Type: "profile"},
			Source:      audit.ExtractSource(r),
			Action:      "profile." + operation,
			Description: "Profile modified",
			RequestID:   audit.RequestID(r),
		})
	}

	respondSuccess(w, r, http.StatusOK, profile)
}
