// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package api

import (
	"net/http"
	"time"

	"github.com/inkwell-api/inkwell/internal/audit"
	"github.com/inkwell-api/inkwell/internal/auth"
	"github.com/inkwell-api/inkwell/internal/authz"
	"github.com/inkwell-api/inkwell/internal/logging"
	"github.com/inkwell-api/inkwell/internal/metrics"
	"github.com/inkwell-api/inkwell/internal/models"
)

// handleLogin verifies a username/password pair against the static
// credential table and issues a signed bearer token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := s.credentials.Authenticate(req.Username, req.Password)
	if err != nil {
		metrics.RecordLogin(false)
		s.auditAuth(r, audit.EventTypeAuthFailure, audit.OutcomeFailure, req.Username, "Login failed")
		logging.Ctx(r.Context()).Warn().Str("username", req.Username).Msg("Login failed")
		respondError(w, r, http.StatusUnauthorized, ErrCodeInvalidLogin, "invalid username or password", nil)
		return
	}

	if s.tokens == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeInternalError, "token issuance is not configured", nil)
		return
	}

	token, err := s.tokens.IssueToken(user.ID, user.Email, user.Role)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to issue token")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "failed to issue token", nil)
		return
	}

	metrics.RecordLogin(true)
	s.auditAuth(r, audit.EventTypeAuthSuccess, audit.OutcomeSuccess, user.ID, "Login succeeded")
	logging.Ctx(r.Context()).Info().Str("user_id", user.ID).Str("role", user.Role).Msg("Login succeeded")

	respondSuccess(w, r, http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresAt: expiryTimestamp(s.tokens),
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
	})
}

// handleLogout revokes the presented token. The route sits behind
// RequireAuth, so the credential has already been verified once; it is
// verified again here to recover the claims that key the denylist.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	tokenString, ok := auth.BearerToken(r)
	if !ok {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "no bearer token presented", nil)
		return
	}

	claims, err := s.tokens.VerifyToken(r.Context(), tokenString)
	if err != nil {
		respondError(w, r, http.StatusUnauthorized, string(authz.CodeInvalidToken), "token could not be verified", nil)
		return
	}

	if err := s.tokens.RevokeToken(r.Context(), claims); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to revoke token")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "failed to revoke token", nil)
		return
	}

	s.auditAuth(r, audit.EventTypeLogout, audit.OutcomeSuccess, claims.Subject, "Token revoked at logout")
	logging.Ctx(r.Context()).Info().Str("user_id", claims.Subject).Msg("Logout, token revoked")

	respondSuccess(w, r, http.StatusOK, map[string]string{"status": "logged_out"})
}

func expiryTimestamp(m *auth.TokenManager) string {
	return time.Now().UTC().Add(m.TTL()).Format(time.RFC3339)
}

func (s *Server) auditAuth(r *http.Request, eventType audit.EventType, outcome audit.Outcome, actorID, description string) {
	if s.auditLogger == nil {
		return
	}

	severity := audit.SeverityInfo
	if outcome == audit.OutcomeFailure {
		severity = audit.SeverityWarning
	}

	s.auditLogger.Log(&audit.Event{
		Type:        eventType,
		Severity:    severity,
		Outcome:     outcome,
		Actor:       audit.Actor{ID: actorID},
		Source:      audit.ExtractSource(r),
		Action:      string(eventType),
		Description: description,
		RequestID:   audit.RequestID(r),
	})
}
