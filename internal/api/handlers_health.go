// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package api

import (
	"net/http"
	"time"
)

type healthStatus struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, healthStatus{
		Status: "ok",
		Uptime: time.Since(s.startedAt).Round(time.Second).String(),
	})
}

// handleReady reports readiness. The store is in-process, so readiness
// differs from liveness only when auth mode is "jwt" with no token manager.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Security.AuthMode == "jwt" && s.tokens == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeInternalError, "token manager not configured", nil)
		return
	}
	respondSuccess(w, r, http.StatusOK, healthStatus{
		Status: "ready",
		Uptime: time.Since(s.startedAt).Round(time.Second).String(),
	})
}
