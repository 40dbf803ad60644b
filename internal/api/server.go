// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package api

import (
	"time"

	"github.com/inkwell-api/inkwell/internal/audit"
	"github.com/inkwell-api/inkwell/internal/auth"
	"github.com/inkwell-api/inkwell/internal/authz"
	"github.com/inkwell-api/inkwell/internal/config"
	"github.com/inkwell-api/inkwell/internal/models"
	"github.com/inkwell-api/inkwell/internal/store"
)

// Server binds together the configuration, content store, credential
// verification, and enforcement gates behind the HTTP surface.
type Server struct {
	cfg         *config.Config
	store       *store.Store
	tokens      *auth.TokenManager
	credentials *auth.CredentialStore
	resolver    *auth.Resolver
	gates       *authz.Gates
	auditLogger *audit.Logger
	startedAt   time.Time
}

// NewServer constructs the API server. tokens may be nil when auth mode is
// "none"; auditLogger may be nil to disable audit records.
func NewServer(cfg *config.Config, contentStore *store.Store, tokens *auth.TokenManager, auditLogger *audit.Logger) *Server {
	s := &Server{
		cfg:         cfg,
		store:       contentStore,
		tokens:      tokens,
		credentials: auth.NewCredentialStore(cfg.Security.Users),
		resolver:    auth.NewResolver(tokens, cfg.Security.AuthMode),
		gates:       authz.NewGates(auditLogger),
		auditLogger: auditLogger,
		startedAt:   time.Now().UTC(),
	}

	s.seedProfiles()
	return s
}

// seedProfiles creates a profile record for each configured user so
// profile routes work out of the box.
func (s *Server) seedProfiles() {
	for _, u := range s.cfg.Security.Users {
		s.store.UpsertProfile(models.Profile{
			UserID:      u.ID,
			Email:       u.Email,
			DisplayName: u.Username,
			Role:        u.Role,
		})
	}
}
