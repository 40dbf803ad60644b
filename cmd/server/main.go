// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

// Package main is the entry point for the Inkwell server.
//
// Inkwell is a content publishing API with a closed role model (guest,
// reader, author, admin) enforced by HTTP middleware gates. The server
// initializes components in the following order:
//
//  1. Configuration: layered loading via Koanf v2 (defaults, YAML, env)
//  2. Logging: zerolog global logger
//  3. Revocation store: token denylist (memory or BadgerDB)
//  4. Token manager and identity resolver
//  5. Content store, seeded with profiles for configured users
//  6. Audit logger with in-memory ring store
//  7. HTTP server under Suture supervision
//
// # Configuration
//
// All settings are overridable from the environment (JWT_SECRET, AUTH_MODE,
// HTTP_PORT, and so on); the credential table (security.users) comes from
// the YAML file only. For JWT authentication (the default), JWT_SECRET must
// be at least 32 characters. AUTH_MODE "none" runs every request as
// anonymous and is rejected in production.
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the server stops accepting
// connections, in-flight requests get the configured shutdown timeout, and
// the supervisor tree drains its services.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkwell-api/inkwell/internal/api"
	"github.com/inkwell-api/inkwell/internal/audit"
	"github.com/inkwell-api/inkwell/internal/auth"
	"github.com/inkwell-api/inkwell/internal/config"
	"github.com/inkwell-api/inkwell/internal/logging"
	"github.com/inkwell-api/inkwell/internal/store"
	"github.com/inkwell-api/inkwell/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("auth_mode", cfg.Security.AuthMode).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Inkwell")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	revocations, err := auth.NewRevocationStore(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open revocation store")
	}
	defer func() {
		if err := revocations.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing revocation store")
		}
	}()

	var tokens *auth.TokenManager
	if cfg.Security.AuthMode == "jwt" {
		tokens, err = auth.NewTokenManager(&cfg.Security, revocations)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to create token manager")
		}
	} else {
		logging.Warn().Msg("Auth mode is \"none\"; all requests run as anonymous")
	}

	auditLogger := audit.NewLogger(audit.NewMemoryStore(audit.DefaultMemoryStoreCapacity), audit.DefaultConfig())
	defer func() {
		if err := auditLogger.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing audit logger")
		}
	}()

	server := api.NewServer(cfg, store.New(), tokens, auditLogger)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddMaintenanceService(supervisor.NewRevocationSweepService(revocations, 5*time.Minute))
	tree.AddMaintenanceService(supervisor.NewAuditRetentionService(auditLogger))
	tree.AddAPIService(supervisor.NewHTTPServerService(httpServer, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", httpServer.Addr).Msg("HTTP server added to supervisor tree")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Inkwell stopped")
}
