// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

// Package config provides layered configuration for Inkwell using Koanf v2.
//
// Configuration is loaded from three sources, highest priority last:
//  1. Built-in defaults
//  2. YAML config file (CONFIG_PATH or the default search paths)
//  3. Environment variables
//
// The credential table (security.users) can only be provided via the YAML
// file; everything else is overridable from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/inkwell-api/inkwell/internal/authz"
)

// Config is the root configuration for the Inkwell server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Environment is "development" or "production". Production enables
	// stricter validation (auth required, no plaintext-friendly modes).
	Environment string `koanf:"environment"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds authentication and authorization settings.
type SecurityConfig struct {
	// AuthMode is "jwt" (default) or "none". With "none" every request is
	// anonymous; only guest-permitted operations succeed.
	AuthMode string `koanf:"auth_mode"`

	// JWTSecret signs and verifies HS256 bearer tokens. Minimum 32
	// characters when AuthMode is "jwt".
	JWTSecret string `koanf:"jwt_secret"`

	// TokenTTL is the lifetime of issued tokens.
	TokenTTL time.Duration `koanf:"token_ttl"`

	// RevocationStore selects the token denylist backend: "memory" or
	// "badger".
	RevocationStore string `koanf:"revocation_store"`

	// RevocationStorePath is the BadgerDB directory (revocation_store=badger).
	RevocationStorePath string `koanf:"revocation_store_path"`

	// RevocationCheckTimeout bounds the denylist lookup during token
	// verification. On timeout the token is treated as invalid and the
	// request proceeds as anonymous, never with elevated privilege.
	RevocationCheckTimeout time.Duration `koanf:"revocation_check_timeout"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// LoginRateLimitReqs applies a stricter limit to /auth/login.
	LoginRateLimitReqs   int           `koanf:"login_rate_limit_reqs"`
	LoginRateLimitWindow time.Duration `koanf:"login_rate_limit_window"`

	CORSOrigins []string `koanf:"cors_origins"`

	// Users is the static credential table served by /auth/login.
	// Passwords are bcrypt hashes, never plaintext.
	Users []UserCredential `koanf:"users"`
}

// UserCredential is one entry of the static credential table.
type UserCredential struct {
	ID           string `koanf:"id"`
	Username     string `koanf:"username"`
	Email        string `koanf:"email"`
	PasswordHash string `koanf:"password_hash"`
	Role         string `koanf:"role"`
}

// APIConfig holds API behavior settings.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction returns true when the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c != nil && c.Server.Environment == "production"
}

// Validate checks the configuration for internal consistency.
// It is called by Load; call it directly when constructing a Config by hand.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	switch c.Security.AuthMode {
	case "jwt":
		if len(c.Security.JWTSecret) < 32 {
			return fmt.Errorf("security.jwt_secret must be at least 32 characters (got %d)", len(c.Security.JWTSecret))
		}
		if c.Security.TokenTTL <= 0 {
			return fmt.Errorf("security.token_ttl must be positive")
		}
	case "none":
		if c.IsProduction() {
			return fmt.Errorf("security.auth_mode \"none\" is not allowed in production")
		}
	default:
		return fmt.Errorf("security.auth_mode %q is not supported (use \"jwt\" or \"none\")", c.Security.AuthMode)
	}

	switch c.Security.RevocationStore {
	case "memory":
	case "badger":
		if c.Security.RevocationStorePath == "" {
			return fmt.Errorf("security.revocation_store_path is required when revocation_store is \"badger\"")
		}
	default:
		return fmt.Errorf("security.revocation_store %q is not supported (use \"memory\" or \"badger\")", c.Security.RevocationStore)
	}

	if c.Security.RevocationCheckTimeout <= 0 {
		return fmt.Errorf("security.revocation_check_timeout must be positive")
	}

	seen := make(map[string]struct{}, len(c.Security.Users))
	for i, u := range c.Security.Users {
		if u.Username == "" {
			return fmt.Errorf("security.users[%d]: username is required", i)
		}
		if _, dup := seen[u.Username]; dup {
			return fmt.Errorf("security.users[%d]: duplicate username %q", i, u.Username)
		}
		seen[u.Username] = struct{}{}
		if u.ID == "" {
			return fmt.Errorf("security.users[%d] (%s): id is required", i, u.Username)
		}
		if u.PasswordHash == "" {
			return fmt.Errorf("security.users[%d] (%s): password_hash is required", i, u.Username)
		}
		if !authz.IsValidRole(authz.Role(u.Role)) {
			return fmt.Errorf("security.users[%d] (%s): unknown role %q", i, u.Username, u.Role)
		}
	}

	if c.API.DefaultPageSize < 1 || c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api page sizes invalid: default=%d max=%d", c.API.DefaultPageSize, c.API.MaxPageSize)
	}

	return nil
}
