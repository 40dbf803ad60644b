// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/inkwell/config.yaml",
	"/etc/inkwell/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all defaults applied.
// Defaults are layered first, then overridden by file and environment.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8326,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Security: SecurityConfig{
			AuthMode:               "jwt",
			JWTSecret:              "",
			TokenTTL:               24 * time.Hour,
			RevocationStore:        "memory",
			RevocationStorePath:    "",
			RevocationCheckTimeout: 500 * time.Millisecond,
			RateLimitReqs:          100,
			RateLimitWindow:        time.Minute,
			RateLimitDisabled:      false,
			LoginRateLimitReqs:     5,
			LoginRateLimitWindow:   5 * time.Minute,
			CORSOrigins:            []string{"*"},
			Users:                  nil,
		},
		API: APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load reads configuration with layered sources (highest priority last):
// defaults, YAML config file, environment variables. The result is validated
// before being returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings maps recognized environment variables to koanf config paths.
// Unrecognized variables are ignored so unrelated process environment never
// leaks into the configuration.
var envMappings = map[string]string{
	"HTTP_HOST":                "server.host",
	"HTTP_PORT":                "server.port",
	"READ_TIMEOUT":             "server.read_timeout",
	"WRITE_TIMEOUT":            "server.write_timeout",
	"IDLE_TIMEOUT":             "server.idle_timeout",
	"SHUTDOWN_TIMEOUT":         "server.shutdown_timeout",
	"ENVIRONMENT":              "server.environment",
	"AUTH_MODE":                "security.auth_mode",
	"JWT_SECRET":               "security.jwt_secret",
	"TOKEN_TTL":                "security.token_ttl",
	"REVOCATION_STORE":         "security.revocation_store",
	"REVOCATION_STORE_PATH":    "security.revocation_store_path",
	"REVOCATION_CHECK_TIMEOUT": "security.revocation_check_timeout",
	"RATE_LIMIT_REQS":          "security.rate_limit_reqs",
	"RATE_LIMIT_WINDOW":        "security.rate_limit_window",
	"RATE_LIMIT_DISABLED":      "security.rate_limit_disabled",
	"LOGIN_RATE_LIMIT_REQS":    "security.login_rate_limit_reqs",
	"LOGIN_RATE_LIMIT_WINDOW":  "security.login_rate_limit_window",
	"CORS_ORIGINS":             "security.cors_origins",
	"DEFAULT_PAGE_SIZE":        "api.default_page_size",
	"MAX_PAGE_SIZE":            "api.max_page_size",
	"LOG_LEVEL":                "logging.level",
	"LOG_FORMAT":               "logging.format",
	"LOG_CALLER":               "logging.caller",
}

// envTransformFunc maps environment variable names to koanf config paths.
// Returning empty string drops the variable.
func envTransformFunc(key string) string {
	if path, ok := envMappings[strings.ToUpper(key)]; ok {
		return path
	}
	return ""
}

// sliceConfigPaths defines which config paths are parsed as comma-separated
// slices when sourced from the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Env vars come in as strings, but the config expects
// slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}
