// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/inkwell-api/inkwell/internal/config"
	"github.com/inkwell-api/inkwell/internal/logging"
)

// Claims are the verified token claims consumed by the identity resolver.
// The user id travels in the registered Subject claim; the token id (ID)
// keys the revocation denylist.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// ErrTokenRevoked indicates the token's jti is on the denylist.
var ErrTokenRevoked = errors.New("token has been revoked")

// TokenManager issues and verifies HS256 bearer tokens.
//
// Verification is comprehensive: signature, algorithm (pinned to HMAC to
// prevent algorithm confusion), expiry, not-before, and a revocation check
// against the denylist. The revocation lookup is bounded by the configured
// timeout; on timeout the token is treated as invalid (fails closed to
// anonymous, never to elevated privilege).
type TokenManager struct {
	secret          []byte
	ttl             time.Duration
	revocations     RevocationStore
	revocationCheck time.Duration
}

// NewTokenManager creates a token manager from the security configuration.
// revocations may be nil to disable denylist checks (tests only).
func NewTokenManager(cfg *config.SecurityConfig, revocations RevocationStore) (*TokenManager, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters (got %d)", len(cfg.JWTSecret))
	}

	checkTimeout := cfg.RevocationCheckTimeout
	if checkTimeout <= 0 {
		checkTimeout = 500 * time.Millisecond
	}

	return &TokenManager{
		secret:          []byte(cfg.JWTSecret),
		ttl:             cfg.TokenTTL,
		revocations:     revocations,
		revocationCheck: checkTimeout,
	}, nil
}

// IssueToken signs a new token for the given user. Each token carries a
// unique jti so it can be individually revoked at logout.
func (m *TokenManager) IssueToken(userID, email string, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken validates a token string and returns its claims. Any failure
// (parse, signature, expiry, revocation, denylist timeout) yields an error;
// callers must treat the request as anonymous, never trust partial claims.
func (m *TokenManager) VerifyToken(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	if err := m.checkRevocation(ctx, claims.ID); err != nil {
		return nil, err
	}

	return claims, nil
}

// checkRevocation consults the denylist with a bounded timeout. The lookup
// is the only suspension point in credential verification.
func (m *TokenManager) checkRevocation(ctx context.Context, jti string) error {
	if m.revocations == nil || jti == "" {
		return nil
	}

	checkCtx, cancel := context.WithTimeout(ctx, m.revocationCheck)
	defer cancel()

	revoked, err := m.revocations.IsRevoked(checkCtx, jti)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Revocation check failed, treating token as invalid")
		return fmt.Errorf("revocation check failed: %w", err)
	}
	if revoked {
		return ErrTokenRevoked
	}
	return nil
}

// RevokeToken places a verified token's jti on the denylist for the
// remainder of the token's lifetime. Used by logout.
func (m *TokenManager) RevokeToken(ctx context.Context, claims *Claims) error {
	if m.revocations == nil {
		return nil
	}

	ttl := m.ttl
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			ttl = remaining
		}
	}

	return m.revocations.Revoke(ctx, &RevokedToken{
		JTI:     claims.ID,
		Subject: claims.Subject,
	}, ttl)
}

// TTL returns the configured token lifetime.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}
