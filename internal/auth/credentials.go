// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell-api/inkwell/internal/config"
)

// ErrInvalidCredentials is returned for any failed login. The same error
// covers unknown usernames and wrong passwords so responses don't reveal
// which usernames exist.
var ErrInvalidCredentials = errors.New("invalid username or password")

// dummyHash is compared against when the username is unknown, so lookup
// misses cost the same as password mismatches.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// CredentialStore verifies logins against the static credential table from
// configuration. Passwords are stored as bcrypt hashes.
type CredentialStore struct {
	byUsername map[string]config.UserCredential
}

// NewCredentialStore indexes the configured users by username.
func NewCredentialStore(users []config.UserCredential) *CredentialStore {
	byUsername := make(map[string]config.UserCredential, len(users))
	for _, u := range users {
		byUsername[u.Username] = u
	}
	return &CredentialStore{byUsername: byUsername}
}

// Authenticate verifies a username/password pair and returns the matching
// credential record, or ErrInvalidCredentials.
func (s *CredentialStore) Authenticate(username, password string) (*config.UserCredential, error) {
	user, ok := s.byUsername[username]
	if !ok {
		// Burn a comparison anyway to keep timing uniform.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// Lookup returns the credential record for a user id, if present.
func (s *CredentialStore) Lookup(userID string) (*config.UserCredential, bool) {
	for _, u := range s.byUsername {
		if u.ID == userID {
			return &u, true
		}
	}
	return nil, false
}
