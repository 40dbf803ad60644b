// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

// This file implements the token revocation denylist. Logout revokes a
// token by jti; verification consults the denylist before trusting claims.
// Entries expire with the token they revoke, so the store stays bounded.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/inkwell-api/inkwell/internal/config"
	"github.com/inkwell-api/inkwell/internal/logging"
)

// Revocation metrics
var (
	// RevocationStoreOperationsTotal counts denylist operations.
	RevocationStoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_revocation_store_operations_total",
			Help: "Total number of token revocation store operations",
		},
		[]string{"operation", "outcome"}, // operation: check, revoke, cleanup; outcome: success, failure
	)

	// RevokedTokenRejectionsTotal counts requests rejected because their
	// token was on the denylist.
	RevokedTokenRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_revoked_token_rejections_total",
			Help: "Total number of requests rejected due to a revoked token",
		},
	)

	// RevocationStoreSize tracks the current number of denylisted tokens.
	RevocationStoreSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "auth_revocation_store_size",
			Help: "Current number of tokens on the revocation denylist",
		},
	)

	// RevocationsCleanedUpTotal counts entries removed during cleanup.
	RevocationsCleanedUpTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_revocations_cleaned_up_total",
			Help: "Total number of expired revocation entries cleaned up",
		},
	)
)

// ErrRevocationStoreClosed indicates the store has been closed.
var ErrRevocationStoreClosed = errors.New("revocation store is closed")

// RevokedToken is one denylist entry.
type RevokedToken struct {
	// JTI is the unique token identifier.
	JTI string `json:"jti"`

	// Subject is the user the token belonged to.
	Subject string `json:"sub"`

	// RevokedAt is when the token was revoked.
	RevokedAt time.Time `json:"revoked_at"`

	// ExpiresAt is when the entry expires (the token's own expiry; replay
	// after that point is impossible anyway).
	ExpiresAt time.Time `json:"expires_at"`
}

// RevocationStore is the token denylist consulted during verification.
type RevocationStore interface {
	// Revoke adds a token to the denylist until ttl elapses.
	Revoke(ctx context.Context, entry *RevokedToken, ttl time.Duration) error

	// IsRevoked reports whether a jti is on the denylist.
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// CleanupExpired removes expired entries and returns how many were
	// removed.
	CleanupExpired(ctx context.Context) (int, error)

	// Size returns the approximate number of entries in the store.
	Size(ctx context.Context) (int, error)

	// Close closes the store and releases resources.
	Close() error
}

// MemoryRevocationStore is an in-memory denylist. Entries are lost on
// restart, acceptable for development; production uses the Badger store.
type MemoryRevocationStore struct {
	mu      sync.RWMutex
	entries map[string]*RevokedToken
	closed  bool
}

// NewMemoryRevocationStore creates a new in-memory revocation store.
func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{
		entries: make(map[string]*RevokedToken),
	}
}

// Revoke adds a token to the denylist.
func (s *MemoryRevocationStore) Revoke(_ context.Context, entry *RevokedToken, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		RevocationStoreOperationsTotal.WithLabelValues("revoke", "failure").Inc()
		return ErrRevocationStoreClosed
	}

	entry.RevokedAt = time.Now()
	entry.ExpiresAt = time.Now().Add(ttl)
	s.entries[entry.JTI] = entry

	RevocationStoreOperationsTotal.WithLabelValues("revoke", "success").Inc()
	RevocationStoreSize.Set(float64(len(s.entries)))
	return nil
}

// IsRevoked reports whether a jti is denylisted and unexpired.
func (s *MemoryRevocationStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, ErrRevocationStoreClosed
	}

	entry, ok := s.entries[jti]
	if !ok {
		RevocationStoreOperationsTotal.WithLabelValues("check", "success").Inc()
		return false, nil
	}
	if time.Now().After(entry.ExpiresAt) {
		RevocationStoreOperationsTotal.WithLabelValues("check", "success").Inc()
		return false, nil
	}

	RevocationStoreOperationsTotal.WithLabelValues("check", "success").Inc()
	RevokedTokenRejectionsTotal.Inc()
	return true, nil
}

// CleanupExpired removes expired entries.
func (s *MemoryRevocationStore) CleanupExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrRevocationStoreClosed
	}

	count := 0
	now := time.Now()
	for jti, entry := range s.entries {
		if now.After(entry.ExpiresAt) {
			delete(s.entries, jti)
			count++
		}
	}

	RevocationStoreOperationsTotal.WithLabelValues("cleanup", "success").Inc()
	RevocationsCleanedUpTotal.Add(float64(count))
	RevocationStoreSize.Set(float64(len(s.entries)))
	return count, nil
}

// Size returns the number of entries.
func (s *MemoryRevocationStore) Size(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, ErrRevocationStoreClosed
	}
	return len(s.entries), nil
}

// Close closes the store.
func (s *MemoryRevocationStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.entries = nil
	return nil
}

// BadgerRevocationStore is a BadgerDB-backed denylist that survives
// restarts, so a revoked token stays revoked across deploys.
type BadgerRevocationStore struct {
	db      *badger.DB
	prefix  []byte
	ownsDB  bool
	closed  bool
	closeMu sync.RWMutex
}

// NewBadgerRevocationStore wraps an existing BadgerDB instance. The db is
// shared and not closed by Close.
func NewBadgerRevocationStore(db *badger.DB, prefix string) *BadgerRevocationStore {
	if prefix == "" {
		prefix = "revoked:"
	}
	return &BadgerRevocationStore{
		db:     db,
		prefix: []byte(prefix),
	}
}

// OpenBadgerRevocationStore opens a BadgerDB at path dedicated to the
// denylist. The returned store owns the database and closes it on Close.
func OpenBadgerRevocationStore(path string) (*BadgerRevocationStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	store := NewBadgerRevocationStore(db, "")
	store.ownsDB = true
	return store, nil
}

func (s *BadgerRevocationStore) makeKey(jti string) []byte {
	return append(s.prefix, []byte(jti)...)
}

func (s *BadgerRevocationStore) isClosed() bool {
	s.closeMu.RLock()
	defer s.closeMu.RUnlock()
	return s.closed
}

// Revoke adds a token to the denylist with a matching BadgerDB TTL.
func (s *BadgerRevocationStore) Revoke(_ context.Context, entry *RevokedToken, ttl time.Duration) error {
	if s.isClosed() {
		RevocationStoreOperationsTotal.WithLabelValues("revoke", "failure").Inc()
		return ErrRevocationStoreClosed
	}

	entry.RevokedAt = time.Now()
	entry.ExpiresAt = time.Now().Add(ttl)

	err := s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		e := badger.NewEntry(s.makeKey(entry.JTI), data).WithTTL(ttl)
		return txn.SetEntry(e)
	})
	if err != nil {
		RevocationStoreOperationsTotal.WithLabelValues("revoke", "failure").Inc()
		return err
	}

	RevocationStoreOperationsTotal.WithLabelValues("revoke", "success").Inc()
	return nil
}

// IsRevoked reports whether a jti is denylisted and unexpired.
func (s *BadgerRevocationStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	if s.isClosed() {
		return false, ErrRevocationStoreClosed
	}

	var revoked bool
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.makeKey(jti))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var entry RevokedToken
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &entry); err != nil {
				return err
			}
			revoked = time.Now().Before(entry.ExpiresAt)
			return nil
		})
	})
	if err != nil {
		RevocationStoreOperationsTotal.WithLabelValues("check", "failure").Inc()
		return false, err
	}

	RevocationStoreOperationsTotal.WithLabelValues("check", "success").Inc()
	if revoked {
		RevokedTokenRejectionsTotal.Inc()
	}
	return revoked, nil
}

// CleanupExpired removes expired entries. BadgerDB drops expired keys
// during compaction on its own; this forces an explicit sweep.
func (s *BadgerRevocationStore) CleanupExpired(_ context.Context) (int, error) {
	if s.isClosed() {
		return 0, ErrRevocationStoreClosed
	}

	count := 0
	now := time.Now()

	err := s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = s.prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		var keysToDelete [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			var entry RevokedToken
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				continue
			}

			if now.After(entry.ExpiresAt) {
				key := make([]byte, len(item.Key()))
				copy(key, item.Key())
				keysToDelete = append(keysToDelete, key)
			}
		}

		for _, key := range keysToDelete {
			if err := txn.Delete(key); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		RevocationStoreOperationsTotal.WithLabelValues("cleanup", "failure").Inc()
		return count, err
	}

	RevocationStoreOperationsTotal.WithLabelValues("cleanup", "success").Inc()
	RevocationsCleanedUpTotal.Add(float64(count))
	return count, nil
}

// Size returns the approximate number of entries.
func (s *BadgerRevocationStore) Size(_ context.Context) (int, error) {
	if s.isClosed() {
		return 0, ErrRevocationStoreClosed
	}

	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = s.prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})

	RevocationStoreSize.Set(float64(count))
	return count, err
}

// Close closes the store, and the underlying database when owned.
func (s *BadgerRevocationStore) Close() error {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}

// NewRevocationStore builds the denylist backend selected by configuration.
func NewRevocationStore(cfg *config.SecurityConfig) (RevocationStore, error) {
	switch cfg.RevocationStore {
	case "badger":
		return OpenBadgerRevocationStore(cfg.RevocationStorePath)
	default:
		return NewMemoryRevocationStore(), nil
	}
}

// StartCleanupRoutine periodically sweeps expired entries until the
// returned channel is closed.
func StartCleanupRoutine(store RevocationStore, interval time.Duration) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				count, err := store.CleanupExpired(ctx)
				cancel()

				if err != nil {
					logging.Error().Err(err).Msg("Revocation cleanup failed")
				} else if count > 0 {
					logging.Debug().Int("count", count).Msg("Revocation cleanup completed")
				}

			case <-done:
				return
			}
		}
	}()

	return done
}
