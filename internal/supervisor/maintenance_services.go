// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package supervisor

import (
	"context"
	"time"

	"github.com/inkwell-api/inkwell/internal/audit"
	"github.com/inkwell-api/inkwell/internal/auth"
	"github.com/inkwell-api/inkwell/internal/logging"
)

// RevocationSweepService periodically removes expired entries from the
// token revocation denylist.
type RevocationSweepService struct {
	store    auth.RevocationStore
	interval time.Duration
}

// NewRevocationSweepService creates the sweep service.
func NewRevocationSweepService(store auth.RevocationStore, interval time.Duration) *RevocationSweepService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &RevocationSweepService{
		store:    store,
		interval: interval,
	}
}

// Serve implements suture.Service.
func (s *RevocationSweepService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			removed, err := s.store.CleanupExpired(ctx)
			if err != nil {
				logging.Warn().Err(err).Msg("Revocation denylist sweep failed")
				continue
			}
			if removed > 0 {
				logging.Debug().Int("removed", removed).Msg("Revocation denylist sweep complete")
			}
		}
	}
}

// String implements fmt.Stringer.
func (s *RevocationSweepService) String() string {
	return "revocation-sweep"
}

// AuditRetentionService runs the audit logger's retention cleanup as a
// supervised service.
type AuditRetentionService struct {
	logger *audit.Logger
}

// NewAuditRetentionService creates the retention service.
func NewAuditRetentionService(logger *audit.Logger) *AuditRetentionService {
	return &AuditRetentionService{logger: logger}
}

// Serve implements suture.Service. StartCleanupRoutine blocks until ctx is
// canceled.
func (s *AuditRetentionService) Serve(ctx context.Context) error {
	s.logger.StartCleanupRoutine(ctx)
	return ctx.Err()
}

// String implements fmt.Stringer.
func (s *AuditRetentionService) String() string {
	return "audit-retention"
}
