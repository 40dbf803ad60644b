// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

// Package api provides Inkwell's HTTP surface: the Chi router, content and
// account handlers, and the standardized JSON response envelope.
//
// Every route is guarded by the authz gates appropriate to its operation;
// handlers themselves contain no authorization logic beyond what the gates
// enforce. Delete-shaped routes are mounted solely so ForbidHardDelete can
// refuse them explicitly instead of returning 404.
package api
