// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

// Package authz implements Inkwell's authorization engine: the closed
// four-role model, the static permission matrix, pure decision functions,
// and the composable enforcement gates mounted as HTTP middleware.
//
// The engine evaluates caller-supplied facts only. It never reaches into
// storage; ownership checks receive the resource owner id from the caller.
// All evaluation is non-blocking pure computation over process-wide
// immutable constants, so concurrent requests need no coordination.
//
// Two independent mechanisms forbid hard deletes: every delete capability
// in the permission matrix is false for every role, and the ForbidHardDelete
// gate refuses delete-shaped operations categorically. Both layers are kept
// deliberately; do not collapse them.
package authz
