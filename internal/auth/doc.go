// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

// Package auth provides credential verification for Inkwell: HS256 bearer
// token issuance and validation, a revocation denylist, the static
// credential table behind /auth/login, and the identity resolver middleware
// that turns a verified token into a request-scoped actor.
//
// The package sits upstream of the authorization engine. Tokens are always
// verified (signature, expiry, revocation) before any claim is trusted;
// a request whose credential fails verification is downgraded to anonymous
// and never granted elevated privilege. Authorization decisions themselves
// live in the authz package.
package auth
