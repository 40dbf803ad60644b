// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package authz

import "net/http"

// DenialCode is the stable machine-readable reason a gate rejects a
// request. Clients key off the code; the message is advisory.
type DenialCode string

const (
	// CodeMissingToken means the operation requires authentication and the
	// request carried no usable credential.
	CodeMissingToken DenialCode = "MISSING_TOKEN"

	// CodeInvalidToken means a credential was presented but failed
	// verification (bad signature, expired, revoked, or malformed claims).
	CodeInvalidToken DenialCode = "INVALID_TOKEN"

	// CodeInsufficientPermissions means the actor's role lacks the required
	// capability or minimum rank.
	CodeInsufficientPermissions DenialCode = "INSUFFICIENT_PERMISSIONS"

	// CodeForbidden means the operation is refused regardless of role:
	// failed ownership checks and categorically forbidden operations.
	CodeForbidden DenialCode = "FORBIDDEN"
)

// Denial describes one rejected request. RequiredRole and UserRole are set
// only for CodeInsufficientPermissions; disclosing the role gap is
// intentional so clients can prompt re-authentication, and discloses
// nothing about resource contents.
type Denial struct {
	Code         DenialCode
	Message      string
	RequiredRole Role
	UserRole     Role
}

// HTTPStatus maps the denial to its response status: authentication
// failures are 401, authorization failures are 403.
func (d Denial) HTTPStatus() int {
	switch d.Code {
	case CodeMissingToken, CodeInvalidToken:
		return http.StatusUnauthorized
	default:
		return http.StatusForbidden
	}
}

// DenyMissingToken builds the denial for an anonymous request hitting an
// authenticated-only operation.
func DenyMissingToken() Denial {
	return Denial{
		Code:    CodeMissingToken,
		Message: "authentication required: no credential provided",
	}
}

// DenyInvalidToken builds the denial for a credential that failed
// verification.
func DenyInvalidToken() Denial {
	return Denial{
		Code:    CodeInvalidToken,
		Message: "authentication failed: credential is invalid or expired",
	}
}

// DenyInsufficientRole builds the denial for a minimum-role check failure,
// reporting the gap between required and actual.
func DenyInsufficientRole(required, actual Role) Denial {
	return Denial{
		Code:         CodeInsufficientPermissions,
		Message:      "requires " + string(required) + " role or higher",
		RequiredRole: required,
		UserRole:     actual,
	}
}

// DenyMissingCapability builds the denial for a capability check failure.
func DenyMissingCapability(c Capability, actual Role) Denial {
	return Denial{
		Code:     CodeInsufficientPermissions,
		Message:  "role does not grant " + string(c),
		UserRole: actual,
	}
}

// DenyNotOwner builds the denial for a strict ownership check failure.
func DenyNotOwner() Denial {
	return Denial{
		Code:    CodeForbidden,
		Message: "operation is restricted to the resource owner",
	}
}

// DenyNotOwnProfile builds the denial for a profile access outside the
// actor's own profile by a non-admin.
func DenyNotOwnProfile() Denial {
	return Denial{
		Code:    CodeForbidden,
		Message: "access is restricted to your own profile",
	}
}

// DenyHardDelete builds the denial for a delete-shaped operation. No role
// can pass this gate; deletion happens through soft-delete updates.
func DenyHardDelete() Denial {
	return Denial{
		Code:    CodeForbidden,
		Message: "hard delete is not permitted; use an update to mark the resource deleted",
	}
}
