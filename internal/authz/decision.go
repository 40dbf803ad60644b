// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package authz

// Decision functions are pure and total: they never block, never touch
// storage, and never error for an ordinary "no". Gates translate a false
// return into a denial response.

// HasPermission reports whether role holds the capability in the matrix.
func HasPermission(role Role, c Capability) bool {
	return PermissionsFor(role).Has(c)
}

// MeetsMinimumRole reports whether role is at least as privileged as
// required. Unknown roles rank below guest and fail every check.
func MeetsMinimumRole(role, required Role) bool {
	return role.Rank() >= required.Rank() && role.Rank() >= 0
}

// IsOwner reports whether actorID identifies the resource owner. An empty
// actor id never owns anything, even against an empty owner id, so an
// anonymous caller cannot own an orphaned resource.
func IsOwner(actorID, resourceOwnerID string) bool {
	return actorID != "" && actorID == resourceOwnerID
}

// CanModify reports whether actor may modify a resource owned by
// resourceOwnerID: owners always may, admins always may, nobody else.
func CanModify(actor *Actor, resourceOwnerID string) bool {
	if actor == nil {
		return false
	}
	return IsOwner(actor.ID, resourceOwnerID) || actor.Role == RoleAdmin
}

// IsAdmin reports whether actor holds the admin role.
func IsAdmin(actor *Actor) bool {
	return actor != nil && actor.Role == RoleAdmin
}
