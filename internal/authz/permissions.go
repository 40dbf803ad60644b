// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package authz

import "fmt"

// Capability names one permission bit: a resource type paired with an
// operation kind, plus the profile-scope and user-deletion bits.
type Capability string

// The seventeen capabilities, one per matrix column.
const (
	CapGetArticles    Capability = "canGetArticles"
	CapCreateArticles Capability = "canCreateArticles"
	CapUpdateArticles Capability = "canUpdateArticles"
	CapDeleteArticles Capability = "canDeleteArticles"

	CapGetComments    Capability = "canGetComments"
	CapCreateComments Capability = "canCreateComments"
	CapUpdateComments Capability = "canUpdateComments"
	CapDeleteComments Capability = "canDeleteComments"

	CapGetLikes    Capability = "canGetLikes"
	CapCreateLikes Capability = "canCreateLikes"
	CapUpdateLikes Capability = "canUpdateLikes"
	CapDeleteLikes Capability = "canDeleteLikes"

	CapGetOwnProfile     Capability = "canGetOwnProfile"
	CapUpdateOwnProfile  Capability = "canUpdateOwnProfile"
	CapGetAllProfiles    Capability = "canGetAllProfiles"
	CapUpdateAllProfiles Capability = "canUpdateAllProfiles"

	CapDeleteUsers Capability = "canDeleteUsers"
)

// AllCapabilities lists every capability in matrix order.
var AllCapabilities = []Capability{
	CapGetArticles, CapCreateArticles, CapUpdateArticles, CapDeleteArticles,
	CapGetComments, CapCreateComments, CapUpdateComments, CapDeleteComments,
	CapGetLikes, CapCreateLikes, CapUpdateLikes, CapDeleteLikes,
	CapGetOwnProfile, CapUpdateOwnProfile, CapGetAllProfiles, CapUpdateAllProfiles,
	CapDeleteUsers,
}

// PermissionSet is an immutable record of every capability for one role.
// The zero value grants nothing. JSON tags match the capability names so
// the introspection endpoint serializes the set verbatim.
type PermissionSet struct {
	CanGetArticles    bool `json:"canGetArticles"`
	CanCreateArticles bool `json:"canCreateArticles"`
	CanUpdateArticles bool `json:"canUpdateArticles"`
	CanDeleteArticles bool `json:"canDeleteArticles"`

	CanGetComments    bool `json:"canGetComments"`
	CanCreateComments bool `json:"canCreateComments"`
	CanUpdateComments bool `json:"canUpdateComments"`
	CanDeleteComments bool `json:"canDeleteComments"`

	CanGetLikes    bool `json:"canGetLikes"`
	CanCreateLikes bool `json:"canCreateLikes"`
	CanUpdateLikes bool `json:"canUpdateLikes"`
	CanDeleteLikes bool `json:"canDeleteLikes"`

	CanGetOwnProfile     bool `json:"canGetOwnProfile"`
	CanUpdateOwnProfile  bool `json:"canUpdateOwnProfile"`
	CanGetAllProfiles    bool `json:"canGetAllProfiles"`
	CanUpdateAllProfiles bool `json:"canUpdateAllProfiles"`

	CanDeleteUsers bool `json:"canDeleteUsers"`
}

// Has reports whether the set grants c. Unknown capabilities are never
// granted.
func (p PermissionSet) Has(c Capability) bool {
	switch c {
	case CapGetArticles:
		return p.CanGetArticles
	case CapCreateArticles:
		return p.CanCreateArticles
	case CapUpdateArticles:
		return p.CanUpdateArticles
	case CapDeleteArticles:
		return p.CanDeleteArticles
	case CapGetComments:
		return p.CanGetComments
	case CapCreateComments:
		return p.CanCreateComments
	case CapUpdateComments:
		return p.CanUpdateComments
	case CapDeleteComments:
		return p.CanDeleteComments
	case CapGetLikes:
		return p.CanGetLikes
	case CapCreateLikes:
		return p.CanCreateLikes
	case CapUpdateLikes:
		return p.CanUpdateLikes
	case CapDeleteLikes:
		return p.CanDeleteLikes
	case CapGetOwnProfile:
		return p.CanGetOwnProfile
	case CapUpdateOwnProfile:
		return p.CanUpdateOwnProfile
	case CapGetAllProfiles:
		return p.CanGetAllProfiles
	case CapUpdateAllProfiles:
		return p.CanUpdateAllProfiles
	case CapDeleteUsers:
		return p.CanDeleteUsers
	default:
		return false
	}
}

// rolePermissions is the product decision encoded in this engine. Each
// role's row is spelled out explicitly rather than derived from rank:
// author is "reader plus article authorship", not a hierarchy recomputation,
// and admin is everything except deletes. Every delete capability is false
// in every row; hard delete happens through no role.
var rolePermissions = map[Role]PermissionSet{
	RoleGuest: {
		CanGetArticles: true,
	},
	RoleReader: {
		CanGetArticles:      true,
		CanGetComments:      true,
		CanCreateComments:   true,
		CanUpdateComments:   true,
		CanGetLikes:         true,
		CanCreateLikes:      true,
		CanUpdateLikes:      true,
		CanGetOwnProfile:    true,
		CanUpdateOwnProfile: true,
	},
	RoleAuthor: {
		CanGetArticles:      true,
		CanCreateArticles:   true,
		CanUpdateArticles:   true,
		CanGetComments:      true,
		CanCreateComments:   true,
		CanUpdateComments:   true,
		CanGetLikes:         true,
		CanCreateLikes:      true,
		CanUpdateLikes:      true,
		CanGetOwnProfile:    true,
		CanUpdateOwnProfile: true,
	},
	RoleAdmin: {
		CanGetArticles:       true,
		CanCreateArticles:    true,
		CanUpdateArticles:    true,
		CanGetComments:       true,
		CanCreateComments:    true,
		CanUpdateComments:    true,
		CanGetLikes:          true,
		CanCreateLikes:       true,
		CanUpdateLikes:       true,
		CanGetOwnProfile:     true,
		CanUpdateOwnProfile:  true,
		CanGetAllProfiles:    true,
		CanUpdateAllProfiles: true,
	},
}

func init() {
	if err := validateMatrix(); err != nil {
		panic(err)
	}
}

// validateMatrix checks the matrix invariants once at startup. A violation
// is a build-time defect in this file, so it is fatal rather than a
// per-request error path.
func validateMatrix() error {
	for _, role := range ValidRoles {
		perms, ok := rolePermissions[role]
		if !ok {
			return fmt.Errorf("authz: permission matrix missing role %q", role)
		}
		if perms.CanDeleteArticles || perms.CanDeleteComments || perms.CanDeleteLikes || perms.CanDeleteUsers {
			return fmt.Errorf("authz: permission matrix grants a delete capability to role %q", role)
		}
	}
	if len(rolePermissions) != len(ValidRoles) {
		return fmt.Errorf("authz: permission matrix has %d roles, want %d", len(rolePermissions), len(ValidRoles))
	}
	return nil
}

// PermissionsFor returns the capability record for role. The matrix is
// total over the closed role set; an unknown role gets the empty set, which
// grants nothing.
func PermissionsFor(role Role) PermissionSet {
	return rolePermissions[role]
}
