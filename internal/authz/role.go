// Inkwell - Content Publishing and Community API
// Copyright 2026 Inkwell Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-api/inkwell

package authz

// Role identifies one of the four access levels in the system. The set is
// closed: anything outside ValidRoles is rejected at parse time rather than
// defaulted, so a mistyped role in a token or a config file can never gain
// unintended access.
type Role string

// The four roles, strictly ordered by privilege.
const (
	// RoleGuest is the unauthenticated caller. Guests can read published
	// articles and nothing else.
	RoleGuest Role = "guest"

	// RoleReader is an authenticated consumer: full read access plus
	// interaction (comments, likes) and their own profile.
	RoleReader Role = "reader"

	// RoleAuthor extends reader with article creation and editing.
	RoleAuthor Role = "author"

	// RoleAdmin holds every capability except hard deletes, which no role
	// has.
	RoleAdmin Role = "admin"
)

// ValidRoles enumerates the closed role set in rank order.
var ValidRoles = []Role{RoleGuest, RoleReader, RoleAuthor, RoleAdmin}

// roleRanks orders roles from least to most privileged. Rank comparisons
// drive all minimum-role checks; the matrix drives capability checks.
var roleRanks = map[Role]int{
	RoleGuest:  0,
	RoleReader: 1,
	RoleAuthor: 2,
	RoleAdmin:  3,
}

// IsValidRole reports whether r is one of the four known roles.
func IsValidRole(r Role) bool {
	_, ok := roleRanks[r]
	return ok
}

// Rank returns the privilege rank of r (guest=0 through admin=3), or -1 for
// an unknown role. Unknown roles therefore never satisfy any minimum-role
// comparison.
func (r Role) Rank() int {
	if rank, ok := roleRanks[r]; ok {
		return rank
	}
	return -1
}

// String implements fmt.Stringer.
func (r Role) String() string { return string(r) }

// ParseRole validates s against the closed role set. It returns the role and
// true on a match, or RoleGuest and false otherwise. Callers decide what a
// failed parse means for them: the identity resolver treats an unknown role
// in a token as an invalid token, while config validation treats it as a
// fatal startup error.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	if IsValidRole(r) {
		return r, true
	}
	return RoleGuest, false
}
