package domain

import (
	"fmt"
	"strings"
)

// Role is the UI variant gating navigation and dashboards. It is always
// derived from the fetched profile, never set directly.
type Role int

const (
	RoleVisitor Role = iota
	RoleClient
	RoleProvider
	RoleAdmin
)

// Role values as the backend spells them on user documents.
const (
	BackendRoleClient   = "client"
	BackendRoleProvider = "provider"
	BackendRoleAdmin    = "admin"
)

var roleNames = map[Role]string{
	RoleVisitor:  "visitor",
	RoleClient:   "client",
	RoleProvider: "provider",
	RoleAdmin:    "admin",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// MarshalText renders the role by name so JSON output stays readable.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (r *Role) UnmarshalText(text []byte) error {
	for role, name := range roleNames {
		if name == string(text) {
			*r = role
			return nil
		}
	}
	return fmt.Errorf("unknown role %q", text)
}

// Authenticated reports whether the role belongs to a signed-in user.
func (r Role) Authenticated() bool {
	return r != RoleVisitor
}

// RoleFromBackend is the single canonical mapping from the backend role field
// to a UI role: provider and admin map to themselves, everything else an
// authenticated profile can carry maps to client.
func RoleFromBackend(backendRole string) Role {
	switch strings.ToLower(strings.TrimSpace(backendRole)) {
	case BackendRoleProvider:
		return RoleProvider
	case BackendRoleAdmin:
		return RoleAdmin
	default:
		return RoleClient
	}
}

// RoleFromProfile derives the role for a possibly missing profile.
func RoleFromProfile(u *UserProfile) Role {
	if u == nil {
		return RoleVisitor
	}
	return RoleFromBackend(u.Role)
}
