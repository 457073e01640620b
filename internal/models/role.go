package models

import "fmt"

// Role is the closed set of user roles.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleCollaborator Role = "colaborador"
)

// DefaultRole is assigned when registration omits a role.
const DefaultRole = RoleCollaborator

// ParseRole converts wire input into a Role. An empty string yields DefaultRole.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "":
		return DefaultRole, nil
	case RoleAdmin, RoleCollaborator:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCollaborator:
		return true
	}
	return false
}

// IsAdmin reports whether r grants administrative access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
