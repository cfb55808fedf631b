package domain

import "strings"

// Role labels a permission set.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleDiner      Role = "diner"
	RoleFranchisee Role = "franchisee"
)

// Valid reports whether the role is one of the known labels.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDiner, RoleFranchisee:
		return true
	}
	return false
}

// Title returns the capitalized label, e.g. "Admin".
func (r Role) Title() string {
	s := string(r)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseRole accepts any letter case.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	if !role.Valid() {
		return "", ErrUnknownRole
	}
	return role, nil
}

// RoleAssignment grants a role, optionally scoped to an object such as a franchise.
type RoleAssignment struct {
	Role     Role
	ObjectID int64
}
