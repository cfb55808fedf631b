package mapper

import userdomain "github.com/Apurer/go-gin-pizza-service/internal/domains/users/domain"

// Role is the transport form of a role assignment.
type Role struct {
	Role     string `json:"role"`
	ObjectID int64  `json:"objectId,omitempty"`
}

// User is the transport-level user payload. Passwords are never emitted.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Roles []Role `json:"roles"`
}

// FromDomainUser converts a domain user into its transport representation.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	roles := make([]Role, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, Role{Role: string(r.Role), ObjectID: r.ObjectID})
	}
	return User{ID: user.ID, Name: user.Name, Email: user.Email, Roles: roles}
}

// FromDomainUsers converts a slice of domain users.
func FromDomainUsers(users []*userdomain.User) []User {
	result := make([]User, 0, len(users))
	for _, user := range users {
		result = append(result, FromDomainUser(user))
	}
	return result
}

// ToDomainRoles parses transport roles, rejecting unknown labels.
func ToDomainRoles(roles []Role) ([]userdomain.RoleAssignment, error) {
	if roles == nil {
		return nil, nil
	}
	out := make([]userdomain.RoleAssignment, 0, len(roles))
	for _, r := range roles {
		role, err := userdomain.ParseRole(r.Role)
		if err != nil {
			return nil, err
		}
		out = append(out, userdomain.RoleAssignment{Role: role, ObjectID: r.ObjectID})
	}
	return out, nil
}
