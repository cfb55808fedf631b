package domain

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyName     = errors.New("name is required")
	ErrEmptyPassword = errors.New("password is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrUnknownRole   = errors.New("unknown role")
)

// User is a registered identity of the pizza service.
type User struct {
	ID           int64
	Name         string
	Email        string
	Roles        []RoleAssignment
	PasswordHash string
}

// NewUser builds a user, hashing the password with the given bcrypt cost.
func NewUser(id int64, name, email, password string, cost int, roles ...RoleAssignment) (*User, error) {
	user := &User{ID: id}
	if err := user.SetName(name); err != nil {
		return nil, err
	}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	if err := user.SetPassword(password, cost); err != nil {
		return nil, err
	}
	if err := user.SetRoles(roles); err != nil {
		return nil, err
	}
	return user, nil
}

// SetName trims and validates the display name.
func (u *User) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	u.Name = name
	return nil
}

// SetEmail normalizes the email to lower case.
func (u *User) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// SetPassword replaces the stored hash. Cost values outside bcrypt's range fall back to the default.
func (u *User) SetPassword(password string, cost int) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares a candidate password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetRoles validates and replaces the role assignments, keeping their order.
func (u *User) SetRoles(roles []RoleAssignment) error {
	out := make([]RoleAssignment, 0, len(roles))
	for _, r := range roles {
		if !r.Role.Valid() {
			return ErrUnknownRole
		}
		out = append(out, r)
	}
	u.Roles = out
	return nil
}

// HasRole reports whether the user holds the role for any object.
func (u *User) HasRole(role Role) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// IsAdmin is shorthand for HasRole(RoleAdmin).
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// Validate re-checks invariants before persistence.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if u.PasswordHash == "" {
		return ErrEmptyPassword
	}
	for _, r := range u.Roles {
		if !r.Role.Valid() {
			return ErrUnknownRole
		}
	}
	return nil
}

// Clone returns a deep copy safe to hand across adapter boundaries.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]RoleAssignment(nil), u.Roles...)
	return &clone
}
