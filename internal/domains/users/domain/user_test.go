package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewUserHashesPassword(t *testing.T) {
	user, err := NewUser(1, " Admin User ", "A@JWT.com", "Admin", bcrypt.MinCost, RoleAssignment{Role: RoleAdmin})
	require.NoError(t, err)

	assert.Equal(t, "Admin User", user.Name)
	assert.Equal(t, "a@jwt.com", user.Email)
	assert.NotEqual(t, "Admin", user.PasswordHash)
	assert.True(t, user.CheckPassword("Admin"))
	assert.False(t, user.CheckPassword("admin"))
	assert.True(t, user.IsAdmin())
}

func TestNewUserRejectsInvalidInput(t *testing.T) {
	_, err := NewUser(1, "", "a@jwt.com", "pw", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewUser(1, "Kai", "nope", "pw", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = NewUser(1, "Kai", "d@jwt.com", "", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrEmptyPassword)

	_, err = NewUser(1, "Kai", "d@jwt.com", "a", bcrypt.MinCost, RoleAssignment{Role: "chef"})
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestCloneCopiesRoles(t *testing.T) {
	user := &User{ID: 2, Roles: []RoleAssignment{{Role: RoleFranchisee, ObjectID: 2}}}
	clone := user.Clone()
	clone.Roles[0].ObjectID = 9
	assert.Equal(t, int64(2), user.Roles[0].ObjectID)
}

func TestRoleTitleAndParse(t *testing.T) {
	assert.Equal(t, "Franchisee", RoleFranchisee.Title())
	role, err := ParseRole("Admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)
	_, err = ParseRole("owner")
	assert.ErrorIs(t, err, ErrUnknownRole)
}
