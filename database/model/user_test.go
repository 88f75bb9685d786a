package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserValidatesUsername(t *testing.T) {
	var validationErr *ValidationError

	_, err := NewUser("", "hash", RoleUser, "tester")
	assert.ErrorAs(t, err, &validationErr)

	_, err = NewUser(strings.Repeat("u", 51), "hash", RoleUser, "tester")
	assert.ErrorAs(t, err, &validationErr)

	user, err := NewUser(strings.Repeat("u", 50), "hash", RoleUser, "tester")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, user.Role)
}

func TestNewUserDefaultsRole(t *testing.T) {
	user, err := NewUser("jane_doe", "hash", 0, "tester")
	require.NoError(t, err)
	assert.Equal(t, DefaultRole, user.Role)
	assert.False(t, user.IsAdmin())
	assert.False(t, user.CanManageUsers())
}

func TestInitializePasswordIsOneTime(t *testing.T) {
	user, err := NewUser("jane_doe", "", RoleUser, "tester")
	require.NoError(t, err)

	require.NoError(t, user.InitializePassword("hash1", "tester"))
	assert.Equal(t, "hash1", user.PasswordHash)

	var stateErr *InvalidStateError
	assert.ErrorAs(t, user.InitializePassword("hash2", "tester"), &stateErr)
	assert.Equal(t, "hash1", user.PasswordHash)
}

func TestUpdateProfileMergesOnlySuppliedFields(t *testing.T) {
	user, err := NewUser("jane_doe", "hash", RoleUser, "tester")
	require.NoError(t, err)
	first := "Jane"
	require.NoError(t, user.UpdateProfile(Profile{FirstName: &first}, "tester"))

	last := "Doe"
	require.NoError(t, user.UpdateProfile(Profile{LastName: &last}, "tester"))

	assert.Equal(t, "Jane", user.FirstName)
	assert.Equal(t, "Doe", user.LastName)
}

func TestUpdateProfileValidatesLength(t *testing.T) {
	user, err := NewUser("jane_doe", "hash", RoleUser, "tester")
	require.NoError(t, err)

	long := strings.Repeat("x", 51)
	var validationErr *ValidationError
	assert.ErrorAs(t, user.UpdateProfile(Profile{FirstName: &long}, "tester"), &validationErr)
	assert.Empty(t, user.FirstName)
}

func TestUserRoles(t *testing.T) {
	admin := &User{Role: RoleAdmin}
	manager := &User{Role: RoleManager}
	ordinary := &User{Role: DefaultRole}

	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.CanManageUsers())
	assert.False(t, manager.IsAdmin())
	assert.True(t, manager.CanManageUsers())
	assert.False(t, ordinary.CanManageUsers())
}

func TestUserDeleteIsNotRepeatable(t *testing.T) {
	user, err := NewUser("jane_doe", "hash", RoleUser, "tester")
	require.NoError(t, err)

	assert.NoError(t, user.Delete("tester"))
	var stateErr *InvalidStateError
	assert.ErrorAs(t, user.Delete("tester"), &stateErr)
	assert.True(t, user.Deleted)
}
