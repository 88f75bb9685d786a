package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapi/database"
	"todoapi/database/model"
	"todoapi/repository"
)

func setupStore(t *testing.T) repository.Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.InitDB(dbPath))
	t.Cleanup(func() { _ = database.CloseDB() })
	return repository.NewStore(database.GetDB())
}

func TestRegisterIssuesTokenAndDefaultsRole(t *testing.T) {
	store := setupStore(t)
	auth := NewAuthService(store)

	token, user, err := auth.Register(RegisterInput{
		Username: "jane_doe",
		Password: "securePassword123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotZero(t, user.Id)
	assert.Equal(t, model.DefaultRole, user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "securePassword123", user.PasswordHash)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.Id, claims.UserId)
	assert.Equal(t, user.Role, claims.Role)
	assert.Equal(t, "jane_doe", claims.Subject)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	store := setupStore(t)
	auth := NewAuthService(store)

	_, _, err := auth.Register(RegisterInput{Username: "jane_doe", Password: "pw1"})
	require.NoError(t, err)

	_, _, err = auth.Register(RegisterInput{Username: "jane_doe", Password: "pw2"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestRegisterValidatesInput(t *testing.T) {
	store := setupStore(t)
	auth := NewAuthService(store)

	var validationErr *model.ValidationError

	_, _, err := auth.Register(RegisterInput{Username: "jane_doe", Password: ""})
	assert.ErrorAs(t, err, &validationErr)

	_, _, err = auth.Register(RegisterInput{Username: "", Password: "pw"})
	assert.ErrorAs(t, err, &validationErr)
}

func TestLogin(t *testing.T) {
	store := setupStore(t)
	auth := NewAuthService(store)

	_, registered, err := auth.Register(RegisterInput{Username: "jane_doe", Password: "pw"})
	require.NoError(t, err)

	token, user, err := auth.Login("jane_doe", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.Id, user.Id)

	// Unknown username and wrong password surface the same error.
	_, _, err = auth.Login("jane_doe", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = auth.Login("nobody", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	store := setupStore(t)
	auth := NewAuthService(store)

	_, err := auth.ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
