package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapi/database"
	"todoapi/database/model"
	"todoapi/repository"
	"todoapi/web/middleware"
	"todoapi/web/service"
)

func setupEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.InitDB(dbPath))
	t.Cleanup(func() { _ = database.CloseDB() })

	store := repository.NewStore(database.GetDB())
	authService := service.NewAuthService(store)
	todoService := service.NewTodoService(store)
	userService := service.NewUserAdminService(store)

	engine := gin.New()
	api := engine.Group("/api")
	NewAuthController(api.Group("/auth"), authService)
	todos := api.Group("/todos")
	todos.Use(middleware.AuthRequired(authService))
	NewTodoController(todos, todoService)
	NewUserAdminController(api, authService, userService)

	return engine
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func registerAndLogin(t *testing.T, engine *gin.Engine, username string) string {
	t.Helper()
	w, env := doJSON(t, engine, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"password": "securePassword123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string      `json:"token"`
		User  *model.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestTodoLifecycleOverHTTP(t *testing.T) {
	engine := setupEngine(t)
	token := registerAndLogin(t, engine, "jane_doe")

	// Create.
	w, env := doJSON(t, engine, http.MethodPost, "/api/todos", token, gin.H{
		"title": "Test TODO",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	var created model.Todo
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.False(t, created.Completed)
	require.NotZero(t, created.Id)

	// Complete via partial update.
	w, env = doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/todos/%d", created.Id), token, gin.H{
		"completed": true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated model.Todo
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.True(t, updated.Completed)
	assert.Equal(t, "Test TODO", updated.Title)

	// Delete, then the owner sees 404.
	w, _ = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/api/todos/%d", created.Id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/todos/%d", created.Id), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}

func TestRegisterScenario(t *testing.T) {
	engine := setupEngine(t)

	w, env := doJSON(t, engine, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "jane_doe",
		"password": "securePassword123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string      `json:"token"`
		User  *model.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, model.DefaultRole, resp.User.Role)

	// The hash never leaks through serialization.
	assert.NotContains(t, string(env.Data), "password")

	w, env = doJSON(t, engine, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "jane_doe",
		"password": "anotherPassword",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
}

func TestValidationAndStateErrorsOverHTTP(t *testing.T) {
	engine := setupEngine(t)
	token := registerAndLogin(t, engine, "jane_doe")

	// Empty body fails binding.
	w, _ := doJSON(t, engine, http.MethodPost, "/api/todos", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Double-complete is a conflict.
	w, env := doJSON(t, engine, http.MethodPost, "/api/todos", token, gin.H{"title": "once"})
	require.Equal(t, http.StatusOK, w.Code)
	var created model.Todo
	require.NoError(t, json.Unmarshal(env.Data, &created))

	w, _ = doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/todos/%d", created.Id), token, gin.H{"completed": true})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/todos/%d", created.Id), token, gin.H{"completed": true})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthIsRequired(t *testing.T) {
	engine := setupEngine(t)

	w, _ := doJSON(t, engine, http.MethodGet, "/api/todos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, engine, http.MethodGet, "/api/todos", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestForeignTodoIsNotFound(t *testing.T) {
	engine := setupEngine(t)
	janeToken := registerAndLogin(t, engine, "jane_doe")
	bobToken := registerAndLogin(t, engine, "bob")

	w, env := doJSON(t, engine, http.MethodPost, "/api/todos", janeToken, gin.H{"title": "private"})
	require.Equal(t, http.StatusOK, w.Code)
	var created model.Todo
	require.NoError(t, json.Unmarshal(env.Data, &created))

	// Bob cannot learn whether the id exists.
	w, _ = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/todos/%d", created.Id), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/api/todos/%d", created.Id), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserRoutesAreRoleGated(t *testing.T) {
	engine := setupEngine(t)
	ordinaryToken := registerAndLogin(t, engine, "ordinary")

	// An ordinary user may read their own profile but not the user list.
	w, env := doJSON(t, engine, http.MethodGet, "/api/me", ordinaryToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me model.User
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "ordinary", me.Username)

	w, _ = doJSON(t, engine, http.MethodGet, "/api/users", ordinaryToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The bootstrap admin may.
	w, env = doJSON(t, engine, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "admin",
		"password": "admin",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))

	w, _ = doJSON(t, engine, http.MethodGet, "/api/users", resp.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
