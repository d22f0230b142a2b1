package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/freshmarket/marketplace/internal/user/repository"
)

// The handler registers Prometheus collectors on construction, so the
// whole API surface is exercised through one router built once.
func TestUserAPI(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	repo := repository.NewGormUserRepository(db)
	require.NoError(t, repo.AutoMigrate())

	handler := NewUserHandler(repo)
	gate := NewGate(repo)

	router := mux.NewRouter()
	handler.RegisterRoutes(router, gate)

	do := func(method, path, token string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	register := func(username, role string) (token string, id uint) {
		rec := do(http.MethodPost, "/api/auth/register", "", map[string]string{
			"email":    username + "@example.com",
			"username": username,
			"name":     "User " + username,
			"password": "secret123",
			"role":     role,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp struct {
			AccessToken string `json:"access_token"`
			TokenType   string `json:"token_type"`
			User        struct {
				ID uint `json:"id"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "bearer", resp.TokenType)
		return resp.AccessToken, resp.User.ID
	}

	adminToken, adminID := register("admin", "admin")
	clientToken, clientID := register("cliente", "cliente")

	t.Run("login and me", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/auth/login", "", map[string]string{
			"username": "cliente",
			"password": "secret123",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			AccessToken string `json:"access_token"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		rec = do(http.MethodGet, "/api/auth/me", resp.AccessToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"username":"cliente"`)
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("login failures", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/auth/login", "", map[string]string{
			"username": "cliente",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = do(http.MethodPost, "/api/auth/login", "", map[string]string{
			"username": "ghost",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("me requires token", func(t *testing.T) {
		rec := do(http.MethodGet, "/api/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = do(http.MethodGet, "/api/auth/me", "not-a-token", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("directory is admin only", func(t *testing.T) {
		rec := do(http.MethodGet, "/api/users", clientToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = do(http.MethodGet, "/api/users", adminToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("get user by id", func(t *testing.T) {
		rec := do(http.MethodGet, fmt.Sprintf("/api/users/%d", clientID), adminToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"username":"cliente"`)

		rec = do(http.MethodGet, "/api/users/abc", adminToken, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = do(http.MethodGet, "/api/users/9999", adminToken, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("duplicate registration conflicts", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/auth/register", "", map[string]string{
			"email":    "dup@example.com",
			"username": "cliente",
			"name":     "Dup",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("self deactivation rejected", func(t *testing.T) {
		rec := do(http.MethodDelete, fmt.Sprintf("/api/users/%d", adminID), adminToken, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("deactivate user", func(t *testing.T) {
		rec := do(http.MethodDelete, fmt.Sprintf("/api/users/%d", clientID), adminToken, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		// The deactivated account can no longer log in
		rec = do(http.MethodPost, "/api/auth/login", "", map[string]string{
			"username": "cliente",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
