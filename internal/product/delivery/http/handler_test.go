package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/freshmarket/marketplace/internal/product/repository"
	"github.com/freshmarket/marketplace/internal/product/usecase/command"
	"github.com/freshmarket/marketplace/internal/product/usecase/query"
	userhttp "github.com/freshmarket/marketplace/internal/user/delivery/http"
	userdomain "github.com/freshmarket/marketplace/internal/user/domain"
	userrepository "github.com/freshmarket/marketplace/internal/user/repository"
	"github.com/freshmarket/marketplace/pkg/auth"
)

func TestProductAPI(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	userRepo := userrepository.NewGormUserRepository(db)
	require.NoError(t, userRepo.AutoMigrate())

	repo := repository.NewGormProductRepository(db)
	require.NoError(t, repo.AutoMigrate())

	handler := NewProductHandler(Handlers{
		Create:     command.NewCreateProductHandler(repo, nil),
		Update:     command.NewUpdateProductHandler(repo, nil),
		Delete:     command.NewDeleteProductHandler(repo, nil),
		Get:        query.NewGetProductHandler(repo),
		List:       query.NewListProductsHandler(repo, nil),
		Categories: query.NewListCategoriesHandler(repo, nil),
	})

	router := mux.NewRouter()
	handler.RegisterRoutes(router, userhttp.NewGate(userRepo))

	makeUser := func(username, role string) string {
		now := time.Now()
		user := &userdomain.User{
			Email:        username + "@example.com",
			Username:     username,
			Name:         "User " + username,
			Role:         role,
			PasswordHash: "hash",
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		require.NoError(t, userRepo.Create(user))

		token, err := auth.GenerateToken(user.ID, user.Username, user.Role)
		require.NoError(t, err)
		return token
	}

	adminToken := makeUser("admin", userdomain.RoleAdmin)
	clienteToken := makeUser("cliente", userdomain.RoleCliente)

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

	var productID uint

	t.Run("create is admin only", func(t *testing.T) {
		body := map[string]interface{}{
			"name":     "Alface Americana",
			"category": "verduras",
			"price":    4.5,
			"unit":     "unidade",
			"stock":    150,
			"minOrder": 5,
		}

		rec := do(http.MethodPost, "/api/products", clienteToken, body)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = do(http.MethodPost, "/api/products", "", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = do(http.MethodPost, "/api/products", adminToken, body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var created struct {
			ID uint `json:"id"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		productID = created.ID
	})

	t.Run("public listing and get", func(t *testing.T) {
		rec := do(http.MethodGet, "/api/products", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Alface Americana")

		rec = do(http.MethodGet, fmt.Sprintf("/api/products/%d", productID), "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = do(http.MethodGet, "/api/products/abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = do(http.MethodGet, "/api/products/9999", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("categories", func(t *testing.T) {
		rec := do(http.MethodGet, "/api/products/categories/list", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var categories []string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
		assert.Equal(t, []string{"verduras"}, categories)
	})

	t.Run("partial update", func(t *testing.T) {
		rec := do(http.MethodPut, fmt.Sprintf("/api/products/%d", productID), adminToken, map[string]interface{}{
			"price": 5.0,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"price":5`)
		assert.Contains(t, rec.Body.String(), "Alface Americana")
	})

	t.Run("delete hides from public reads", func(t *testing.T) {
		rec := do(http.MethodDelete, fmt.Sprintf("/api/products/%d", productID), adminToken, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = do(http.MethodGet, fmt.Sprintf("/api/products/%d", productID), "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = do(http.MethodGet, "/api/products", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "Alface Americana")
	})
}
