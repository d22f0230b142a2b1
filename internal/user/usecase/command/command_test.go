package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/freshmarket/marketplace/internal/user/domain"
	"github.com/freshmarket/marketplace/internal/user/repository"
	"github.com/freshmarket/marketplace/pkg/apperr"
)

func setupRepo(t *testing.T) domain.UserRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	repo := repository.NewGormUserRepository(db)
	require.NoError(t, repo.AutoMigrate())

	return repo
}

func registerUser(t *testing.T, repo domain.UserRepository, username, role string) *domain.User {
	t.Helper()

	resp, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Email:    username + "@example.com",
		Username: username,
		Name:     "Test " + username,
		Password: "secret123",
		Role:     role,
	})
	require.NoError(t, err)
	return resp.User
}

func TestRegisterUser(t *testing.T) {
	repo := setupRepo(t)
	handler := NewRegisterUserHandler(repo)

	t.Run("success with defaults", func(t *testing.T) {
		resp, err := handler.Handle(RegisterUserCommand{
			Email:    "ana@restaurante.com",
			Username: "ana",
			Name:     "Ana Costa",
			Password: "secret123",
			Company:  "Restaurante da Ana",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.Token)
		assert.NotZero(t, resp.User.ID)
		assert.Equal(t, domain.RoleCliente, resp.User.Role)
		assert.True(t, resp.User.IsActive)
		assert.NotEqual(t, "secret123", resp.User.PasswordHash)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := handler.Handle(RegisterUserCommand{
			Email:    "other@restaurante.com",
			Username: "ana",
			Name:     "Other Ana",
			Password: "secret123",
		})
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.Conflict))
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := handler.Handle(RegisterUserCommand{
			Email:    "ana@restaurante.com",
			Username: "ana2",
			Name:     "Ana Two",
			Password: "secret123",
		})
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.Conflict))
	})

	t.Run("short password", func(t *testing.T) {
		_, err := handler.Handle(RegisterUserCommand{
			Email:    "bob@example.com",
			Username: "bob",
			Name:     "Bob",
			Password: "12345",
		})
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.InvalidArgument))
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := handler.Handle(RegisterUserCommand{
			Email:    "eve@example.com",
			Username: "eve",
			Name:     "Eve",
			Password: "secret123",
			Role:     "superuser",
		})
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.InvalidArgument))
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := handler.Handle(RegisterUserCommand{Username: "x", Name: "X", Password: "secret123"})
		assert.True(t, apperr.Is(err, apperr.InvalidArgument))
	})
}

func TestRegisterUser_UniquenessSurvivesDeactivation(t *testing.T) {
	repo := setupRepo(t)

	user := registerUser(t, repo, "carlos", domain.RoleCliente)
	admin := registerUser(t, repo, "admin", domain.RoleAdmin)

	require.NoError(t, NewDeactivateUserHandler(repo).Handle(DeactivateUserCommand{
		UserID:      user.ID,
		RequestedBy: admin.ID,
	}))

	// The username stays taken even after the account is deactivated
	_, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Email:    "carlos2@example.com",
		Username: "carlos",
		Name:     "Carlos Two",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Conflict))
}

func TestLoginUser(t *testing.T) {
	repo := setupRepo(t)
	registerUser(t, repo, "maria", domain.RoleCliente)
	handler := NewLoginUserHandler(repo)

	t.Run("success", func(t *testing.T) {
		resp, err := handler.Handle(LoginUserCommand{Username: "maria", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "maria", resp.User.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := handler.Handle(LoginUserCommand{Username: "maria", Password: "wrong"})
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.Unauthenticated))
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := handler.Handle(LoginUserCommand{Username: "nobody", Password: "secret123"})
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.Unauthenticated))
	})
}

func TestLoginUser_DeactivatedAccount(t *testing.T) {
	repo := setupRepo(t)
	user := registerUser(t, repo, "pedro", domain.RoleCliente)
	admin := registerUser(t, repo, "chefe", domain.RoleAdmin)

	require.NoError(t, NewDeactivateUserHandler(repo).Handle(DeactivateUserCommand{
		UserID:      user.ID,
		RequestedBy: admin.ID,
	}))

	// Correct credentials on a deactivated account are Forbidden, not
	// Unauthenticated: the caller proved who they are.
	_, err := NewLoginUserHandler(repo).Handle(LoginUserCommand{Username: "pedro", Password: "secret123"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Forbidden))
}

func TestDeactivateUser(t *testing.T) {
	repo := setupRepo(t)
	admin := registerUser(t, repo, "boss", domain.RoleAdmin)
	user := registerUser(t, repo, "worker", domain.RoleCliente)
	handler := NewDeactivateUserHandler(repo)

	t.Run("self deactivation rejected", func(t *testing.T) {
		err := handler.Handle(DeactivateUserCommand{UserID: admin.ID, RequestedBy: admin.ID})
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.InvalidArgument))
	})

	t.Run("unknown user", func(t *testing.T) {
		err := handler.Handle(DeactivateUserCommand{UserID: 9999, RequestedBy: admin.ID})
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.NotFound))
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, handler.Handle(DeactivateUserCommand{UserID: user.ID, RequestedBy: admin.ID}))

		found, err := repo.FindByID(user.ID)
		require.NoError(t, err)
		assert.False(t, found.IsActive)
		assert.True(t, found.UpdatedAt.After(found.CreatedAt))
	})
}
