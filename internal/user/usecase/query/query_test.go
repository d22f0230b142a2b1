package query

import (
	"testing"
	"time"

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

func seedUser(t *testing.T, repo domain.UserRepository, username string, active bool, createdAt time.Time) *domain.User {
	t.Helper()

	user := &domain.User{
		Email:        username + "@example.com",
		Username:     username,
		Name:         "User " + username,
		Role:         domain.RoleCliente,
		PasswordHash: "hash",
		IsActive:     active,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	require.NoError(t, repo.Create(user))
	return user
}

func TestGetUser(t *testing.T) {
	repo := setupRepo(t)
	user := seedUser(t, repo, "ana", true, time.Now())
	handler := NewGetUserHandler(repo)

	t.Run("found", func(t *testing.T) {
		found, err := handler.Handle(GetUserQuery{ID: user.ID})
		require.NoError(t, err)
		assert.Equal(t, "ana", found.Username)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := handler.Handle(GetUserQuery{ID: 0})
		assert.True(t, apperr.Is(err, apperr.InvalidArgument))
	})

	t.Run("not found", func(t *testing.T) {
		_, err := handler.Handle(GetUserQuery{ID: 999})
		assert.True(t, apperr.Is(err, apperr.NotFound))
	})

	t.Run("deactivated users remain visible to admins", func(t *testing.T) {
		inactive := seedUser(t, repo, "gone", false, time.Now())
		found, err := handler.Handle(GetUserQuery{ID: inactive.ID})
		require.NoError(t, err)
		assert.False(t, found.IsActive)
	})
}

func TestListUsers(t *testing.T) {
	repo := setupRepo(t)

	base := time.Now().Add(-time.Hour)
	seedUser(t, repo, "oldest", true, base)
	seedUser(t, repo, "inactive", false, base.Add(10*time.Minute))
	seedUser(t, repo, "newest", true, base.Add(20*time.Minute))

	users, err := NewListUsersHandler(repo).Handle(ListUsersQuery{})
	require.NoError(t, err)

	// Only active users, newest first
	require.Len(t, users, 2)
	assert.Equal(t, "newest", users[0].Username)
	assert.Equal(t, "oldest", users[1].Username)
}
