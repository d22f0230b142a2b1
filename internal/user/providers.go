package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/freshmarket/marketplace/internal/user/domain"
	"github.com/freshmarket/marketplace/internal/user/repository"
)

// ProvideUserRepository provides the default (GORM) user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepository(db)
}

// RepositorySet is the wire provider set for user data access
var RepositorySet = wire.NewSet(ProvideUserRepository)
