//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	http "github.com/freshmarket/marketplace/internal/user/delivery/http"
)

// InitializeHandler builds the user HTTP handler with its dependencies
func InitializeHandler(db *gorm.DB) (*http.UserHandler, error) {
	wire.Build(RepositorySet, http.NewUserHandler)
	return nil, nil
}

// InitializeGate builds the access control gate
func InitializeGate(db *gorm.DB) (*http.Gate, error) {
	wire.Build(RepositorySet, http.NewGate)
	return nil, nil
}
