//go:build wireinject
// +build wireinject

package product

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	http "github.com/freshmarket/marketplace/internal/product/delivery/http"
	"github.com/freshmarket/marketplace/pkg/cache"
)

// InitializeHandler builds the catalog HTTP handler with its dependencies
func InitializeHandler(db *gorm.DB, c *cache.Cache) (*http.ProductHandler, error) {
	wire.Build(ProviderSet, http.NewProductHandler)
	return nil, nil
}
