package product

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/freshmarket/marketplace/internal/product/domain"
	http "github.com/freshmarket/marketplace/internal/product/delivery/http"
	"github.com/freshmarket/marketplace/internal/product/repository"
	"github.com/freshmarket/marketplace/internal/product/usecase/command"
	"github.com/freshmarket/marketplace/internal/product/usecase/query"
	"github.com/freshmarket/marketplace/pkg/cache"
)

// ProvideProductRepository provides the GORM product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepository(db)
}

// Migrate creates the catalog tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Product{})
}

// ProvideHandlers bundles the catalog usecase handlers
func ProvideHandlers(repo domain.ProductRepository, c *cache.Cache) http.Handlers {
	return http.Handlers{
		Create:     command.NewCreateProductHandler(repo, c),
		Update:     command.NewUpdateProductHandler(repo, c),
		Delete:     command.NewDeleteProductHandler(repo, c),
		Get:        query.NewGetProductHandler(repo),
		List:       query.NewListProductsHandler(repo, c),
		Categories: query.NewListCategoriesHandler(repo, c),
	}
}

// ProviderSet is the wire provider set for the catalog vertical
var ProviderSet = wire.NewSet(ProvideProductRepository, ProvideHandlers)
