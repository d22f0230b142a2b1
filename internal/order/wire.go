//go:build wireinject
// +build wireinject

package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	http "github.com/freshmarket/marketplace/internal/order/delivery/http"
	productdomain "github.com/freshmarket/marketplace/internal/product/domain"
	"github.com/freshmarket/marketplace/kafka"
)

// InitializeHandler builds the order HTTP handler with its dependencies
func InitializeHandler(db *gorm.DB, products productdomain.ProductRepository, publisher *kafka.Publisher) (*http.OrderHandler, error) {
	wire.Build(ProviderSet, http.NewOrderHandler)
	return nil, nil
}
