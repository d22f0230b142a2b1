package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	http "github.com/freshmarket/marketplace/internal/order/delivery/http"
	"github.com/freshmarket/marketplace/internal/order/domain"
	"github.com/freshmarket/marketplace/internal/order/repository"
	"github.com/freshmarket/marketplace/internal/order/usecase/command"
	"github.com/freshmarket/marketplace/internal/order/usecase/query"
	productdomain "github.com/freshmarket/marketplace/internal/product/domain"
	"github.com/freshmarket/marketplace/kafka"
)

// ProvideOrderRepository provides the traced order repository
func ProvideOrderRepository(db *gorm.DB) domain.OrderRepository {
	return repository.NewTracingOrderRepository(db)
}

// Migrate creates the order tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Order{}, &domain.OrderItem{})
}

// ProvideHandlers bundles the order usecase handlers
func ProvideHandlers(orders domain.OrderRepository, products productdomain.ProductRepository, publisher *kafka.Publisher) http.Handlers {
	return http.Handlers{
		Create:       command.NewCreateOrderHandler(orders, products, publisher),
		UpdateStatus: command.NewUpdateStatusHandler(orders, publisher),
		Get:          query.NewGetOrderHandler(orders),
		List:         query.NewListOrdersHandler(orders),
		ListAll:      query.NewListAllOrdersHandler(orders),
	}
}

// ProviderSet is the wire provider set for the order vertical
var ProviderSet = wire.NewSet(ProvideOrderRepository, ProvideHandlers)
