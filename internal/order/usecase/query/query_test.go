package query

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/freshmarket/marketplace/internal/order/domain"
	"github.com/freshmarket/marketplace/internal/order/repository"
	"github.com/freshmarket/marketplace/pkg/apperr"
)

func setupRepo(t *testing.T) domain.OrderRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	repo := repository.NewGormOrderRepository(db)
	require.NoError(t, repo.AutoMigrate())

	return repo
}

func seedOrder(t *testing.T, repo domain.OrderRepository, userID uint, status string, createdAt time.Time) *domain.Order {
	t.Helper()

	order := &domain.Order{
		OrderNumber: fmt.Sprintf("PED-2026-%06d", createdAt.UnixNano()%1000000),
		UserID:      userID,
		Items: []domain.OrderItem{
			{ProductID: 1, Name: "Tomate", Quantity: 2, Price: 6.9},
		},
		Status:    status,
		Subtotal:  13.8,
		Total:     13.8,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), order))
	return order
}

func TestGetOrder(t *testing.T) {
	repo := setupRepo(t)
	order := seedOrder(t, repo, 10, domain.StatusProcessando, time.Now())
	handler := NewGetOrderHandler(repo)
	ctx := context.Background()

	t.Run("owner can read", func(t *testing.T) {
		found, err := handler.Handle(ctx, GetOrderQuery{OrderID: order.ID, RequesterID: 10})
		require.NoError(t, err)
		assert.Equal(t, order.OrderNumber, found.OrderNumber)
		require.Len(t, found.Items, 1)
	})

	t.Run("admin can read any order", func(t *testing.T) {
		found, err := handler.Handle(ctx, GetOrderQuery{OrderID: order.ID, RequesterID: 99, RequesterIsAdmin: true})
		require.NoError(t, err)
		assert.Equal(t, order.ID, found.ID)
	})

	t.Run("other users are forbidden", func(t *testing.T) {
		_, err := handler.Handle(ctx, GetOrderQuery{OrderID: order.ID, RequesterID: 99})
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.Forbidden))
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := handler.Handle(ctx, GetOrderQuery{OrderID: 9999, RequesterID: 10})
		assert.True(t, apperr.Is(err, apperr.NotFound))
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := handler.Handle(ctx, GetOrderQuery{OrderID: 0, RequesterID: 10})
		assert.True(t, apperr.Is(err, apperr.InvalidArgument))
	})
}

func TestListOrders(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	seedOrder(t, repo, 1, domain.StatusProcessando, base)
	seedOrder(t, repo, 1, domain.StatusEntregue, base.Add(10*time.Minute))
	seedOrder(t, repo, 2, domain.StatusProcessando, base.Add(20*time.Minute))

	handler := NewListOrdersHandler(repo)

	t.Run("only own orders, newest first", func(t *testing.T) {
		orders, err := handler.Handle(ctx, ListOrdersQuery{UserID: 1})
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, domain.StatusEntregue, orders[0].Status)
		assert.Equal(t, domain.StatusProcessando, orders[1].Status)
	})

	t.Run("status filter", func(t *testing.T) {
		orders, err := handler.Handle(ctx, ListOrdersQuery{UserID: 1, Status: domain.StatusEntregue})
		require.NoError(t, err)
		require.Len(t, orders, 1)
	})

	t.Run("no orders", func(t *testing.T) {
		orders, err := handler.Handle(ctx, ListOrdersQuery{UserID: 42})
		require.NoError(t, err)
		assert.Empty(t, orders)
	})
}

func TestListAllOrders(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	seedOrder(t, repo, 1, domain.StatusProcessando, base)
	seedOrder(t, repo, 2, domain.StatusEmTransito, base.Add(time.Minute))

	handler := NewListAllOrdersHandler(repo)

	orders, err := handler.Handle(ctx, ListAllOrdersQuery{})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, domain.StatusEmTransito, orders[0].Status)

	orders, err = handler.Handle(ctx, ListAllOrdersQuery{Status: domain.StatusProcessando})
	require.NoError(t, err)
	require.Len(t, orders, 1)
}
