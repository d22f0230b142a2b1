package query

import (
	"context"
	"fmt"

	"github.com/freshmarket/marketplace/internal/order/domain"
)

// Listing caps: a user sees at most 100 of their own orders, admins see
// at most 500 across all users.
const (
	maxOwnOrderListSize = 100
	maxAllOrderListSize = 500
)

// ListOrdersQuery lists the requester's own orders
type ListOrdersQuery struct {
	UserID uint
	Status string
}

// ListOrdersHandler handles list orders query
type ListOrdersHandler struct {
	orders domain.OrderRepository
}

// NewListOrdersHandler creates a new list orders handler
func NewListOrdersHandler(orders domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{orders: orders}
}

// Handle returns the user's orders, newest first
func (h *ListOrdersHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]domain.Order, error) {
	orders, err := h.orders.FindByUser(ctx, query.UserID, query.Status, maxOwnOrderListSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// ListAllOrdersQuery lists every order (admin only)
type ListAllOrdersQuery struct {
	Status string
}

// ListAllOrdersHandler handles list all orders query
type ListAllOrdersHandler struct {
	orders domain.OrderRepository
}

// NewListAllOrdersHandler creates a new list all orders handler
func NewListAllOrdersHandler(orders domain.OrderRepository) *ListAllOrdersHandler {
	return &ListAllOrdersHandler{orders: orders}
}

// Handle returns all orders, newest first
func (h *ListAllOrdersHandler) Handle(ctx context.Context, query ListAllOrdersQuery) ([]domain.Order, error) {
	orders, err := h.orders.FindAll(ctx, query.Status, maxAllOrderListSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}
