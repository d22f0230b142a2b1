package query

import (
	"context"

	"github.com/freshmarket/marketplace/internal/order/domain"
	"github.com/freshmarket/marketplace/pkg/apperr"
)

// GetOrderQuery fetches one order. Requester fields drive the
// owner-or-admin check.
type GetOrderQuery struct {
	OrderID          uint
	RequesterID      uint
	RequesterIsAdmin bool
}

// GetOrderHandler handles get order query
type GetOrderHandler struct {
	orders domain.OrderRepository
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(orders domain.OrderRepository) *GetOrderHandler {
	return &GetOrderHandler{orders: orders}
}

// Handle returns the order when the requester owns it or is an admin
func (h *GetOrderHandler) Handle(ctx context.Context, query GetOrderQuery) (*domain.Order, error) {
	if query.OrderID == 0 {
		return nil, apperr.Invalid("invalid order id")
	}

	order, err := h.orders.FindByID(ctx, query.OrderID)
	if err != nil {
		return nil, apperr.Missing("order not found")
	}

	if order.UserID != query.RequesterID && !query.RequesterIsAdmin {
		return nil, apperr.PermissionDenied("access denied")
	}

	return order, nil
}
