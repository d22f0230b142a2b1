package command

import (
	"context"
	"fmt"
	"time"

	"github.com/freshmarket/marketplace/internal/order/domain"
	"github.com/freshmarket/marketplace/kafka"
	"github.com/freshmarket/marketplace/pkg/apperr"
	"github.com/freshmarket/marketplace/pkg/logger"
)

// UpdateStatusCommand overwrites an order's status (admin only). The status
// is accepted as-is; DeliveryDate, when set, overwrites the estimate.
type UpdateStatusCommand struct {
	OrderID      uint
	Status       string
	DeliveryDate *time.Time
}

// UpdateStatusHandler handles order status updates
type UpdateStatusHandler struct {
	orders    domain.OrderRepository
	publisher *kafka.Publisher
}

// NewUpdateStatusHandler creates a new update status handler
func NewUpdateStatusHandler(orders domain.OrderRepository, publisher *kafka.Publisher) *UpdateStatusHandler {
	return &UpdateStatusHandler{orders: orders, publisher: publisher}
}

// Handle executes the update status command
func (h *UpdateStatusHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) (*domain.Order, error) {
	if cmd.OrderID == 0 {
		return nil, apperr.Invalid("invalid order id")
	}
	if cmd.Status == "" {
		return nil, apperr.Invalid("status is required")
	}

	order, err := h.orders.FindByID(ctx, cmd.OrderID)
	if err != nil {
		return nil, apperr.Missing("order not found")
	}

	oldStatus := order.Status
	order.Status = cmd.Status
	order.UpdatedAt = time.Now()
	if cmd.DeliveryDate != nil {
		order.DeliveryDate = cmd.DeliveryDate
	}

	if err := h.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if err := h.publisher.PublishOrderStatusChanged(ctx, kafka.OrderStatusChangedEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		OldStatus:   oldStatus,
		NewStatus:   order.Status,
	}); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("order_number", order.OrderNumber).
			Msg("Failed to publish order status changed event")
	}

	return order, nil
}
