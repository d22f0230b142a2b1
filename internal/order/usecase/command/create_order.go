package command

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/freshmarket/marketplace/internal/order/domain"
	productdomain "github.com/freshmarket/marketplace/internal/product/domain"
	"github.com/freshmarket/marketplace/kafka"
	"github.com/freshmarket/marketplace/pkg/apperr"
	"github.com/freshmarket/marketplace/pkg/logger"
)

// Estimated delivery is three days out
const deliveryLeadTime = 72 * time.Hour

// OrderItemInput is one line of an order request. Price and quantity are
// taken as sent by the client; totals are not re-priced against the catalog.
type OrderItemInput struct {
	ProductID uint
	Name      string
	Quantity  int
	Unit      string
	Price     float64
	Image     string
}

// CreateOrderCommand represents the command to place an order
type CreateOrderCommand struct {
	UserID          uint
	Items           []OrderItemInput
	ShippingAddress domain.ShippingAddress
	ContactInfo     domain.ContactInfo
	DeliveryFee     float64
	Notes           string
}

// CreateOrderHandler handles order placement
type CreateOrderHandler struct {
	orders    domain.OrderRepository
	products  productdomain.ProductRepository
	publisher *kafka.Publisher
}

// NewCreateOrderHandler creates a new create order handler
func NewCreateOrderHandler(orders domain.OrderRepository, products productdomain.ProductRepository, publisher *kafka.Publisher) *CreateOrderHandler {
	return &CreateOrderHandler{orders: orders, products: products, publisher: publisher}
}

// Handle validates and persists the order, then decrements product stock.
// The order write happens before the decrements; a failed decrement is
// logged and swallowed and the order stays persisted. Each decrement is an
// atomic single-row update, but the loop as a whole is not transactional.
func (h *CreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	if len(cmd.Items) == 0 {
		return nil, apperr.Invalid("order must contain at least one item")
	}
	for _, item := range cmd.Items {
		if item.Quantity <= 0 {
			return nil, apperr.Invalid("item quantity must be positive")
		}
	}

	subtotal := 0.0
	for _, item := range cmd.Items {
		subtotal += float64(item.Quantity) * item.Price
	}
	total := subtotal + cmd.DeliveryFee

	items := make([]domain.OrderItem, 0, len(cmd.Items))
	for _, item := range cmd.Items {
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
			Price:     item.Price,
			Image:     item.Image,
		})
	}

	now := time.Now()
	deliveryDate := now.Add(deliveryLeadTime)
	order := &domain.Order{
		OrderNumber:     GenerateOrderNumber(),
		UserID:          cmd.UserID,
		Items:           items,
		ShippingAddress: cmd.ShippingAddress,
		ContactInfo:     cmd.ContactInfo,
		DeliveryFee:     cmd.DeliveryFee,
		Notes:           cmd.Notes,
		Status:          domain.StatusProcessando,
		Subtotal:        subtotal,
		Total:           total,
		CreatedAt:       now,
		UpdatedAt:       now,
		DeliveryDate:    &deliveryDate,
	}

	if err := h.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Best-effort stock decrements; no sufficiency check, no rollback.
	for _, item := range order.Items {
		if err := h.products.DecrementStock(item.ProductID, item.Quantity); err != nil {
			logger.Warn(ctx).
				Err(err).
				Uint("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Str("order_number", order.OrderNumber).
				Msg("Failed to decrement product stock")
		}
	}

	if err := h.publisher.PublishOrderCreated(ctx, kafka.OrderCreatedEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		ItemCount:   len(order.Items),
		Subtotal:    order.Subtotal,
		Total:       order.Total,
	}); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("order_number", order.OrderNumber).
			Msg("Failed to publish order created event")
	}

	return order, nil
}

// GenerateOrderNumber builds a human-readable order number in the form
// PED-<year>-<6 random digits>. Uniqueness is not guaranteed.
func GenerateOrderNumber() string {
	return fmt.Sprintf("PED-%d-%06d", time.Now().Year(), rand.Intn(1000000))
}
