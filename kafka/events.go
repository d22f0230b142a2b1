package kafka

import "time"

// Topics
const (
	TopicOrderCreated       = "marketplace.order.created"
	TopicOrderStatusChanged = "marketplace.order.status_changed"
)

// Event types
const (
	EventTypeOrderCreated       = "order.created"
	EventTypeOrderStatusChanged = "order.status_changed"
)

// OrderCreatedEvent is published after an order is persisted
type OrderCreatedEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	OrderID     uint      `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      uint      `json:"user_id"`
	ItemCount   int       `json:"item_count"`
	Subtotal    float64   `json:"subtotal"`
	Total       float64   `json:"total"`
	Timestamp   time.Time `json:"timestamp"`
}

// OrderStatusChangedEvent is published after an admin status update
type OrderStatusChangedEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	OrderID     uint      `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	Timestamp   time.Time `json:"timestamp"`
}
