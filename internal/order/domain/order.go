package domain

import (
	"context"
	"time"
)

// Order statuses. Status changes are admin-driven free-form overwrites;
// no transition table is enforced.
const (
	StatusProcessando = "processando"
	StatusEmTransito  = "em_transito"
	StatusEntregue    = "entregue"
	StatusCancelado   = "cancelado"
)

// OrderItem is a snapshot of a product at order time. Name, unit and price
// are copied from the request, deliberately decoupled from later product
// mutation or deletion.
type OrderItem struct {
	ID        uint    `json:"-" gorm:"primaryKey"`
	OrderID   uint    `json:"-" gorm:"index;not null"`
	ProductID uint    `json:"product_id" gorm:"not null"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Unit      string  `json:"unit"`
	Price     float64 `json:"price" gorm:"not null"`
	Image     string  `json:"image,omitempty"`
}

// TableName specifies the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// ShippingAddress is embedded into the order row
type ShippingAddress struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zipcode      string `json:"zipcode"`
}

// ContactInfo is embedded into the order row
type ContactInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Order represents a placed order. Subtotal and Total are computed once at
// creation and never recomputed from the items.
type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	OrderNumber     string          `json:"order_number" gorm:"index;not null"`
	UserID          uint            `json:"user_id" gorm:"index;not null"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	ShippingAddress ShippingAddress `json:"shipping_address" gorm:"embedded;embeddedPrefix:shipping_"`
	ContactInfo     ContactInfo     `json:"contact_info" gorm:"embedded;embeddedPrefix:contact_"`
	DeliveryFee     float64         `json:"delivery_fee"`
	Notes           string          `json:"notes,omitempty"`
	Status          string          `json:"status" gorm:"index;default:'processando'"`
	Subtotal        float64         `json:"subtotal"`
	Total           float64         `json:"total"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeliveryDate    *time.Time      `json:"delivery_date,omitempty"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// OrderRepository defines the contract for order data access. Orders are
// never deleted.
type OrderRepository interface {
	// Create persists the order and its items in one association write.
	Create(ctx context.Context, order *Order) error
	// FindByID loads an order with its items.
	FindByID(ctx context.Context, id uint) (*Order, error)
	// FindByUser lists a user's orders, newest first, optionally filtered
	// by status, capped at limit.
	FindByUser(ctx context.Context, userID uint, status string, limit int) ([]Order, error)
	// FindAll lists all orders, newest first, optionally filtered by
	// status, capped at limit.
	FindAll(ctx context.Context, status string, limit int) ([]Order, error)
	// Update persists the order fields (items are not rewritten).
	Update(ctx context.Context, order *Order) error
}
