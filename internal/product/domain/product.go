package domain

import (
	"time"
)

// Product represents a catalog product. Deleted products stay in the table
// with IsActive=false; historical order items reference them by snapshot.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Category    string    `json:"category" gorm:"index"`
	Price       float64   `json:"price" gorm:"not null"`
	Unit        string    `json:"unit"`
	MinOrder    int       `json:"minOrder" gorm:"default:1"`
	Stock       int       `json:"stock" gorm:"not null;default:0"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// Filter narrows catalog listings. Search matches name or description,
// case-insensitively.
type Filter struct {
	Category string
	Search   string
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(product *Product) error
	// FindByID returns the product regardless of active state.
	FindByID(id uint) (*Product, error)
	// FindActiveByID returns the product only when IsActive is true.
	FindActiveByID(id uint) (*Product, error)
	// FindActive lists active products matching filter, ordered by name
	// ascending, with skip/limit paging.
	FindActive(filter Filter, skip, limit int) ([]Product, error)
	Update(product *Product) error
	// Deactivate soft-deletes the product; reports whether a row changed.
	Deactivate(id uint, at time.Time) (bool, error)
	// DistinctCategories lists categories of active products, sorted asc.
	DistinctCategories() ([]string, error)
	// DecrementStock atomically applies stock = stock - quantity on one row.
	// There is no floor; stock may go negative.
	DecrementStock(id uint, quantity int) error
}
