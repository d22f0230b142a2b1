package command

import (
	"context"
	"fmt"
	"time"

	"github.com/freshmarket/marketplace/internal/product/domain"
	"github.com/freshmarket/marketplace/pkg/apperr"
	"github.com/freshmarket/marketplace/pkg/cache"
)

// CreateProductCommand represents the command to create a product
type CreateProductCommand struct {
	Name        string
	Category    string
	Price       float64
	Unit        string
	MinOrder    int
	Stock       int
	Image       string
	Description string
}

// CreateProductHandler handles create product command
type CreateProductHandler struct {
	repo  domain.ProductRepository
	cache *cache.Cache
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository, c *cache.Cache) *CreateProductHandler {
	return &CreateProductHandler{repo: repo, cache: c}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, apperr.Invalid("name is required")
	}
	if cmd.Price < 0 {
		return nil, apperr.Invalid("price cannot be negative")
	}
	if cmd.Stock < 0 {
		return nil, apperr.Invalid("stock cannot be negative")
	}

	minOrder := cmd.MinOrder
	if minOrder < 1 {
		minOrder = 1
	}

	now := time.Now()
	product := &domain.Product{
		Name:        cmd.Name,
		Category:    cmd.Category,
		Price:       cmd.Price,
		Unit:        cmd.Unit,
		MinOrder:    minOrder,
		Stock:       cmd.Stock,
		Image:       cmd.Image,
		Description: cmd.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	_ = h.cache.InvalidatePrefix(ctx)

	return product, nil
}
