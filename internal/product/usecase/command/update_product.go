package command

import (
	"context"
	"fmt"
	"time"

	"github.com/freshmarket/marketplace/internal/product/domain"
	"github.com/freshmarket/marketplace/pkg/apperr"
	"github.com/freshmarket/marketplace/pkg/cache"
)

// UpdateProductCommand is a partial update: nil fields are left untouched.
type UpdateProductCommand struct {
	ID          uint
	Name        *string
	Category    *string
	Price       *float64
	Unit        *string
	MinOrder    *int
	Stock       *int
	Image       *string
	Description *string
}

// UpdateProductHandler handles update product command
type UpdateProductHandler struct {
	repo  domain.ProductRepository
	cache *cache.Cache
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository, c *cache.Cache) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo, cache: c}
}

// Handle applies the provided fields only. UpdatedAt is restamped only when
// at least one field was supplied.
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ID == 0 {
		return nil, apperr.Invalid("invalid product id")
	}

	product, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, apperr.Missing("product not found")
	}

	changed := false
	if cmd.Name != nil {
		product.Name = *cmd.Name
		changed = true
	}
	if cmd.Category != nil {
		product.Category = *cmd.Category
		changed = true
	}
	if cmd.Price != nil {
		if *cmd.Price < 0 {
			return nil, apperr.Invalid("price cannot be negative")
		}
		product.Price = *cmd.Price
		changed = true
	}
	if cmd.Unit != nil {
		product.Unit = *cmd.Unit
		changed = true
	}
	if cmd.MinOrder != nil {
		if *cmd.MinOrder < 1 {
			return nil, apperr.Invalid("minOrder must be at least 1")
		}
		product.MinOrder = *cmd.MinOrder
		changed = true
	}
	if cmd.Stock != nil {
		if *cmd.Stock < 0 {
			return nil, apperr.Invalid("stock cannot be negative")
		}
		product.Stock = *cmd.Stock
		changed = true
	}
	if cmd.Image != nil {
		product.Image = *cmd.Image
		changed = true
	}
	if cmd.Description != nil {
		product.Description = *cmd.Description
		changed = true
	}

	if !changed {
		return product, nil
	}

	product.UpdatedAt = time.Now()
	if err := h.repo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	_ = h.cache.InvalidatePrefix(ctx)

	return product, nil
}
