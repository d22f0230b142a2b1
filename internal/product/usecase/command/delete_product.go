package command

import (
	"context"
	"fmt"
	"time"

	"github.com/freshmarket/marketplace/internal/product/domain"
	"github.com/freshmarket/marketplace/pkg/apperr"
	"github.com/freshmarket/marketplace/pkg/cache"
)

// DeleteProductCommand soft-deletes a product
type DeleteProductCommand struct {
	ID uint
}

// DeleteProductHandler handles delete product command
type DeleteProductHandler struct {
	repo  domain.ProductRepository
	cache *cache.Cache
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.ProductRepository, c *cache.Cache) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo, cache: c}
}

// Handle marks the product inactive; stored data is kept
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	if cmd.ID == 0 {
		return apperr.Invalid("invalid product id")
	}

	deactivated, err := h.repo.Deactivate(cmd.ID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deactivated {
		return apperr.Missing("product not found")
	}

	_ = h.cache.InvalidatePrefix(ctx)

	return nil
}
