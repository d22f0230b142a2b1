package query

import (
	"context"
	"fmt"

	"github.com/freshmarket/marketplace/internal/product/domain"
	"github.com/freshmarket/marketplace/pkg/cache"
)

// ListCategoriesQuery represents the query for distinct active categories
type ListCategoriesQuery struct{}

// ListCategoriesHandler handles list categories query
type ListCategoriesHandler struct {
	repo  domain.ProductRepository
	cache *cache.Cache
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(repo domain.ProductRepository, c *cache.Cache) *ListCategoriesHandler {
	return &ListCategoriesHandler{repo: repo, cache: c}
}

// Handle returns distinct categories of active products, sorted ascending
func (h *ListCategoriesHandler) Handle(ctx context.Context, query ListCategoriesQuery) ([]string, error) {
	var cached []string
	if hit, err := h.cache.Get(ctx, "categories", &cached); err == nil && hit {
		return cached, nil
	}

	categories, err := h.repo.DistinctCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	_ = h.cache.Set(ctx, "categories", categories)

	return categories, nil
}
