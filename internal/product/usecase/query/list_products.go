package query

import (
	"context"
	"fmt"

	"github.com/freshmarket/marketplace/internal/product/domain"
	"github.com/freshmarket/marketplace/pkg/apperr"
	"github.com/freshmarket/marketplace/pkg/cache"
)

// Catalog pages are capped at 100 products
const maxProductPageSize = 100

// ListProductsQuery represents the query to list active products
type ListProductsQuery struct {
	Category string
	Search   string
	Skip     int
	Limit    int
}

// ListProductsHandler handles list products query with a cache-aside layer
type ListProductsHandler struct {
	repo  domain.ProductRepository
	cache *cache.Cache
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository, c *cache.Cache) *ListProductsHandler {
	return &ListProductsHandler{repo: repo, cache: c}
}

// Handle lists active products ordered by name ascending
func (h *ListProductsHandler) Handle(ctx context.Context, query ListProductsQuery) ([]domain.Product, error) {
	if query.Skip < 0 {
		return nil, apperr.Invalid("skip cannot be negative")
	}

	limit := query.Limit
	if limit <= 0 || limit > maxProductPageSize {
		limit = maxProductPageSize
	}

	cacheKey := fmt.Sprintf("products:%s:%s:%d:%d", query.Category, query.Search, query.Skip, limit)
	var cached []domain.Product
	if hit, err := h.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	products, err := h.repo.FindActive(domain.Filter{
		Category: query.Category,
		Search:   query.Search,
	}, query.Skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	_ = h.cache.Set(ctx, cacheKey, products)

	return products, nil
}
