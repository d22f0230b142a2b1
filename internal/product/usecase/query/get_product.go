package query

import (
	"github.com/freshmarket/marketplace/internal/product/domain"
	"github.com/freshmarket/marketplace/pkg/apperr"
)

// GetProductQuery represents the query to get an active product by ID
type GetProductQuery struct {
	ID uint
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle returns the product; missing and soft-deleted both read as NotFound
func (h *GetProductHandler) Handle(query GetProductQuery) (*domain.Product, error) {
	if query.ID == 0 {
		return nil, apperr.Invalid("invalid product id")
	}

	product, err := h.repo.FindActiveByID(query.ID)
	if err != nil {
		return nil, apperr.Missing("product not found")
	}

	return product, nil
}
