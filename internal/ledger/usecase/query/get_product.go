package query

import (
	"github.com/tair/inventory-ledger/internal/authz"
	"github.com/tair/inventory-ledger/internal/ledger/domain"
)

// GetProductQuery represents the query to fetch one product
type GetProductQuery struct {
	Principal authz.Principal
	ProductID uint
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(q GetProductQuery) (*domain.Product, error) {
	if err := authz.Require(q.Principal, authz.OpReadProduct); err != nil {
		return nil, err
	}

	return h.repo.FindByID(q.ProductID)
}
