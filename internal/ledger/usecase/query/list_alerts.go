package query

import (
	"fmt"
	"slices"

	"github.com/tair/inventory-ledger/internal/authz"
	"github.com/tair/inventory-ledger/internal/ledger/domain"
)

// ListAlertsQuery represents the query for the low-stock projection
type ListAlertsQuery struct {
	Principal authz.Principal
}

// ListAlertsHandler handles list alerts query
type ListAlertsHandler struct {
	repo domain.ProductRepository
}

// NewListAlertsHandler creates a new list alerts handler
func NewListAlertsHandler(repo domain.ProductRepository) *ListAlertsHandler {
	return &ListAlertsHandler{repo: repo}
}

// Handle loads the full catalog and derives the low-stock set from it.
// Alerts carry no severity; they are the bare stock < reorder point
// projection.
func (h *ListAlertsHandler) Handle(q ListAlertsQuery) ([]domain.Product, error) {
	if err := authz.Require(q.Principal, authz.OpReadProduct); err != nil {
		return nil, err
	}

	products, err := h.repo.FindAll(0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	return slices.Collect(domain.DeriveAlerts(products)), nil
}
