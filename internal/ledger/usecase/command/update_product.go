package command

import (
	"fmt"

	"github.com/tair/inventory-ledger/internal/authz"
	"github.com/tair/inventory-ledger/internal/ledger/domain"
)

// UpdateProductCommand represents the command to update catalog fields of a
// product. Stock is deliberately absent: once the ledger is authoritative a
// caller can never supply an arbitrary stock value.
type UpdateProductCommand struct {
	Principal    authz.Principal
	ProductID    uint
	Name         *string
	Category     *string
	ReorderPoint *int
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	if err := authz.Require(cmd.Principal, authz.OpUpdateProduct); err != nil {
		return nil, err
	}

	product, err := h.repo.FindByID(cmd.ProductID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		product.Name = *cmd.Name
	}
	if cmd.Category != nil {
		product.Category = *cmd.Category
	}
	if cmd.ReorderPoint != nil {
		if *cmd.ReorderPoint < 0 {
			return nil, fmt.Errorf("reorder point cannot be negative")
		}
		product.ReorderPoint = *cmd.ReorderPoint
	}

	if err := h.repo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}
