package command

import (
	"fmt"

	"github.com/tair/inventory-ledger/internal/authz"
	"github.com/tair/inventory-ledger/internal/ledger/domain"
)

// CreateProductCommand represents the command to create a product
type CreateProductCommand struct {
	Principal    authz.Principal
	Name         string
	Category     string
	Stock        int
	ReorderPoint int
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command. The initial stock is accepted
// here; every later change goes through the movement ledger.
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	if err := authz.Require(cmd.Principal, authz.OpCreateProduct); err != nil {
		return nil, err
	}

	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}
	if cmd.ReorderPoint < 0 {
		return nil, fmt.Errorf("reorder point cannot be negative")
	}

	product := &domain.Product{
		Name:         cmd.Name,
		Category:     cmd.Category,
		Stock:        cmd.Stock,
		ReorderPoint: cmd.ReorderPoint,
	}

	if err := h.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
