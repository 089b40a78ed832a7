package command

import (
	"github.com/tair/inventory-ledger/internal/authz"
	"github.com/tair/inventory-ledger/internal/ledger/domain"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	Principal authz.Principal
	ProductID uint
}

// DeleteProductHandler handles product deletion command
type DeleteProductHandler struct {
	repo domain.ProductRepository
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo}
}

// Handle executes the delete product command. Deletion bypasses the ledger;
// the transaction history of a deleted product is kept for audit.
func (h *DeleteProductHandler) Handle(cmd DeleteProductCommand) error {
	if err := authz.Require(cmd.Principal, authz.OpDeleteProduct); err != nil {
		return err
	}

	return h.repo.Delete(cmd.ProductID)
}
