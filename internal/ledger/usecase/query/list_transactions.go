package query

import (
	"fmt"

	"github.com/tair/inventory-ledger/internal/authz"
	"github.com/tair/inventory-ledger/internal/ledger/domain"
)

// ListTransactionsQuery represents the query to read the movement ledger
type ListTransactionsQuery struct {
	Principal authz.Principal
	ProductID uint // optional filter; 0 means all products
	Limit     int
	Offset    int
}

// ListTransactionsHandler handles list transactions query
type ListTransactionsHandler struct {
	repo domain.TransactionRepository
}

// NewListTransactionsHandler creates a new list transactions handler
func NewListTransactionsHandler(repo domain.TransactionRepository) *ListTransactionsHandler {
	return &ListTransactionsHandler{repo: repo}
}

// Handle executes the list transactions query, newest first.
func (h *ListTransactionsHandler) Handle(q ListTransactionsQuery) ([]domain.Transaction, error) {
	if err := authz.Require(q.Principal, authz.OpReadTransaction); err != nil {
		return nil, err
	}

	if q.Limit <= 0 {
		q.Limit = 50
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	var (
		transactions []domain.Transaction
		err          error
	)
	if q.ProductID != 0 {
		transactions, err = h.repo.FindByProductID(q.ProductID, q.Limit, q.Offset)
	} else {
		transactions, err = h.repo.FindAll(q.Limit, q.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return transactions, nil
}
