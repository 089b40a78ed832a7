package domain

import (
	"time"

	"github.com/google/uuid"
)

// ApplyMovement is the ledger's state transition. It takes the current
// product snapshot and a proposed movement and returns the next snapshot
// plus the transaction that records it. It never touches storage, which
// keeps the invariant (stock equals the net of all transactions) testable
// without a backend.
//
// A rejected movement returns the zero values and an error; the caller's
// snapshot is never modified.
func ApplyMovement(product Product, movementType MovementType, quantity int) (Product, Transaction, error) {
	if quantity <= 0 {
		return Product{}, Transaction{}, ErrInvalidQuantity
	}

	switch movementType {
	case MovementIn:
		product.Stock += quantity
	case MovementOut:
		if quantity > product.Stock {
			return Product{}, Transaction{}, ErrInsufficientStock
		}
		product.Stock -= quantity
	default:
		return Product{}, Transaction{}, ErrInvalidMovementType
	}

	txn := Transaction{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Type:      movementType,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	}

	return product, txn, nil
}
