package domain

import "errors"

var (
	// ErrInvalidQuantity rejects movements whose quantity is not a positive
	// integer.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrInsufficientStock rejects stock-out movements larger than the
	// current stock.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidMovementType rejects movements whose type is neither "in"
	// nor "out".
	ErrInvalidMovementType = errors.New("invalid movement type")

	// ErrProductNotFound means the product id resolved to nothing.
	ErrProductNotFound = errors.New("product not found")

	// ErrTransactionNotFound means the transaction id resolved to nothing.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrConflict means a concurrent writer won the compare-and-swap on the
	// stock column. Callers may retry with a fresh snapshot, bounded.
	ErrConflict = errors.New("concurrent stock update conflict")

	// ErrDuplicateRequest means a movement with the same request id was
	// already applied.
	ErrDuplicateRequest = errors.New("duplicate request")
)
