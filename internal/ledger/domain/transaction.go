package domain

import "time"

// MovementType is the direction of a stock movement.
type MovementType string

const (
	MovementIn  MovementType = "in"
	MovementOut MovementType = "out"
)

// Transaction is one recorded stock movement. Transactions are the
// append-only audit trail from which a product's stock is derivable; they
// are created exactly once per accepted movement and never updated or
// deleted.
type Transaction struct {
	ID        string       `json:"id" gorm:"primaryKey;size:36"`
	ProductID uint         `json:"product_id" gorm:"not null;index"`
	Type      MovementType `json:"type" gorm:"not null;size:8"`
	Quantity  int          `json:"quantity" gorm:"not null"`
	CreatedAt time.Time    `json:"created_at"`
}

// TableName specifies the table name
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionRepository defines read access to the ledger. There is no
// update or delete: the ledger is append-only and rows are written only
// through ProductRepository.CommitMovement.
type TransactionRepository interface {
	FindAll(limit, offset int) ([]Transaction, error)
	FindByProductID(productID uint, limit, offset int) ([]Transaction, error)
}
