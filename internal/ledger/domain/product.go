package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog entry whose stock is authoritative only
// through the movement ledger: once created, the stock column changes
// exclusively via CommitMovement.
type Product struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Category     string         `json:"category" gorm:"index"`
	Stock        int            `json:"stock" gorm:"not null;default:0"`
	ReorderPoint int            `json:"reorder_point" gorm:"not null;default:0"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// ProductRepository defines the contract for product data access.
//
// CommitMovement persists an updated product snapshot together with the
// transaction minted for it as a single atomic unit. expectedStock is the
// stock value the snapshot was loaded with; the write must fail with
// ErrConflict if the row no longer carries that value, so that concurrent
// movements against the same product can never both apply against a stale
// snapshot.
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id uint) (*Product, error)
	FindAll(limit, offset int) ([]Product, error)
	Update(product *Product) error
	Delete(id uint) error
	CommitMovement(ctx context.Context, updated *Product, txn *Transaction, expectedStock int) error
}
