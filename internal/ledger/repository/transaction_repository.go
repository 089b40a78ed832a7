package repository

import (
	"gorm.io/gorm"

	"github.com/tair/inventory-ledger/internal/ledger/domain"
)

type GormTransactionRepository struct {
	db *gorm.DB
}

func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

func (r *GormTransactionRepository) FindAll(limit, offset int) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	q := r.db.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	err := q.Find(&transactions).Error
	return transactions, err
}

func (r *GormTransactionRepository) FindByProductID(productID uint, limit, offset int) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	q := r.db.Where("product_id = ?", productID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	err := q.Find(&transactions).Error
	return transactions, err
}
