package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tair/inventory-ledger/internal/ledger/domain"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{}, &domain.Transaction{})
}

func (r *GormProductRepository) Create(product *domain.Product) error {
	return r.db.Create(product).Error
}

func (r *GormProductRepository) FindByID(id uint) (*domain.Product, error) {
	var product domain.Product
	err := r.db.First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindAll returns products ordered by id. A non-positive limit returns the
// full catalog, which the alert projection relies on.
func (r *GormProductRepository) FindAll(limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	q := r.db.Order("id")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Update(product *domain.Product) error {
	return r.db.Save(product).Error
}

func (r *GormProductRepository) Delete(id uint) error {
	res := r.db.Delete(&domain.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// CommitMovement writes the updated stock and the transaction row in one
// database transaction. The stock update is a compare-and-swap against the
// stock value the snapshot was loaded with; a concurrent writer that got
// there first makes the guard miss and the whole commit rolls back with
// ErrConflict, leaving both tables untouched.
func (r *GormProductRepository) CommitMovement(ctx context.Context, updated *domain.Product, txn *domain.Transaction, expectedStock int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Product{}).
			Where("id = ? AND stock = ?", updated.ID, expectedStock).
			Update("stock", updated.Stock)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrConflict
		}
		return tx.Create(txn).Error
	})
}
