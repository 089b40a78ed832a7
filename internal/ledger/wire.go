//go:build wireinject
// +build wireinject

package ledger

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/inventory-ledger/internal/ledger/delivery/http"
	"github.com/tair/inventory-ledger/internal/ledger/domain"
	"github.com/tair/inventory-ledger/internal/ledger/repository"
	"github.com/tair/inventory-ledger/internal/ledger/usecase/command"
)

// ProvideProductRepository provides the product repository wrapped with tracing
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewTracingProductRepository(db)
}

// ProvideTransactionRepository provides the transaction repository
func ProvideTransactionRepository(db *gorm.DB) domain.TransactionRepository {
	return repository.NewGormTransactionRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvideTransactionRepository,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies.
// idem and publisher may be nil when Redis or Kafka are not configured.
func InitializeHTTPHandler(db *gorm.DB, idem command.IdempotencyStore, publisher command.MovementEventPublisher) (*http.LedgerHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewLedgerHandler,
	)
	return nil, nil
}
