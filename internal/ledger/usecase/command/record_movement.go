package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/inventory-ledger/internal/authz"
	"github.com/tair/inventory-ledger/internal/ledger/domain"
	"github.com/tair/inventory-ledger/pkg/logger"
)

// IdempotencyStore claims movement request ids so retried requests apply at
// most once.
type IdempotencyStore interface {
	SetIdempotency(ctx context.Context, key string) (bool, error)
}

// MovementEventPublisher streams committed movements to interested
// consumers. Publishing is best-effort and never fails the movement.
type MovementEventPublisher interface {
	PublishMovementRecorded(ctx context.Context, product domain.Product, txn domain.Transaction) error
	PublishLowStock(ctx context.Context, product domain.Product) error
}

// RecordMovementCommand represents the command to record a stock movement
type RecordMovementCommand struct {
	Principal authz.Principal
	ProductID uint
	Type      domain.MovementType
	Quantity  int
	RequestID string // optional idempotency key
}

// MovementResult is the committed outcome of an accepted movement.
type MovementResult struct {
	Product     *domain.Product     `json:"product"`
	Transaction *domain.Transaction `json:"transaction"`
}

// RecordMovementHandler handles the record movement command
type RecordMovementHandler struct {
	products  domain.ProductRepository
	idem      IdempotencyStore
	publisher MovementEventPublisher
}

// NewRecordMovementHandler creates a new record movement handler. idem and
// publisher may be nil; both features degrade gracefully.
func NewRecordMovementHandler(products domain.ProductRepository, idem IdempotencyStore, publisher MovementEventPublisher) *RecordMovementHandler {
	return &RecordMovementHandler{products: products, idem: idem, publisher: publisher}
}

// maxCommitAttempts bounds the snapshot-reload retry loop after a
// compare-and-swap conflict. Only conflicts are retried; rejected
// authorizations and ledger rejections never are.
const maxCommitAttempts = 3

// Handle executes the record movement command: authorize, load the current
// snapshot, run the ledger state transition, and commit product update plus
// transaction record as one atomic unit.
func (h *RecordMovementHandler) Handle(ctx context.Context, cmd RecordMovementCommand) (*MovementResult, error) {
	if err := authz.Require(cmd.Principal, authz.OpCreateTransaction); err != nil {
		return nil, err
	}

	if cmd.ProductID == 0 {
		return nil, domain.ErrProductNotFound
	}

	if cmd.RequestID != "" && h.idem != nil {
		ok, err := h.idem.SetIdempotency(ctx, cmd.RequestID)
		if err != nil {
			return nil, fmt.Errorf("idempotency check failed: %w", err)
		}
		if !ok {
			return nil, domain.ErrDuplicateRequest
		}
	}

	var (
		updated domain.Product
		txn     domain.Transaction
	)
	for attempt := 1; ; attempt++ {
		snapshot, err := h.products.FindByID(cmd.ProductID)
		if err != nil {
			return nil, err
		}

		updated, txn, err = domain.ApplyMovement(*snapshot, cmd.Type, cmd.Quantity)
		if err != nil {
			return nil, err
		}

		err = h.products.CommitMovement(ctx, &updated, &txn, snapshot.Stock)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrConflict) && attempt < maxCommitAttempts {
			continue
		}
		return nil, err
	}

	h.publish(ctx, updated, txn)

	return &MovementResult{Product: &updated, Transaction: &txn}, nil
}

func (h *RecordMovementHandler) publish(ctx context.Context, product domain.Product, txn domain.Transaction) {
	if h.publisher == nil {
		return
	}

	if err := h.publisher.PublishMovementRecorded(ctx, product, txn); err != nil {
		logger.Warn(ctx).Err(err).Str("transaction_id", txn.ID).Msg("Failed to publish movement event")
	}

	if product.Stock < product.ReorderPoint {
		if err := h.publisher.PublishLowStock(ctx, product); err != nil {
			logger.Warn(ctx).Err(err).Uint("product_id", product.ID).Msg("Failed to publish low stock event")
		}
	}
}
