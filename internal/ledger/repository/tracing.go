package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/inventory-ledger/internal/ledger/domain"
)

var tracer = otel.Tracer("ledger-repository")

// TracingProductRepository decorates the GORM product repository with spans.
// It implements domain.ProductRepository, so callers stay unaware of it.
type TracingProductRepository struct {
	inner *GormProductRepository
}

func NewTracingProductRepository(db *gorm.DB) *TracingProductRepository {
	return &TracingProductRepository{inner: NewGormProductRepository(db)}
}

func (r *TracingProductRepository) AutoMigrate() error {
	return r.inner.AutoMigrate()
}

func (r *TracingProductRepository) Create(product *domain.Product) error {
	_, span := tracer.Start(context.Background(), "repository.Create")
	defer span.End()

	err := r.inner.Create(product)
	recordError(span, err)
	if err == nil {
		span.SetAttributes(attribute.Int("product.id", int(product.ID)))
	}
	return err
}

func (r *TracingProductRepository) FindByID(id uint) (*domain.Product, error) {
	_, span := tracer.Start(context.Background(), "repository.FindByID",
		trace.WithAttributes(attribute.Int("product.id", int(id))),
	)
	defer span.End()

	product, err := r.inner.FindByID(id)
	recordError(span, err)
	if err == nil {
		span.SetAttributes(attribute.Int("product.stock", product.Stock))
	}
	return product, err
}

func (r *TracingProductRepository) FindAll(limit, offset int) ([]domain.Product, error) {
	_, span := tracer.Start(context.Background(), "repository.FindAll",
		trace.WithAttributes(
			attribute.Int("query.limit", limit),
			attribute.Int("query.offset", offset),
		),
	)
	defer span.End()

	products, err := r.inner.FindAll(limit, offset)
	recordError(span, err)
	if err == nil {
		span.SetAttributes(attribute.Int("result.count", len(products)))
	}
	return products, err
}

func (r *TracingProductRepository) Update(product *domain.Product) error {
	_, span := tracer.Start(context.Background(), "repository.Update",
		trace.WithAttributes(attribute.Int("product.id", int(product.ID))),
	)
	defer span.End()

	err := r.inner.Update(product)
	recordError(span, err)
	return err
}

func (r *TracingProductRepository) Delete(id uint) error {
	_, span := tracer.Start(context.Background(), "repository.Delete",
		trace.WithAttributes(attribute.Int("product.id", int(id))),
	)
	defer span.End()

	err := r.inner.Delete(id)
	recordError(span, err)
	return err
}

func (r *TracingProductRepository) CommitMovement(ctx context.Context, updated *domain.Product, txn *domain.Transaction, expectedStock int) error {
	ctx, span := tracer.Start(ctx, "repository.CommitMovement",
		trace.WithAttributes(
			attribute.Int("product.id", int(updated.ID)),
			attribute.Int("stock.expected", expectedStock),
			attribute.Int("stock.new", updated.Stock),
			attribute.String("transaction.id", txn.ID),
			attribute.String("transaction.type", string(txn.Type)),
		),
	)
	defer span.End()

	err := r.inner.CommitMovement(ctx, updated, txn, expectedStock)
	recordError(span, err)
	return err
}

func recordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
