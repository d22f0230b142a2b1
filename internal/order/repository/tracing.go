package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/freshmarket/marketplace/internal/order/domain"
)

var tracer = otel.Tracer("order-repository")

// TracingOrderRepository decorates the GORM order repository with spans
type TracingOrderRepository struct {
	inner *GormOrderRepository
}

// NewTracingOrderRepository creates an order repository with tracing
func NewTracingOrderRepository(db *gorm.DB) *TracingOrderRepository {
	return &TracingOrderRepository{inner: NewGormOrderRepository(db)}
}

// AutoMigrate runs the inner repository migrations
func (r *TracingOrderRepository) AutoMigrate() error {
	return r.inner.AutoMigrate()
}

func (r *TracingOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("order.number", order.OrderNumber),
			attribute.Int("order.item_count", len(order.Items)),
		),
	)
	defer span.End()

	if err := r.inner.Create(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("order.id", int(order.ID)))
	return nil
}

func (r *TracingOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.Int("order.id", int(id))),
	)
	defer span.End()

	order, err := r.inner.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return order, nil
}

func (r *TracingOrderRepository) FindByUser(ctx context.Context, userID uint, status string, limit int) ([]domain.Order, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByUser",
		trace.WithAttributes(
			attribute.Int("user.id", int(userID)),
			attribute.String("order.status", status),
		),
	)
	defer span.End()

	orders, err := r.inner.FindByUser(ctx, userID, status, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("order.count", len(orders)))
	return orders, nil
}

func (r *TracingOrderRepository) FindAll(ctx context.Context, status string, limit int) ([]domain.Order, error) {
	ctx, span := tracer.Start(ctx, "repository.FindAll",
		trace.WithAttributes(attribute.String("order.status", status)),
	)
	defer span.End()

	orders, err := r.inner.FindAll(ctx, status, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("order.count", len(orders)))
	return orders, nil
}

func (r *TracingOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	ctx, span := tracer.Start(ctx, "repository.Update",
		trace.WithAttributes(attribute.Int("order.id", int(order.ID))),
	)
	defer span.End()

	if err := r.inner.Update(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
