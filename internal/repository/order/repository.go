package order

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sukab-restaurant/tableside/internal/entity"
	"github.com/sukab-restaurant/tableside/pkg/errorbank"
)

var repoTracer = otel.Tracer("github.com/sukab-restaurant/tableside/repository/order")

// ErrNotFound is returned when no order matches the table/identifier pair.
// Absence is a successful outcome, distinct from a storage error.
var ErrNotFound = errors.New("order not found")

// Repository is the storage contract for orders. The service depends on this
// interface so it can be exercised with test doubles instead of a live
// database.
type Repository interface {
	// Create persists the order and returns it with the storage-assigned
	// identifier filled in.
	Create(ctx context.Context, order *entity.Order) (*entity.Order, error)
	// ListByTable returns the table's orders joined with their menu name,
	// ascending by creation time, windowed by page and limit.
	ListByTable(ctx context.Context, tableNumber, page, limit int) ([]entity.Order, error)
	// GetDetail returns the order scoped to both table and identifier, joined
	// with its menu name, or ErrNotFound.
	GetDetail(ctx context.Context, tableNumber int, orderID int64) (*entity.Order, error)
	// Delete removes the order scoped to table and identifier and returns the
	// removed identifier, or ErrNotFound when no row matched.
	Delete(ctx context.Context, tableNumber int, orderID int64) (int64, error)
}

// BunRepository is the production Repository backed by the shared pool.
type BunRepository struct {
	db *bun.DB
}

// NewRepository wires the order repository to the pooled connection.
func NewRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db}
}

func (r *BunRepository) Create(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Create", trace.WithAttributes(
		attribute.Int("order.table_number", order.TableNumber),
		attribute.Int("order.menu_id", order.MenuID),
	))
	defer span.End()

	_, err := r.db.NewInsert().
		Model(order).
		Returning("order_id").
		Exec(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return nil, errorbank.FromStorage(err, errorbank.KindCreate, "failed to create order")
	}
	return order, nil
}

func (r *BunRepository) ListByTable(ctx context.Context, tableNumber, page, limit int) ([]entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.ListByTable", trace.WithAttributes(
		attribute.Int("order.table_number", tableNumber),
		attribute.Int("page", page),
		attribute.Int("limit", limit),
	))
	defer span.End()

	orders := []entity.Order{}
	err := r.db.NewSelect().
		Model(&orders).
		ColumnExpr("o.*").
		ColumnExpr("m.name AS name").
		Join("INNER JOIN menus AS m ON m.menu_id = o.menu_id").
		Where("o.table_number = ?", tableNumber).
		OrderExpr("o.created_at ASC").
		Limit(limit).
		Offset(page * limit).
		Scan(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, errorbank.FromStorage(err, errorbank.KindCreate, "failed to list orders")
	}
	return orders, nil
}

func (r *BunRepository) GetDetail(ctx context.Context, tableNumber int, orderID int64) (*entity.Order, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.GetDetail", trace.WithAttributes(
		attribute.Int("order.table_number", tableNumber),
		attribute.Int64("order.id", orderID),
	))
	defer span.End()

	order := new(entity.Order)
	err := r.db.NewSelect().
		Model(order).
		ColumnExpr("o.*").
		ColumnExpr("m.name AS name").
		Join("INNER JOIN menus AS m ON m.menu_id = o.menu_id").
		Where("o.table_number = ?", tableNumber).
		Where("o.order_id = ?", orderID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, errorbank.FromStorage(err, errorbank.KindDetail, "failed to get order detail")
	}
	return order, nil
}

func (r *BunRepository) Delete(ctx context.Context, tableNumber int, orderID int64) (int64, error) {
	ctx, span := repoTracer.Start(ctx, "OrderRepository.Delete", trace.WithAttributes(
		attribute.Int("order.table_number", tableNumber),
		attribute.Int64("order.id", orderID),
	))
	defer span.End()

	var removedID int64
	err := r.db.NewDelete().
		Model((*entity.Order)(nil)).
		Where("o.table_number = ?", tableNumber).
		Where("o.order_id = ?", orderID).
		Returning("order_id").
		Scan(ctx, &removedID)
	if errors.Is(err, sql.ErrNoRows) {
		// Already deleted or never existed; delete is idempotent.
		return 0, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		return 0, errorbank.FromStorage(err, errorbank.KindCreate, "failed to delete order")
	}
	return removedID, nil
}
