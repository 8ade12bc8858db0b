package menu

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

var repoTracer = otel.Tracer("github.com/sukab-restaurant/tableside/repository/menu")

// ErrNotFound is returned when no menu row matches the identifier.
var ErrNotFound = errors.New("menu not found")

// Repository is the read-only storage contract for menu items. No placeholder
// substitution happens here; rendering defaults is the response mapper's job.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*entity.Menu, error)
}

// BunRepository is the production Repository backed by the shared pool.
type BunRepository struct {
	db *bun.DB
}

// NewRepository wires the menu repository to the pooled connection.
func NewRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db}
}

func (r *BunRepository) GetByID(ctx context.Context, id int64) (*entity.Menu, error) {
	ctx, span := repoTracer.Start(ctx, "MenuRepository.GetByID", trace.WithAttributes(
		attribute.Int64("menu.id", id),
	))
	defer span.End()

	item := new(entity.Menu)
	err := r.db.NewSelect().
		Model(item).
		Where("m.menu_id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "select failed")
		return nil, errorbank.FromStorage(err, errorbank.KindCreate, "failed to get menu")
	}
	return item, nil
}
