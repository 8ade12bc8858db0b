package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sukab-restaurant/tableside/internal/cache"
	"github.com/sukab-restaurant/tableside/internal/config"
	"github.com/sukab-restaurant/tableside/internal/cooktime"
	"github.com/sukab-restaurant/tableside/internal/entity"
	"github.com/sukab-restaurant/tableside/internal/messaging"
	"github.com/sukab-restaurant/tableside/internal/observability"
	menurepo "github.com/sukab-restaurant/tableside/internal/repository/menu"
	orderrepo "github.com/sukab-restaurant/tableside/internal/repository/order"
	"github.com/sukab-restaurant/tableside/internal/validation"
	"github.com/sukab-restaurant/tableside/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/sukab-restaurant/tableside/service/order")

// ListQuery carries raw pagination inputs. Nil means the parameter was absent
// and the default applies; supplied values are normalized, never rejected.
type ListQuery struct {
	Page  *int
	Limit *int
}

// Service orchestrates the order lifecycle: validation, cook-time assignment,
// repository calls, and menu enrichment. It holds no state of its own beyond
// injected collaborators.
type Service struct {
	orders    orderrepo.Repository
	menus     menurepo.Repository
	policy    *cooktime.Policy
	cache     cache.Store
	cacheTTL  time.Duration
	logger    *zap.Logger
	publisher messaging.Client
	metrics   *observability.Metrics
	messaging messagingConfig
}

// messagingConfig contains the messaging knobs the service cares about.
type messagingConfig struct {
	enabled bool
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Orders    orderrepo.Repository
	Menus     menurepo.Repository
	Policy    *cooktime.Policy
	Cache     cache.Store
	Config    config.Config
	Logger    *zap.Logger
	Publisher messaging.Client
	Metrics   *observability.Metrics `optional:"true"`
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		orders:    p.Orders,
		menus:     p.Menus,
		policy:    p.Policy,
		cache:     p.Cache,
		cacheTTL:  p.Config.Cache.DefaultTTL,
		logger:    p.Logger,
		publisher: p.Publisher,
		metrics:   p.Metrics,
		messaging: messagingConfig{enabled: p.Config.Messaging.Enabled},
	}
}

// Create validates the inputs, draws a cook time, persists the order, and
// enriches it with its menu name. Validation failures short-circuit before any
// repository call; the first repository failure is terminal for the request.
func (s *Service) Create(ctx context.Context, tableNumber, menuID int) (*entity.Order, error) {
	if err := validation.TableNumber(tableNumber); err != nil {
		return nil, asValidation(err)
	}
	if err := validation.MenuID(menuID); err != nil {
		return nil, asValidation(err)
	}

	ctx, span := serviceTracer.Start(ctx, "OrderService.Create", trace.WithAttributes(
		attribute.Int("order.table_number", tableNumber),
		attribute.Int("order.menu_id", menuID),
	))
	defer span.End()

	order := entity.NewOrder(tableNumber, menuID, s.policy.Draw())

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, err
	}

	name, err := s.menuName(ctx, created.MenuID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "menu lookup error")
		return nil, err
	}
	created.MenuName = name

	if s.metrics != nil {
		s.metrics.OrdersPlaced.Inc()
		s.metrics.CookTimeAssigned.Observe(float64(created.CookTime))
	}
	s.publishOrderPlaced(ctx, created)

	s.logger.Info("order created",
		zap.Int64("order_id", created.OrderID),
		zap.Int("table_number", created.TableNumber),
		zap.Int("cook_time", created.CookTime),
	)
	return created, nil
}

// List returns the table's orders, ascending by creation time, windowed by the
// normalized page and limit. An empty table yields an empty sequence, not an
// error.
func (s *Service) List(ctx context.Context, tableNumber int, q ListQuery) ([]entity.Order, error) {
	if err := validation.TableNumber(tableNumber); err != nil {
		return nil, asValidation(err)
	}

	ctx, span := serviceTracer.Start(ctx, "OrderService.List", trace.WithAttributes(
		attribute.Int("order.table_number", tableNumber),
	))
	defer span.End()

	page := validation.NormalizePage(q.Page)
	limit := validation.NormalizeLimit(q.Limit)

	orders, err := s.orders.ListByTable(ctx, tableNumber, page, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, err
	}
	return orders, nil
}

// Detail returns the order scoped to both table and identifier. An order
// belongs to exactly the table it was created for; cross-table lookups miss.
func (s *Service) Detail(ctx context.Context, tableNumber int, orderID int64) (*entity.Order, error) {
	if err := validation.TableNumber(tableNumber); err != nil {
		return nil, asValidation(err)
	}

	ctx, span := serviceTracer.Start(ctx, "OrderService.Detail", trace.WithAttributes(
		attribute.Int("order.table_number", tableNumber),
		attribute.Int64("order.id", orderID),
	))
	defer span.End()

	order, err := s.orders.GetDetail(ctx, tableNumber, orderID)
	if errors.Is(err, orderrepo.ErrNotFound) {
		return nil, errorbank.NotFound("order not found")
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, err
	}
	return order, nil
}

// Delete removes the order scoped to table and identifier and returns the
// removed id. Idempotent: a second delete of the same identifier, or a delete
// of a nonexistent one, yields not-found, never an error.
func (s *Service) Delete(ctx context.Context, tableNumber int, orderID int64) (int64, error) {
	if err := validation.TableNumber(tableNumber); err != nil {
		return 0, asValidation(err)
	}

	ctx, span := serviceTracer.Start(ctx, "OrderService.Delete", trace.WithAttributes(
		attribute.Int("order.table_number", tableNumber),
		attribute.Int64("order.id", orderID),
	))
	defer span.End()

	removedID, err := s.orders.Delete(ctx, tableNumber, orderID)
	if errors.Is(err, orderrepo.ErrNotFound) {
		return 0, errorbank.NotFound("order not found")
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.OrdersDeleted.Inc()
	}
	s.logger.Info("order deleted",
		zap.Int64("order_id", removedID),
		zap.Int("table_number", tableNumber),
	)
	return removedID, nil
}

// menuName resolves a menu name, consulting the cache before storage. Menu
// rows are effectively immutable here, so caching is safe.
func (s *Service) menuName(ctx context.Context, menuID int) (string, error) {
	key := s.menuCacheKey(menuID)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		return string(cached), nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("menu cache read failed", zap.Int("menu_id", menuID), zap.Error(err))
	}

	item, err := s.menus.GetByID(ctx, int64(menuID))
	if errors.Is(err, menurepo.ErrNotFound) {
		// The id passed validation but has no row; a seeding/storage fault.
		return "", errorbank.Create("menu not found", errorbank.WithCause(err))
	}
	if err != nil {
		return "", err
	}

	if err := s.cache.Set(ctx, key, []byte(item.Name), s.cacheTTL); err != nil {
		s.logger.Warn("menu cache write failed", zap.Int("menu_id", menuID), zap.Error(err))
	}
	return item.Name, nil
}

func (s *Service) menuCacheKey(menuID int) string {
	return fmt.Sprintf("menus:%d", menuID)
}

func (s *Service) publishOrderPlaced(ctx context.Context, order *entity.Order) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	event := OrderPlacedEvent{
		OrderID:     order.OrderID,
		TableNumber: order.TableNumber,
		MenuID:      order.MenuID,
		MenuName:    order.MenuName,
		CookTime:    order.CookTime,
		CreatedAt:   order.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal order placed", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, []byte(fmt.Sprintf("order-%d", order.OrderID)), payload); err != nil {
		// Fire-and-forget: the kitchen feed must not fail the request.
		s.logger.Error("publish order placed", zap.Error(err))
	}
}

func asValidation(err error) error {
	var vErr validation.ValidationError
	if errors.As(err, &vErr) {
		return errorbank.Validation(vErr.Message, errorbank.WithField(vErr.Field))
	}
	return errorbank.Validation(err.Error())
}

// OrderPlacedEvent is emitted to the kitchen feed when an order is persisted.
type OrderPlacedEvent struct {
	OrderID     int64     `json:"order_id"`
	TableNumber int       `json:"table_number"`
	MenuID      int       `json:"menu_id"`
	MenuName    string    `json:"menu_name"`
	CookTime    int       `json:"cook_time"`
	CreatedAt   time.Time `json:"created_at"`
}
