package order

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sukab-restaurant/tableside/internal/cache"
	"github.com/sukab-restaurant/tableside/internal/config"
	"github.com/sukab-restaurant/tableside/internal/cooktime"
	"github.com/sukab-restaurant/tableside/internal/entity"
	"github.com/sukab-restaurant/tableside/internal/messaging"
	menurepo "github.com/sukab-restaurant/tableside/internal/repository/menu"
	orderrepo "github.com/sukab-restaurant/tableside/internal/repository/order"
	"github.com/sukab-restaurant/tableside/pkg/errorbank"
)

type fakeOrderRepo struct {
	createFn func(ctx context.Context, order *entity.Order) (*entity.Order, error)
	listFn   func(ctx context.Context, tableNumber, page, limit int) ([]entity.Order, error)
	detailFn func(ctx context.Context, tableNumber int, orderID int64) (*entity.Order, error)
	deleteFn func(ctx context.Context, tableNumber int, orderID int64) (int64, error)

	createCalls int
	listCalls   int
	detailCalls int
	deleteCalls int
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	f.createCalls++
	if f.createFn == nil {
		next := *order
		next.OrderID = 1
		return &next, nil
	}
	return f.createFn(ctx, order)
}

func (f *fakeOrderRepo) ListByTable(ctx context.Context, tableNumber, page, limit int) ([]entity.Order, error) {
	f.listCalls++
	if f.listFn == nil {
		return []entity.Order{}, nil
	}
	return f.listFn(ctx, tableNumber, page, limit)
}

func (f *fakeOrderRepo) GetDetail(ctx context.Context, tableNumber int, orderID int64) (*entity.Order, error) {
	f.detailCalls++
	if f.detailFn == nil {
		return nil, orderrepo.ErrNotFound
	}
	return f.detailFn(ctx, tableNumber, orderID)
}

func (f *fakeOrderRepo) Delete(ctx context.Context, tableNumber int, orderID int64) (int64, error) {
	f.deleteCalls++
	if f.deleteFn == nil {
		return 0, orderrepo.ErrNotFound
	}
	return f.deleteFn(ctx, tableNumber, orderID)
}

type fakeMenuRepo struct {
	getFn    func(ctx context.Context, id int64) (*entity.Menu, error)
	getCalls int
}

func (f *fakeMenuRepo) GetByID(ctx context.Context, id int64) (*entity.Menu, error) {
	f.getCalls++
	if f.getFn == nil {
		return &entity.Menu{MenuID: id, Name: "Nasi Goreng"}, nil
	}
	return f.getFn(ctx, id)
}

type fakeCache struct {
	entries map[string][]byte
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	if v, ok := f.entries[key]; ok {
		return v, nil
	}
	return nil, cache.ErrCacheMiss
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.sets++
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.entries, key)
	return nil
}

type fakePublisher struct {
	published [][]byte
}

func (f *fakePublisher) Publish(_ context.Context, _ []byte, value []byte) error {
	f.published = append(f.published, value)
	return nil
}

func (f *fakePublisher) Consume(ctx context.Context, _ messaging.Handler) error {
	<-ctx.Done()
	return ctx.Err()
}

func (f *fakePublisher) Topic() string { return "test.orders" }

type deps struct {
	orders    *fakeOrderRepo
	menus     *fakeMenuRepo
	cache     *fakeCache
	publisher *fakePublisher
	cfg       config.Config
}

func newTestService(t *testing.T, mutate func(*deps)) (*Service, *deps) {
	t.Helper()
	d := &deps{
		orders:    &fakeOrderRepo{},
		menus:     &fakeMenuRepo{},
		cache:     newFakeCache(),
		publisher: &fakePublisher{},
		cfg: config.Config{
			Cooking: config.Cooking{MinMinutes: 5, MaxMinutes: 10},
			Cache:   config.Cache{DefaultTTL: time.Minute},
		},
	}
	if mutate != nil {
		mutate(d)
	}

	svc := NewService(Params{
		Orders:    d.orders,
		Menus:     d.menus,
		Policy:    cooktime.New(d.cfg.Cooking, rand.NewSource(1)),
		Cache:     d.cache,
		Config:    d.cfg,
		Logger:    zap.NewNop(),
		Publisher: d.publisher,
	})
	return svc, d
}

func TestCreateRejectsInvalidTableBeforeStorage(t *testing.T) {
	svc, d := newTestService(t, nil)

	for _, table := range []int{0, -1, 101} {
		_, err := svc.Create(context.Background(), table, 3)
		require.Error(t, err)

		appErr := errorbank.From(err)
		assert.Equal(t, errorbank.KindValidation, appErr.Kind())
		assert.Equal(t, "table_number", appErr.Field())
	}
	assert.Zero(t, d.orders.createCalls, "storage must not be reached on invalid input")
}

func TestCreateRejectsInvalidMenuBeforeStorage(t *testing.T) {
	svc, d := newTestService(t, nil)

	for _, menu := range []int{0, -2, 11} {
		_, err := svc.Create(context.Background(), 7, menu)
		require.Error(t, err)

		appErr := errorbank.From(err)
		assert.Equal(t, errorbank.KindValidation, appErr.Kind())
		assert.Equal(t, "menu_id", appErr.Field())
	}
	assert.Zero(t, d.orders.createCalls)
	assert.Zero(t, d.menus.getCalls)
}

func TestCreateAssignsCookTimeAndEnrichesMenuName(t *testing.T) {
	svc, _ := newTestService(t, func(d *deps) {
		d.orders.createFn = func(_ context.Context, order *entity.Order) (*entity.Order, error) {
			next := *order
			next.OrderID = 99
			return &next, nil
		}
		d.menus.getFn = func(_ context.Context, id int64) (*entity.Menu, error) {
			return &entity.Menu{MenuID: id, Name: "Rendang"}, nil
		}
	})

	created, err := svc.Create(context.Background(), 12, 4)
	require.NoError(t, err)

	assert.Equal(t, int64(99), created.OrderID)
	assert.Equal(t, 12, created.TableNumber)
	assert.Equal(t, 4, created.MenuID)
	assert.Equal(t, "Rendang", created.MenuName)
	assert.GreaterOrEqual(t, created.CookTime, 5)
	assert.LessOrEqual(t, created.CookTime, 10)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, time.UTC, created.CreatedAt.Location())
}

func TestCreateMemoizesMenuName(t *testing.T) {
	svc, d := newTestService(t, nil)

	_, err := svc.Create(context.Background(), 3, 6)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 3, 6)
	require.NoError(t, err)

	assert.Equal(t, 1, d.menus.getCalls, "second lookup should hit the cache")
	assert.Equal(t, 1, d.cache.sets)
}

func TestCreatePassesThroughRepositoryFailure(t *testing.T) {
	cause := errors.New("pool exhausted")
	svc, _ := newTestService(t, func(d *deps) {
		d.orders.createFn = func(context.Context, *entity.Order) (*entity.Order, error) {
			return nil, errorbank.FromStorage(cause, errorbank.KindCreate, "failed to create order")
		}
	})

	_, err := svc.Create(context.Background(), 3, 6)
	require.Error(t, err)
	assert.Equal(t, errorbank.KindCreate, errorbank.From(err).Kind())
	assert.ErrorIs(t, err, cause)
}

func TestCreateMissingMenuRowIsAServerFault(t *testing.T) {
	svc, _ := newTestService(t, func(d *deps) {
		d.menus.getFn = func(context.Context, int64) (*entity.Menu, error) {
			return nil, menurepo.ErrNotFound
		}
	})

	_, err := svc.Create(context.Background(), 3, 6)
	require.Error(t, err)
	assert.Equal(t, errorbank.KindCreate, errorbank.From(err).Kind())
}

func TestCreatePublishesEventWhenMessagingEnabled(t *testing.T) {
	svc, d := newTestService(t, func(d *deps) {
		d.cfg.Messaging.Enabled = true
	})

	created, err := svc.Create(context.Background(), 8, 2)
	require.NoError(t, err)

	require.Len(t, d.publisher.published, 1)
	var event OrderPlacedEvent
	require.NoError(t, json.Unmarshal(d.publisher.published[0], &event))
	assert.Equal(t, created.OrderID, event.OrderID)
	assert.Equal(t, 8, event.TableNumber)
	assert.Equal(t, created.MenuName, event.MenuName)
}

func TestCreateSkipsPublishWhenMessagingDisabled(t *testing.T) {
	svc, d := newTestService(t, nil)

	_, err := svc.Create(context.Background(), 8, 2)
	require.NoError(t, err)
	assert.Empty(t, d.publisher.published)
}

func TestListNormalizesPagination(t *testing.T) {
	var gotPage, gotLimit int
	svc, _ := newTestService(t, func(d *deps) {
		d.orders.listFn = func(_ context.Context, _, page, limit int) ([]entity.Order, error) {
			gotPage, gotLimit = page, limit
			return []entity.Order{}, nil
		}
	})

	_, err := svc.List(context.Background(), 5, ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, gotPage, "absent page defaults to 0")
	assert.Equal(t, 5, gotLimit, "absent limit defaults to 5")

	zero, two := 0, 2
	_, err = svc.List(context.Background(), 5, ListQuery{Page: &two, Limit: &zero})
	require.NoError(t, err)
	assert.Equal(t, 2, gotPage)
	assert.Equal(t, 1, gotLimit, "limit 0 is coerced to 1")
}

func TestListRejectsInvalidTable(t *testing.T) {
	svc, d := newTestService(t, nil)

	_, err := svc.List(context.Background(), 101, ListQuery{})
	require.Error(t, err)
	assert.Equal(t, errorbank.KindValidation, errorbank.From(err).Kind())
	assert.Zero(t, d.orders.listCalls)
}

func TestListEmptyTableYieldsEmptySlice(t *testing.T) {
	svc, _ := newTestService(t, nil)

	orders, err := svc.List(context.Background(), 5, ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestDetailMapsMissToNotFound(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.Detail(context.Background(), 5, 77)
	require.Error(t, err)
	assert.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
}

func TestDetailScopesToTable(t *testing.T) {
	svc, _ := newTestService(t, func(d *deps) {
		d.orders.detailFn = func(_ context.Context, tableNumber int, orderID int64) (*entity.Order, error) {
			if tableNumber != 5 {
				return nil, orderrepo.ErrNotFound
			}
			return &entity.Order{OrderID: orderID, TableNumber: tableNumber, MenuName: "Bakso"}, nil
		}
	})

	order, err := svc.Detail(context.Background(), 5, 77)
	require.NoError(t, err)
	assert.Equal(t, int64(77), order.OrderID)

	// Same identifier through a different table misses.
	_, err = svc.Detail(context.Background(), 6, 77)
	require.Error(t, err)
	assert.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
}

func TestDeleteReturnsRemovedID(t *testing.T) {
	svc, _ := newTestService(t, func(d *deps) {
		d.orders.deleteFn = func(_ context.Context, _ int, orderID int64) (int64, error) {
			return orderID, nil
		}
	})

	removed, err := svc.Delete(context.Background(), 5, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), removed)
}

func TestDeleteIsIdempotent(t *testing.T) {
	deleted := false
	svc, _ := newTestService(t, func(d *deps) {
		d.orders.deleteFn = func(_ context.Context, _ int, orderID int64) (int64, error) {
			if deleted {
				return 0, orderrepo.ErrNotFound
			}
			deleted = true
			return orderID, nil
		}
	})

	removed, err := svc.Delete(context.Background(), 5, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), removed)

	_, err = svc.Delete(context.Background(), 5, 42)
	require.Error(t, err)
	assert.Equal(t, errorbank.KindNotFound, errorbank.From(err).Kind())
}

func TestDeleteRejectsInvalidTable(t *testing.T) {
	svc, d := newTestService(t, nil)

	_, err := svc.Delete(context.Background(), 0, 42)
	require.Error(t, err)
	assert.Equal(t, errorbank.KindValidation, errorbank.From(err).Kind())
	assert.Zero(t, d.orders.deleteCalls)
}
