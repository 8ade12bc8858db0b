package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sukab-restaurant/tableside/internal/entity"
)

func TestNewOrderDataFormatsTimestampRFC3339(t *testing.T) {
	created := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	order := &entity.Order{
		OrderID:     17,
		TableNumber: 42,
		MenuID:      3,
		CookTime:    8,
		CreatedAt:   created,
		MenuName:    "Sate Ayam",
	}

	data := NewOrderData(order)

	assert.Equal(t, int64(17), data.OrderID)
	assert.Equal(t, 42, data.TableNumber)
	assert.Equal(t, 8, data.CookTime)
	assert.Equal(t, int64(3), data.Menu.ID)
	assert.Equal(t, "Sate Ayam", data.Menu.Name)
	assert.Equal(t, "2025-03-14T09:26:53Z", data.CreatedAt)
}

func TestNewOrderDataNormalizesToUTC(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	order := &entity.Order{
		CreatedAt: time.Date(2025, 3, 14, 16, 26, 53, 0, jakarta),
	}

	data := NewOrderData(order)
	assert.Equal(t, "2025-03-14T09:26:53Z", data.CreatedAt)
}

func TestNewOrderDataZeroTimestampBecomesPlaceholder(t *testing.T) {
	data := NewOrderData(&entity.Order{OrderID: 1})
	assert.Equal(t, "", data.CreatedAt)
}

func TestNewOrderDataMissingMenuName(t *testing.T) {
	data := NewOrderData(&entity.Order{MenuID: 4})
	assert.Equal(t, int64(4), data.Menu.ID)
	assert.Equal(t, "", data.Menu.Name)
}

func TestNewOrderListResponseEmptyIsArrayNotNull(t *testing.T) {
	resp := NewOrderListResponse(nil)
	require.NotNil(t, resp.Orders)
	assert.Len(t, resp.Orders, 0)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"orders":[]}`, string(raw))
}

func TestNewOrderListResponsePreservesOrder(t *testing.T) {
	orders := []entity.Order{
		{OrderID: 1, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{OrderID: 2, CreatedAt: time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC)},
		{OrderID: 3, CreatedAt: time.Date(2025, 1, 1, 0, 0, 2, 0, time.UTC)},
	}

	resp := NewOrderListResponse(orders)
	require.Len(t, resp.Orders, 3)
	assert.Equal(t, int64(1), resp.Orders[0].OrderID)
	assert.Equal(t, int64(2), resp.Orders[1].OrderID)
	assert.Equal(t, int64(3), resp.Orders[2].OrderID)
}
