// Package dto converts domain entities to their wire representation: RFC 3339
// timestamps and default values for fields that may be absent after a partial
// join.
package dto

import (
	"time"

	"github.com/sukab-restaurant/tableside/internal/entity"
)

// timestampPlaceholder is rendered when an order carries no usable creation
// timestamp, rather than failing the whole response.
const timestampPlaceholder = ""

// MenuData is the embedded menu fragment of an order response.
type MenuData struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OrderData is the per-order wire shape shared by create, list, and detail.
type OrderData struct {
	OrderID     int64    `json:"order_id"`
	TableNumber int      `json:"table_number"`
	CookTime    int      `json:"cook_time"`
	Menu        MenuData `json:"menu"`
	CreatedAt   string   `json:"created_at"`
}

// OrderResponse wraps a single order for create/detail responses.
type OrderResponse struct {
	Order OrderData `json:"order"`
}

// OrderListResponse wraps the orders of a table for list responses.
type OrderListResponse struct {
	Orders []OrderData `json:"orders"`
}

// DeleteResponse carries the identifier of a removed order.
type DeleteResponse struct {
	OrderID int64 `json:"order_id"`
}

// NewOrderData maps an entity to the wire shape. A missing menu name becomes
// an empty string; the repository layer never substitutes placeholders itself.
func NewOrderData(order *entity.Order) OrderData {
	return OrderData{
		OrderID:     order.OrderID,
		TableNumber: order.TableNumber,
		CookTime:    order.CookTime,
		Menu: MenuData{
			ID:   int64(order.MenuID),
			Name: order.MenuName,
		},
		CreatedAt: formatCreatedAt(order.CreatedAt),
	}
}

// NewOrderResponse wraps a single order.
func NewOrderResponse(order *entity.Order) OrderResponse {
	return OrderResponse{Order: NewOrderData(order)}
}

// NewOrderListResponse maps a result set; an empty sequence stays an empty
// JSON array, never null.
func NewOrderListResponse(orders []entity.Order) OrderListResponse {
	list := make([]OrderData, 0, len(orders))
	for i := range orders {
		list = append(list, NewOrderData(&orders[i]))
	}
	return OrderListResponse{Orders: list}
}

func formatCreatedAt(t time.Time) string {
	if t.IsZero() {
		return timestampPlaceholder
	}
	return t.UTC().Format(time.RFC3339)
}
