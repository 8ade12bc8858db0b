package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Order represents a single table-side order stored in the relational database.
// OrderID is non-authoritative until storage assigns it; CookTime is drawn once
// at creation and never recomputed.
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	OrderID     int64     `bun:"order_id,pk,autoincrement"`
	TableNumber int       `bun:"table_number"`
	MenuID      int       `bun:"menu_id"`
	CookTime    int       `bun:"cook_time"`
	CreatedAt   time.Time `bun:"created_at"`

	// MenuName is populated only when the order is joined with menu data at
	// read time; it is never written back.
	MenuName string `bun:"name,scanonly"`
}

// NewOrder builds an order ready for persistence. Storage assigns the
// identifier; the creation timestamp is stamped here, in UTC, exactly once.
func NewOrder(tableNumber, menuID, cookTime int) *Order {
	return &Order{
		TableNumber: tableNumber,
		MenuID:      menuID,
		CookTime:    cookTime,
		CreatedAt:   time.Now().UTC(),
	}
}
