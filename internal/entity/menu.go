package entity

import "github.com/uptrace/bun"

// Menu is a purchasable item. Read-only from this service's perspective; the
// rows are owned by an external menu-management process.
type Menu struct {
	bun.BaseModel `bun:"table:menus,alias:m"`

	MenuID int64  `bun:"menu_id,pk,autoincrement"`
	Name   string `bun:"name"`
}
