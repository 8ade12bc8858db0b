package seeder

import (
	"context"

	"github.com/uptrace/bun"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sukab-restaurant/tableside/internal/entity"
)

// Module provides the seeder to Fx.
var Module = fx.Provide(New)

// Seeder fills the menus table for local/dev setups.
type Seeder struct {
	db     *bun.DB
	logger *zap.Logger
}

// New constructs a Seeder backed by the shared connection pool.
func New(db *bun.DB, logger *zap.Logger) *Seeder {
	return &Seeder{db: db, logger: logger}
}

// Menus inserts the ten menu items the valid menu_id range refers to,
// skipping rows that already exist.
func (s *Seeder) Menus(ctx context.Context) error {
	samples := []entity.Menu{
		{MenuID: 1, Name: "Nasi Goreng"},
		{MenuID: 2, Name: "Mie Goreng"},
		{MenuID: 3, Name: "Sate Ayam"},
		{MenuID: 4, Name: "Rendang"},
		{MenuID: 5, Name: "Gado-Gado"},
		{MenuID: 6, Name: "Soto Ayam"},
		{MenuID: 7, Name: "Nasi Uduk"},
		{MenuID: 8, Name: "Ayam Bakar"},
		{MenuID: 9, Name: "Bakso"},
		{MenuID: 10, Name: "Es Teh Manis"},
	}

	for _, sample := range samples {
		item := sample
		_, err := s.db.NewInsert().Model(&item).
			On("CONFLICT (menu_id) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	s.logger.Info("seeded menus", zap.Int("count", len(samples)))
	return nil
}
