package cooktime

import (
	"go.uber.org/fx"

	"github.com/sukab-restaurant/tableside/internal/config"
)

// Module provides the cook-time policy to Fx.
var Module = fx.Provide(func(cfg config.Config) *Policy {
	return New(cfg.Cooking, nil)
})
