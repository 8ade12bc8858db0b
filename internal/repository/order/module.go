package order

import "go.uber.org/fx"

// Module provides the order repository to Fx as its interface type.
var Module = fx.Provide(
	fx.Annotate(NewRepository, fx.As(new(Repository))),
)
