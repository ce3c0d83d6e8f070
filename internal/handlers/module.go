package handlers

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("handlers",
	fx.Provide(
		NewLanding,
		NewHealth,
	),
	fx.Invoke(RegisterRoutes),
	fx.Invoke(registerDrain),
)

// registerDrain marks the instance not-ready when shutdown begins. It is
// appended after the server hook, so fx runs it first on stop.
func registerDrain(lc fx.Lifecycle, h *Health) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			h.MarkDraining()
			return nil
		},
	})
}
