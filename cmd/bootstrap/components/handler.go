package components

import (
	"booking-pricing/internal/handler"
	"booking-pricing/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewPricingHandler,
	),
	fx.Invoke(handler.NewRouter),
)
