package components

import (
	"booking-pricing/internal/infra/platform"
	"booking-pricing/internal/usecase/queries"

	"go.uber.org/fx"
)

var PlatformModule = fx.Module("platform",
	fx.Provide(
		fx.Annotate(
			platform.NewAmenityPricingClient,
			fx.As(new(queries.AmenityPricingClient)),
		),
	),
)
