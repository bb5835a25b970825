package bootstrap

import (
	"booking-pricing/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	components.PersistenceModule,
	components.PlatformModule,
	components.UseCaseModule,
	components.HandlerModule,
)
