package bootstrap

import (
	"booking-pricing/internal/pkg/config"

	"go.uber.org/fx"
)

// ConfigModule loads and validates the environment once and hands out the sections that
// infrastructure constructors take directly.
var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(c config.Config) config.DBConfig { return c.DB },
		func(c config.Config) config.PlatformConfig { return c.Platform },
	),
)
