package bootstrap

import (
	"context"
	"log/slog"

	"booking-pricing/internal/infra/db"
	"booking-pricing/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDBPool,
	),
)

// NewDBPool opens the read pool with the configured limits and closes it on shutdown.
func NewDBPool(lc fx.Lifecycle, cfg config.DBConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("database pool ready",
				slog.String("host", cfg.Host),
				slog.String("db", cfg.DBName),
				slog.Int("max_conns", int(pool.Config().MaxConns)),
				slog.Duration("max_conn_lifetime", pool.Config().MaxConnLifetime))
			return nil
		},
		OnStop: func(_ context.Context) error {
			stat := pool.Stat()
			logger.Info("closing database pool",
				slog.Int("acquired_conns", int(stat.AcquiredConns())),
				slog.Int64("acquire_count", stat.AcquireCount()))
			cleanup()
			return nil
		},
	})

	return pool, nil
}
