package bootstrap

import (
	"context"
	"log/slog"

	"library-lending/internal/infra/db"
	"library-lending/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// NewDB opens the pool, applies pending migrations when enabled and closes the pool on stop.
// The memory driver gets a nil pool and never touches a database.
func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		return nil, nil
	}

	if cfg.DB.MigrateOnStart {
		if err := db.RunMigrations(cfg.DB); err != nil {
			return nil, err
		}
		logger.Info("database migrations applied", "database", cfg.DB.DBName)
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}
