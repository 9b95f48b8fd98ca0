package bootstrap

import (
	"log/slog"

	"library-lending/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	fx.Invoke(logConfig),
)

// logConfig records the settings that change runtime behavior. Secrets are left out.
func logConfig(cfg config.Config, logger *slog.Logger) {
	logger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"storage_driver", cfg.Storage.Driver,
		"db_host", cfg.DB.Host,
		"db_name", cfg.DB.DBName,
		"migrate_on_start", cfg.DB.MigrateOnStart,
		"retry_max_attempts", cfg.Retry.MaxAttempts,
		"retry_base_delay", cfg.Retry.BaseDelay.String(),
		"slow_threshold", cfg.Pipeline.SlowThreshold.String())
}
