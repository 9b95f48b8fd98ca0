package bootstrap

import (
	"library-lending/internal/handler"
	"library-lending/internal/infra/metrics"
	"library-lending/internal/pkg/config"
	"library-lending/internal/usecase/shared"

	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		func(cfg config.Config) *metrics.Recorder {
			return metrics.NewRecorder(cfg.Metrics)
		},
		func(r *metrics.Recorder) shared.Recorder { return r },
		func(r *metrics.Recorder) handler.MetricsHandler { return r.Handler() },
	),
)
