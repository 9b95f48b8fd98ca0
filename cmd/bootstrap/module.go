package bootstrap

import (
	"library-lending/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MetricsModule,
	fx.Provide(NewDB),
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
