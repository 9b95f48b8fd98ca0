package components

import (
	"library-lending/internal/handler"
	"library-lending/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookHandler,
		api.NewLedgerHandler,
	),
	fx.Invoke(handler.NewRouter),
)
