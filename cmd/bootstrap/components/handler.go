package components

import (
	"engagement-scheduler/internal/handler"
	"engagement-scheduler/internal/handler/api"
	"engagement-scheduler/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewRunHandler,
		api.NewSequenceHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
