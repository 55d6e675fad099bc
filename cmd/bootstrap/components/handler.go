package components

import (
	"portfolio-services/internal/handler"
	"portfolio-services/internal/handler/api"
	"portfolio-services/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCatalogHandler,
		api.NewOrderHandler,
		api.NewPaymentHandler,
		api.NewAuthHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
