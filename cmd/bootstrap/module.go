package bootstrap

import (
	"portfolio-services/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	components.RepositoryModule,
	components.AdapterModule,
	components.UseCaseModule,
	components.HandlerModule,
	AdminModule,
)
