package bootstrap

import (
	"context"

	"portfolio-services/internal/pkg/config"
	"portfolio-services/internal/usecase/commands"

	"go.uber.org/fx"
)

// AdminModule provisions the configured reviewer account on startup so the
// admin surface never depends on a signup flow.
var AdminModule = fx.Module("admin",
	fx.Invoke(EnsureAdminUser),
)

func EnsureAdminUser(lc fx.Lifecycle, cfg config.Config, auth commands.AuthCommands) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return auth.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
		},
	})
}
