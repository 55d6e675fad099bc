package components

import (
	"portfolio-services/internal/domain/order"
	"portfolio-services/internal/pkg/clock"
	"portfolio-services/internal/pkg/config"
	"portfolio-services/internal/usecase/commands"
	"portfolio-services/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) order.FormPolicy {
		return order.FormPolicy{PhoneRequired: cfg.Order.PhoneRequired}
	},
	func(cfg config.Config) commands.ManualInstructions {
		return commands.ManualInstructions{
			BTCAddress:      cfg.Manual.BTCAddress,
			USDTAddress:     cfg.Manual.USDTAddress,
			USDTNetwork:     cfg.Manual.USDTNetwork,
			BankName:        cfg.Manual.BankName,
			BankAccountName: cfg.Manual.BankAccountName,
			BankAccountNo:   cfg.Manual.BankAccountNo,
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewOrderCommands,
		commands.NewAuthCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewOrderQueries,
		queries.NewCatalogQueries,
	),
)
