package components

import (
	"portfolio-services/internal/infra/gateway"
	"portfolio-services/internal/infra/mailer"
	"portfolio-services/internal/pkg/clock"
	"portfolio-services/internal/pkg/config"
	"portfolio-services/internal/usecase/commands"

	"go.uber.org/fx"
)

// AdapterModule wires the outbound HTTP adapters: the Paystack checkout
// client and the EmailJS notification dispatcher.
var AdapterModule = fx.Module("adapter",
	fx.Provide(
		fx.Annotate(
			NewPaystackClient,
			fx.As(new(commands.PaymentGateway)),
			fx.As(new(commands.WebhookDecoder)),
		),
		fx.Annotate(
			NewEmailJSDispatcher,
			fx.As(new(commands.NotificationDispatcher)),
		),
	),
)

func NewPaystackClient(cfg config.Config, clk clock.Clock) *gateway.PaystackClient {
	return gateway.NewPaystackClient(cfg.Paystack, clk)
}

func NewEmailJSDispatcher(cfg config.Config) *mailer.EmailJSDispatcher {
	return mailer.NewEmailJSDispatcher(cfg.Mailer)
}
