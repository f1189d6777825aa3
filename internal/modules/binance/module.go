package binance

import (
	"alert_bot/internal/modules/binance/service"
	"alert_bot/internal/modules/config"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("binance",
		fx.Provide(
			func(cfg *config.Config) *service.Client {
				return service.NewClient(service.Config{
					BaseURL:    cfg.Binance.BaseURL,
					QuoteAsset: cfg.Binance.QuoteAsset,
					Interval:   cfg.Binance.Interval,
					Limit:      cfg.Binance.Limit,
					Timeout:    cfg.Binance.Timeout,
				})
			},
		),
	)
}
