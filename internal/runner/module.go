package runner

import (
	"alert_bot/internal/modules/binance/service"
	"alert_bot/internal/modules/config"
	state "alert_bot/internal/modules/state/service"
	strategy "alert_bot/internal/modules/strategy/service"
	"alert_bot/internal/notify"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			func(
				cfg *config.Config,
				bn *service.Client,
				engine strategy.Engine,
				n notify.Notifier,
				store state.Store,
			) *Runner {
				return New(bn, bn, engine, n, store, Options{
					Interval:       cfg.IntervalLabel(),
					Workers:        cfg.Runner.Workers,
					PushgatewayURL: cfg.Metrics.PushgatewayURL,
					MetricsJob:     cfg.Metrics.Job,
				})
			},
		),
	)
}
