package strategy

import (
	"alert_bot/internal/modules/config"
	"alert_bot/internal/modules/strategy/service"

	"go.uber.org/fx"
)

// Module: одна стратегия на процесс, неизвестное имя — ошибка старта.
func Module() fx.Option {
	return fx.Module("strategy",
		fx.Provide(
			func(cfg *config.Config) (service.Engine, error) {
				return service.NewEngine(cfg.Strategy)
			},
		),
	)
}
