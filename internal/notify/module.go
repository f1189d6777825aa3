package notify

import (
	"alert_bot/internal/modules/config"
	"alert_bot/pkg/logger"

	"go.uber.org/fx"
)

// Module: dry run или нет токена — Stdout, иначе Telegram.
func Module() fx.Option {
	return fx.Module("notify",
		fx.Provide(
			func(cfg *config.Config) (Notifier, error) {
				if cfg.DryRun {
					logger.Info("dry run: notifications go to log")
					return NewStdout(), nil
				}
				return NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
			},
		),
	)
}
