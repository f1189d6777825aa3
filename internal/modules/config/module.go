package config

import "go.uber.org/fx"

// Module регистрирует конфиг как fx-провайдер; Overrides приходят из CLI.
func Module(o Overrides) fx.Option {
	return fx.Module("config",
		fx.Supply(o),
		fx.Provide(
			NewConfig,
		),
	)
}
