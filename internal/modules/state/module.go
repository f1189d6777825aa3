package state

import (
	"context"
	"fmt"

	"alert_bot/internal/modules/config"
	"alert_bot/internal/modules/state/service"
	strategy "alert_bot/internal/modules/strategy/service"
	"alert_bot/pkg/db"
	"alert_bot/pkg/logger"

	"go.uber.org/fx"
)

// Module выбирает хранилище состояния по cfg.State.Backend.
func Module() fx.Option {
	return fx.Module("state",
		fx.Provide(
			NewStore,
		),
	)
}

// NewStore: ключ хранилища — каноническое имя стратегии (engine.Name()),
// а не строка из конфига, иначе другой регистр потеряет историю.
func NewStore(lc fx.Lifecycle, cfg *config.Config, engine strategy.Engine) (service.Store, error) {
	switch cfg.State.Backend {
	case config.StateBackendPostgres:
		return newPostgres(lc, cfg, engine.Name())
	default:
		f := service.NewFile(cfg.State.Dir, engine.Name())
		logger.Info("state file: %s", f.Path())
		return f, nil
	}
}

func newPostgres(lc fx.Lifecycle, cfg *config.Config, name string) (service.Store, error) {
	ctx := context.Background()
	poolMaster, err := db.NewPool(ctx, db.PoolConfig{
		DSN: cfg.State.DSN,
	})
	if err != nil {
		return nil, fmt.Errorf("state postgres: %w", err)
	}

	tx := db.NewPgTxManager(poolMaster)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			tx.Close()
			return nil
		},
	})

	store := service.NewPostgres(tx, name)
	if err := store.EnsureSchema(ctx); err != nil {
		tx.Close()
		return nil, err
	}
	return store, nil
}
