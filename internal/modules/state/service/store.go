package service

import (
	"context"
	"strings"

	"alert_bot/internal/models"
)

// Store читается один раз в начале запуска и пишется максимум один раз в конце.
type Store interface {
	Load(ctx context.Context) (models.StrategyState, error)
	Save(ctx context.Context, st models.StrategyState) error
}

// FileName — state_<strategy>.json, '+' заменяется на '_'.
func FileName(strategy string) string {
	return "state_" + strings.ReplaceAll(strategy, "+", "_") + ".json"
}
