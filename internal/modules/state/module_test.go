package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"alert_bot/internal/models"
	"alert_bot/internal/modules/config"
	"alert_bot/internal/modules/state/service"
	strategy "alert_bot/internal/modules/strategy/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestNewStore_FileKeyedOnCanonicalName(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{Strategy: "ema50+emaexit"}
	cfg.State.Backend = config.StateBackendFile
	cfg.State.Dir = dir

	engine, err := strategy.NewEngine(cfg.Strategy)
	require.NoError(t, err)

	store, err := NewStore(fxtest.NewLifecycle(t), cfg, engine)
	require.NoError(t, err)

	f, ok := store.(*service.File)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "state_EMA50_EMAexit.json"), f.Path())

	st := models.StrategyState{"BTCUSDT": {LastFingerprint: "2024-03-10 23:59 UTC_BUY"}}
	require.NoError(t, store.Save(context.Background(), st))

	_, err = os.Stat(filepath.Join(dir, "state_EMA50_EMAexit.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "state_ema50_emaexit.json"))
	assert.True(t, os.IsNotExist(err))
}
