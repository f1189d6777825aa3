//go:build integration

package service

import (
	"context"
	"errors"
	"os"
	"testing"

	"alert_bot/internal/models"
	"alert_bot/pkg/db"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// go test -tags integration ./internal/modules/state/... с ALERTBOT_TEST_DSN
func newTestPostgres(t *testing.T, strategy string) (*Postgres, *db.PgTxManager) {
	t.Helper()
	dsn := os.Getenv("ALERTBOT_TEST_DSN")
	if dsn == "" {
		t.Skip("ALERTBOT_TEST_DSN not set")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, db.PoolConfig{DSN: dsn})
	require.NoError(t, err)
	tx := db.NewPgTxManager(pool)
	t.Cleanup(tx.Close)

	p := NewPostgres(tx, strategy)
	require.NoError(t, p.EnsureSchema(ctx))
	_, err = tx.Conn().Exec(ctx, `DELETE FROM alert_state WHERE strategy = $1`, strategy)
	require.NoError(t, err)
	return p, tx
}

func TestPostgres_SaveLoad(t *testing.T) {
	ctx := context.Background()
	p, _ := newTestPostgres(t, "it_EMA50+EMAexit")

	st, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, st)

	want := models.StrategyState{
		"BTCUSDT": {LastFingerprint: "2024-03-10 23:59 UTC_BUY"},
		"ETHUSDT": {LastFingerprint: "2024-03-09 23:59 UTC_SELL"},
	}
	require.NoError(t, p.Save(ctx, want))

	got, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// апсерт поверх существующей строки
	want["BTCUSDT"] = models.SymbolState{LastFingerprint: "2024-03-11 23:59 UTC_SELL"}
	require.NoError(t, p.Save(ctx, want))
	got, err = p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPostgres_StrategiesIsolated(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestPostgres(t, "it_A")
	b, _ := newTestPostgres(t, "it_B")

	require.NoError(t, a.Save(ctx, models.StrategyState{"BTCUSDT": {LastFingerprint: "x_BUY"}}))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPgTxManager_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	p, tx := newTestPostgres(t, "it_rollback")

	boom := errors.New("boom")
	err := tx.RunMaster(ctx, func(ctxTx context.Context, pgTx pgx.Tx) error {
		if _, err := pgTx.Exec(ctxTx, upsertStateSQL, "it_rollback", "BTCUSDT", "x_BUY"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}
