package service

import (
	"context"
	"fmt"

	"alert_bot/internal/models"
	"alert_bot/pkg/db"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS alert_state (
	strategy    TEXT        NOT NULL,
	symbol      TEXT        NOT NULL,
	fingerprint TEXT        NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (strategy, symbol)
)`

const selectStateSQL = `SELECT symbol, fingerprint FROM alert_state WHERE strategy = $1`

const upsertStateSQL = `
INSERT INTO alert_state (strategy, symbol, fingerprint, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (strategy, symbol)
DO UPDATE SET fingerprint = EXCLUDED.fingerprint, updated_at = now()
WHERE alert_state.fingerprint <> EXCLUDED.fingerprint`

// Postgres хранит состояние в таблице alert_state, одна строка на (strategy, symbol).
type Postgres struct {
	db       db.TxManager
	strategy string
}

func NewPostgres(tx db.TxManager, strategy string) *Postgres {
	return &Postgres{db: tx, strategy: strategy}
}

func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Conn().Exec(ctx, createTableSQL); err != nil {
		return errors.Wrap(err, "create alert_state")
	}
	return nil
}

func (p *Postgres) Load(ctx context.Context) (st models.StrategyState, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.LoadState: %w", err)
		}
	}()

	rows, err := p.db.Conn().Query(ctx, selectStateSQL, p.strategy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	st = models.StrategyState{}
	for rows.Next() {
		var symbol, fp string
		if err := rows.Scan(&symbol, &fp); err != nil {
			return nil, err
		}
		st[symbol] = models.SymbolState{LastFingerprint: fp}
	}
	return st, rows.Err()
}

// Save апсертит всю карту в одной транзакции.
func (p *Postgres) Save(ctx context.Context, st models.StrategyState) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.SaveState: %w", err)
		}
	}()

	return p.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for symbol, s := range st {
			batch.Queue(upsertStateSQL, p.strategy, symbol, s.LastFingerprint)
		}
		return tx.SendBatch(ctxTx, batch).Close()
	})
}
