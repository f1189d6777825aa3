package db

import (
	"context"
	"fmt"

	"alert_bot/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PoolConfig struct {
	DSN string
}

// NewPool открывает пул и сразу проверяет соединение.
func NewPool(ctx context.Context, conf PoolConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, conf.DSN)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

// PgTxManager — TxManager поверх одного пула (master).
type PgTxManager struct {
	pool *pgxpool.Pool
	opts pgx.TxOptions
}

func NewPgTxManager(pool *pgxpool.Pool) *PgTxManager {
	return &PgTxManager{
		pool: pool,
		opts: pgx.TxOptions{IsoLevel: pgx.ReadCommitted},
	}
}

func (m *PgTxManager) Close() { m.pool.Close() }

func (m *PgTxManager) Conn() Transaction { return m.pool }

// RunMaster выполняет fn в транзакции: ошибка или паника — rollback, иначе commit.
func (m *PgTxManager) RunMaster(ctx context.Context, fn func(ctxTx context.Context, tx pgx.Tx) error) (err error) {
	tx, err := m.pool.BeginTx(ctx, m.opts)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		p := recover()
		switch {
		case p != nil:
			logger.Error("[DB] tx panic, rollback: %v", p)
			_ = tx.Rollback(ctx)
			panic(p)
		case err != nil:
			if rerr := tx.Rollback(ctx); rerr != nil {
				logger.Warn("[DB] rollback: %v", rerr)
			}
		default:
			if err = tx.Commit(ctx); err != nil {
				err = fmt.Errorf("commit: %w", err)
			}
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return fmt.Errorf("tx fn: %w", err)
	}
	return nil
}
