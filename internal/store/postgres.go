// Package store archives final account snapshots to Postgres. The engine
// itself keeps no state between runs; this is a report sink, same as the
// CSV output.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rainbow1016/bank-payments-system/internal/domain"
)

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS account_snapshots (
	id        BIGSERIAL PRIMARY KEY,
	run_at    TIMESTAMPTZ NOT NULL,
	client_id INTEGER NOT NULL,
	available NUMERIC NOT NULL,
	held      NUMERIC NOT NULL,
	total     NUMERIC NOT NULL,
	locked    BOOLEAN NOT NULL
)`

type SnapshotStore struct {
	db *pgxpool.Pool
}

// NewSnapshotStore connects to Postgres and bootstraps the snapshot table.
func NewSnapshotStore(ctx context.Context, connString string) (*SnapshotStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, snapshotSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to create snapshot table: %w", err)
	}

	return &SnapshotStore{db: pool}, nil
}

func (s *SnapshotStore) Close() {
	s.db.Close()
}

// Archive bulk-inserts one snapshot, all rows stamped with runAt.
func (s *SnapshotStore) Archive(ctx context.Context, runAt time.Time, accounts []domain.Account) (int64, error) {
	rows := snapshotRows(runAt, accounts)
	count, err := s.db.CopyFrom(
		ctx,
		pgx.Identifier{"account_snapshots"},
		[]string{"run_at", "client_id", "available", "held", "total", "locked"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("snapshot bulk insert failed: %w", err)
	}
	return count, nil
}

// snapshotRows converts accounts into CopyFrom rows. Balances travel as
// strings so Postgres NUMERIC keeps the full stored precision.
func snapshotRows(runAt time.Time, accounts []domain.Account) [][]interface{} {
	rows := make([][]interface{}, 0, len(accounts))
	for _, acc := range accounts {
		rows = append(rows, []interface{}{
			runAt,
			int32(acc.Client),
			acc.Available.String(),
			acc.Held.String(),
			acc.Total.String(),
			acc.Locked,
		})
	}
	return rows
}
