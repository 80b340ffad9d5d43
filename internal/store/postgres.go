package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/skyreach/ssot-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         TEXT PRIMARY KEY,
	country    TEXT NOT NULL,
	records    JSONB NOT NULL,
	report     JSONB NOT NULL,
	metrics    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveSnapshot(ctx context.Context, snap *model.Snapshot) error {
	records, report, metrics, err := marshalSnapshot(snap)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO snapshots (id, country, records, report, metrics, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		snap.ID, snap.Country, records, report, metrics, snap.CreatedAt.UTC(),
	)
	return eris.Wrap(err, "postgres: insert snapshot")
}

func (s *PostgresStore) GetSnapshot(ctx context.Context, id string) (*model.Snapshot, error) {
	var snap model.Snapshot
	var records, report, metrics string
	err := s.pool.QueryRow(ctx,
		`SELECT id, country, records, report, metrics, created_at FROM snapshots WHERE id = $1`, id,
	).Scan(&snap.ID, &snap.Country, &records, &report, &metrics, &snap.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get snapshot")
	}
	if err := unmarshalSnapshot(&snap, records, report, metrics); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *PostgresStore) ListSnapshots(ctx context.Context, limit int) ([]model.SnapshotMeta, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, country, records, report, metrics, created_at FROM snapshots ORDER BY created_at DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list snapshots")
	}
	defer rows.Close()

	var out []model.SnapshotMeta
	for rows.Next() {
		var snap model.Snapshot
		var records, report, metrics string
		if err := rows.Scan(&snap.ID, &snap.Country, &records, &report, &metrics, &snap.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan snapshot")
		}
		if err := unmarshalSnapshot(&snap, records, report, metrics); err != nil {
			return nil, err
		}
		out = append(out, snapshotMeta(&snap))
	}
	return out, eris.Wrap(rows.Err(), "postgres: list snapshots")
}
