package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/skyreach/ssot-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         TEXT PRIMARY KEY,
	country    TEXT NOT NULL,
	records    TEXT NOT NULL,
	report     TEXT NOT NULL,
	metrics    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap *model.Snapshot) error {
	records, report, metrics, err := marshalSnapshot(snap)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, country, records, report, metrics, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.Country, records, report, metrics, snap.CreatedAt.UTC(),
	)
	return eris.Wrap(err, "sqlite: insert snapshot")
}

func (s *SQLiteStore) GetSnapshot(ctx context.Context, id string) (*model.Snapshot, error) {
	var snap model.Snapshot
	var records, report, metrics string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, country, records, report, metrics, created_at FROM snapshots WHERE id = ?`, id,
	).Scan(&snap.ID, &snap.Country, &records, &report, &metrics, &snap.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get snapshot")
	}
	if err := unmarshalSnapshot(&snap, records, report, metrics); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *SQLiteStore) ListSnapshots(ctx context.Context, limit int) ([]model.SnapshotMeta, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, country, records, report, metrics, created_at FROM snapshots ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list snapshots")
	}
	defer rows.Close()

	var out []model.SnapshotMeta
	for rows.Next() {
		var snap model.Snapshot
		var records, report, metrics string
		if err := rows.Scan(&snap.ID, &snap.Country, &records, &report, &metrics, &snap.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan snapshot")
		}
		if err := unmarshalSnapshot(&snap, records, report, metrics); err != nil {
			return nil, err
		}
		out = append(out, snapshotMeta(&snap))
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list snapshots")
}

func marshalSnapshot(snap *model.Snapshot) (records, report, metrics string, err error) {
	r, err := json.Marshal(snap.Records)
	if err != nil {
		return "", "", "", eris.Wrap(err, "store: marshal records")
	}
	v, err := json.Marshal(snap.Report)
	if err != nil {
		return "", "", "", eris.Wrap(err, "store: marshal report")
	}
	m, err := json.Marshal(snap.Metrics)
	if err != nil {
		return "", "", "", eris.Wrap(err, "store: marshal metrics")
	}
	return string(r), string(v), string(m), nil
}

func unmarshalSnapshot(snap *model.Snapshot, records, report, metrics string) error {
	if err := json.Unmarshal([]byte(records), &snap.Records); err != nil {
		return eris.Wrap(err, "store: unmarshal records")
	}
	if err := json.Unmarshal([]byte(report), &snap.Report); err != nil {
		return eris.Wrap(err, "store: unmarshal report")
	}
	if err := json.Unmarshal([]byte(metrics), &snap.Metrics); err != nil {
		return eris.Wrap(err, "store: unmarshal metrics")
	}
	snap.CreatedAt = snap.CreatedAt.UTC()
	return nil
}

func snapshotMeta(snap *model.Snapshot) model.SnapshotMeta {
	return model.SnapshotMeta{
		ID:        snap.ID,
		Country:   snap.Country,
		Rows:      len(snap.Records),
		Failed:    len(snap.Report.FailedRows),
		Metrics:   snap.Metrics,
		CreatedAt: snap.CreatedAt,
	}
}
