package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/skyreach/ssot-cli/internal/config"
	"github.com/skyreach/ssot-cli/internal/model"
)

// Store defines snapshot persistence for aggregation runs.
type Store interface {
	SaveSnapshot(ctx context.Context, snap *model.Snapshot) error
	GetSnapshot(ctx context.Context, id string) (*model.Snapshot, error)
	ListSnapshots(ctx context.Context, limit int) ([]model.SnapshotMeta, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store from configuration.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLite(cfg.SQLitePath)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	}
	return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
}
