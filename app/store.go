package app

import (
	"context"
	"fmt"
	"log/slog"

	scorecarddb "github.com/Black-And-White-Club/three-under/app/modules/scorecard/infrastructure/repositories"
	"github.com/Black-And-White-Club/three-under/config"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/uptrace/bun"
)

// OpenStore connects the save store selected by cfg.Store.Driver. SQL stores
// are migrated before use. The returned func releases the connection.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (scorecarddb.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Driver {
	case config.StoreMemory:
		logger.WarnContext(ctx, "Using in-memory save store; rounds are lost on restart")
		return scorecarddb.NewMemoryStore(), noop, nil

	case config.StoreSQLite:
		db, err := scorecarddb.OpenSQLite(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		return migratedBunStore(ctx, db, logger, "sqlite")

	case config.StorePostgres:
		db, err := scorecarddb.OpenPostgres(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		return migratedBunStore(ctx, db, logger, "postgres")

	case config.StoreRedis:
		client, err := scorecarddb.OpenRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		logger.InfoContext(ctx, "Using Redis save store", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		return scorecarddb.NewRedisStore(client, cfg.Redis.Prefix), client.Close, nil

	case config.StoreNATS:
		nc, err := nats.Connect(cfg.NATS.URL, nats.RetryOnFailedConnect(true), nats.MaxReconnects(-1))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		js, err := jetstream.New(nc)
		if err != nil {
			nc.Close()
			return nil, nil, fmt.Errorf("failed to initialize JetStream: %w", err)
		}
		store, err := scorecarddb.NewNATSKVStore(ctx, js, cfg.NATS.KVBucket)
		if err != nil {
			nc.Close()
			return nil, nil, err
		}
		logger.InfoContext(ctx, "Using NATS KeyValue save store", "bucket", cfg.NATS.KVBucket)
		return store, func() error { return nc.Drain() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func migratedBunStore(ctx context.Context, db *bun.DB, logger *slog.Logger, dialect string) (scorecarddb.Store, func() error, error) {
	if err := scorecarddb.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	logger.InfoContext(ctx, "Using SQL save store", "dialect", dialect)
	return scorecarddb.NewBunStore(db), db.Close, nil
}
