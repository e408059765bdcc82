package testutils

import (
	"context"
	"fmt"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	goredis "github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/uptrace/bun"

	scorecarddb "github.com/Black-And-White-Club/three-under/app/modules/scorecard/infrastructure/repositories"
	"github.com/Black-And-White-Club/three-under/integration_tests/containers"
)

// TestEnvironment holds the containers and clients shared by one test package.
type TestEnvironment struct {
	Ctx context.Context

	PostgresDSN string
	NATSURL     string
	RedisAddr   string

	DB        *bun.DB
	NatsConn  *nats.Conn
	JetStream jetstream.JetStream
	Redis     *goredis.Client

	containers []testcontainers.Container
	closers    []func() error
}

// NewTestEnvironment starts Postgres, NATS and Redis and connects to each.
func NewTestEnvironment(ctx context.Context) (*TestEnvironment, error) {
	env := &TestEnvironment{Ctx: ctx}
	if err := env.setup(ctx); err != nil {
		env.Cleanup()
		return nil, err
	}
	return env, nil
}

func (env *TestEnvironment) setup(ctx context.Context) error {
	pgContainer, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return fmt.Errorf("failed to setup postgres container: %w", err)
	}
	env.containers = append(env.containers, pgContainer)
	env.PostgresDSN = dsn

	natsContainer, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		return fmt.Errorf("failed to setup nats container: %w", err)
	}
	env.containers = append(env.containers, natsContainer)
	env.NATSURL = natsURL

	redisContainer, redisAddr, err := containers.SetupRedisContainer(ctx)
	if err != nil {
		return fmt.Errorf("failed to setup redis container: %w", err)
	}
	env.containers = append(env.containers, redisContainer)
	env.RedisAddr = redisAddr

	db, err := scorecarddb.OpenPostgres(ctx, dsn)
	if err != nil {
		return err
	}
	env.DB = db
	env.closers = append(env.closers, db.Close)
	if err := scorecarddb.Migrate(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	nc, err := nats.Connect(natsURL, nats.Timeout(10*time.Second))
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	env.NatsConn = nc
	env.closers = append(env.closers, func() error { nc.Close(); return nil })

	js, err := jetstream.New(nc)
	if err != nil {
		return fmt.Errorf("failed to create JetStream context: %w", err)
	}
	env.JetStream = js

	rdb, err := scorecarddb.OpenRedis(ctx, redisAddr, "", 0)
	if err != nil {
		return err
	}
	env.Redis = rdb
	env.closers = append(env.closers, rdb.Close)
	return nil
}

// Cleanup closes every client and terminates the containers.
func (env *TestEnvironment) Cleanup() {
	for i := len(env.closers) - 1; i >= 0; i-- {
		if err := env.closers[i](); err != nil {
			log.Printf("cleanup: %v", err)
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, c := range env.containers {
		if err := c.Terminate(ctx); err != nil {
			log.Printf("Failed to terminate container: %v", err)
		}
	}
}

// PostgresStore returns a bun store over an emptied saved_games table.
func (env *TestEnvironment) PostgresStore(t *testing.T) scorecarddb.Store {
	t.Helper()
	if _, err := env.DB.NewTruncateTable().Model((*scorecarddb.SavedGame)(nil)).Exec(env.Ctx); err != nil {
		t.Fatalf("failed to truncate saved_games: %v", err)
	}
	return scorecarddb.NewBunStore(env.DB)
}

// RedisStore returns a store under a fresh key prefix.
func (env *TestEnvironment) RedisStore(t *testing.T) scorecarddb.Store {
	t.Helper()
	return scorecarddb.NewRedisStore(env.Redis, "test:"+uuid.NewString()+":")
}

// NATSKVStore returns a store over a fresh bucket that is deleted when t ends.
func (env *TestEnvironment) NATSKVStore(t *testing.T) scorecarddb.Store {
	t.Helper()
	bucket := "saves_" + uuid.NewString()[:8]
	store, err := scorecarddb.NewNATSKVStore(env.Ctx, env.JetStream, bucket)
	if err != nil {
		t.Fatalf("failed to create KV bucket: %v", err)
	}
	t.Cleanup(func() {
		if err := env.JetStream.DeleteKeyValue(context.Background(), bucket); err != nil {
			t.Logf("failed to delete KV bucket %s: %v", bucket, err)
		}
	})
	return store
}
