package scorecarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// BunStore keeps saves in the saved_games table of a Postgres or SQLite
// database.
type BunStore struct {
	db bun.IDB
}

// NewBunStore creates a store on an open bun handle.
func NewBunStore(db bun.IDB) *BunStore {
	return &BunStore{db: db}
}

func (s *BunStore) Get(ctx context.Context, key string) ([]byte, error) {
	row := new(SavedGame)
	err := s.db.NewSelect().
		Model(row).
		Where("slot_key = ?", key).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to get saved game: %w", err)
	}
	return []byte(row.Payload), nil
}

func (s *BunStore) Put(ctx context.Context, key string, value []byte) error {
	row := &SavedGame{
		Key:       key,
		Payload:   string(value),
		UpdatedAt: time.Now().UTC(),
	}
	_, err := s.db.NewInsert().
		Model(row).
		On("CONFLICT (slot_key) DO UPDATE").
		Set("payload = EXCLUDED.payload").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert saved game: %w", err)
	}
	return nil
}

func (s *BunStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.NewDelete().
		Model((*SavedGame)(nil)).
		Where("slot_key = ?", key).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete saved game: %w", err)
	}
	return nil
}

// OpenPostgres connects to Postgres through pgdriver and verifies the
// connection.
func OpenPostgres(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if err := sqldb.PingContext(ctx); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

// OpenSQLite opens (creating if needed) a SQLite database file. Use
// "file::memory:?cache=shared" for an in-memory database.
func OpenSQLite(ctx context.Context, path string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	sqldb.SetMaxOpenConns(1)
	if err := sqldb.PingContext(ctx); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

var _ Store = (*BunStore)(nil)
