package scorecarddb_test

import (
	"context"
	"path/filepath"
	"testing"

	scorecarddb "github.com/Black-And-White-Club/three-under/app/modules/scorecard/infrastructure/repositories"
	"github.com/Black-And-White-Club/three-under/app/modules/scorecard/infrastructure/repositories/storetest"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) scorecarddb.Store {
	t.Helper()
	ctx := context.Background()

	db, err := scorecarddb.OpenSQLite(ctx, filepath.Join(t.TempDir(), "saves.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, scorecarddb.Migrate(ctx, db))
	return scorecarddb.NewBunStore(db)
}

func TestBunStore_SQLite(t *testing.T) {
	storetest.Run(t, newSQLiteStore)
}

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	db, err := scorecarddb.OpenSQLite(ctx, filepath.Join(t.TempDir(), "saves.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, scorecarddb.Migrate(ctx, db))
	require.NoError(t, scorecarddb.Migrate(ctx, db))
}
