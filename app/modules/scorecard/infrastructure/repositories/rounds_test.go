package scorecarddb

import (
	"context"
	"errors"
	"testing"

	scorecarddomain "github.com/Black-And-White-Club/three-under/app/modules/scorecard/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore returns err from every call.
type failingStore struct{ err error }

func (f failingStore) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingStore) Put(context.Context, string, []byte) error   { return f.err }
func (f failingStore) Delete(context.Context, string) error        { return f.err }

func TestRoundRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRoundRepository(NewMemoryStore())
	key := "RI_Saved_Game1_riverside"

	r := scorecarddomain.NewRound("riverside", []string{"Al B", "Cy D"})
	_, _ = r.SetScore(0, 0, "4")
	_, _ = r.SetScore(1, 17, "5")

	require.NoError(t, repo.SaveRound(ctx, key, r))

	exists, err := repo.RoundExists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := repo.LoadRound(ctx, key, "riverside")
	require.NoError(t, err)
	if diff := cmp.Diff(r, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, repo.DeleteRound(ctx, key))
	require.NoError(t, repo.DeleteRound(ctx, key))

	_, err = repo.LoadRound(ctx, key, "riverside")
	assert.ErrorIs(t, err, scorecarddomain.ErrSaveNotFound)

	exists, err = repo.RoundExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRoundRepository_Malformed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "k", []byte("{{{")))
	repo := NewRoundRepository(store)

	_, err := repo.LoadRound(ctx, "k", "riverside")
	var malformed *scorecarddomain.MalformedSaveDataError
	assert.ErrorAs(t, err, &malformed)

	exists, err := repo.RoundExists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRoundRepository_StoreFailures(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("connection reset")
	repo := NewRoundRepository(failingStore{err: cause})

	_, err := repo.LoadRound(ctx, "k", "c")
	var readErr *scorecarddomain.StoreReadError
	require.ErrorAs(t, err, &readErr)
	assert.ErrorIs(t, err, cause)

	_, err = repo.RoundExists(ctx, "k")
	assert.ErrorAs(t, err, &readErr)

	err = repo.SaveRound(ctx, "k", scorecarddomain.DefaultRound("c"))
	var writeErr *scorecarddomain.StoreWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.ErrorIs(t, err, scorecarddomain.ErrStoreUnavailable)

	assert.ErrorAs(t, repo.DeleteRound(ctx, "k"), &writeErr)
}
