// Package storetest is the behaviour suite every save store driver must pass.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	scorecarddb "github.com/Black-And-White-Club/three-under/app/modules/scorecard/infrastructure/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises newStore's driver. newStore must return an empty store.
func Run(t *testing.T, newStore func(t *testing.T) scorecarddb.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing key", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(ctx, "RI_Saved_Game1_riverside")
		assert.ErrorIs(t, err, scorecarddb.ErrKeyNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		s := newStore(t)
		value := []byte(`{"players":["Ann"],"scores":[[]],"courseKey":"riverside"}`)
		require.NoError(t, s.Put(ctx, "RI_Saved_Game1_riverside", value))

		got, err := s.Get(ctx, "RI_Saved_Game1_riverside")
		require.NoError(t, err)
		assert.JSONEq(t, string(value), string(got))
	})

	t.Run("put overwrites", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, "k1", []byte(`{"v":1}`)))
		require.NoError(t, s.Put(ctx, "k1", []byte(`{"v":2}`)))

		got, err := s.Get(ctx, "k1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"v":2}`, string(got))
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, "CE_Saved_Game1_cedar_ridge", []byte(`{"slot":1}`)))
		require.NoError(t, s.Put(ctx, "CE_Saved_Game2_cedar_ridge", []byte(`{"slot":2}`)))
		require.NoError(t, s.Delete(ctx, "CE_Saved_Game1_cedar_ridge"))

		got, err := s.Get(ctx, "CE_Saved_Game2_cedar_ridge")
		require.NoError(t, err)
		assert.JSONEq(t, `{"slot":2}`, string(got))
	})

	t.Run("delete then get", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, "k1", []byte(`{}`)))
		require.NoError(t, s.Delete(ctx, "k1"))

		_, err := s.Get(ctx, "k1")
		assert.ErrorIs(t, err, scorecarddb.ErrKeyNotFound)
	})

	t.Run("delete missing key", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Delete(ctx, "never-written"))
		assert.NoError(t, s.Delete(ctx, "never-written"))
	})

	t.Run("put after delete", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Put(ctx, "k1", []byte(`{"v":1}`)))
		require.NoError(t, s.Delete(ctx, "k1"))
		require.NoError(t, s.Put(ctx, "k1", []byte(`{"v":3}`)))

		got, err := s.Get(ctx, "k1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"v":3}`, string(got))
	})

	t.Run("concurrent writers", func(t *testing.T) {
		s := newStore(t)
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				assert.NoError(t, s.Put(ctx, fmt.Sprintf("key-%d", i), []byte(fmt.Sprintf(`{"i":%d}`, i))))
			}(i)
		}
		wg.Wait()

		for i := 0; i < 8; i++ {
			got, err := s.Get(ctx, fmt.Sprintf("key-%d", i))
			require.NoError(t, err)
			assert.JSONEq(t, fmt.Sprintf(`{"i":%d}`, i), string(got))
		}
	})
}
