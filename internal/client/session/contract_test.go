package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises the behaviour every Store backend must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()

	t.Run("get absent", func(t *testing.T) {
		s := newStore(t)
		v, ok, err := s.Get(context.Background(), "absent")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("set then get and upsert", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.Set(ctx, KeyTheme, "default"))
		require.NoError(t, s.Set(ctx, KeyTheme, "Halloween"))

		v, ok, err := s.Get(ctx, KeyTheme)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Halloween", v)
	})

	t.Run("multiset writes every pair", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		pairs := make([]Pair, 0, len(Keys))
		for _, k := range Keys {
			pairs = append(pairs, Pair{Key: k, Value: "v" + k})
		}
		require.NoError(t, s.MultiSet(ctx, pairs))

		for _, k := range Keys {
			v, ok, err := s.Get(ctx, k)
			require.NoError(t, err)
			require.True(t, ok, k)
			assert.Equal(t, "v"+k, v)
		}
	})

	t.Run("multiremove is idempotent and keeps other keys", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		require.NoError(t, s.MultiSet(ctx, []Pair{
			{Key: KeyToken, Value: "t"},
			{Key: KeyUserID, Value: "42"},
			{Key: "@other", Value: "keep"},
		}))

		require.NoError(t, s.MultiRemove(ctx, Keys...))
		require.NoError(t, s.MultiRemove(ctx, Keys...))

		for _, k := range Keys {
			_, ok, err := s.Get(ctx, k)
			require.NoError(t, err)
			assert.False(t, ok, k)
		}
		v, ok, err := s.Get(ctx, "@other")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "keep", v)
	})

	t.Run("empty batches", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		require.NoError(t, s.MultiSet(ctx, nil))
		require.NoError(t, s.MultiRemove(ctx))
	})
}
