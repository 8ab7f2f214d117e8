package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealedStore_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		s, err := NewSealedStore(context.Background(), NewMemoryStore(), []byte("pass"))
		require.NoError(t, err)
		return s
	})
}

func TestSealedStore_ValuesAreEncryptedAtRest(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	s, err := NewSealedStore(ctx, inner, []byte("pass"))
	require.NoError(t, err)

	require.NoError(t, s.MultiSet(ctx, []Pair{{Key: KeyToken, Value: "secret-token"}}))

	raw, ok, err := inner.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, raw, "secret-token")

	v, ok, err := s.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "secret-token", v)
}

func TestSealedStore_ReopenWithSamePassphrase(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()

	first, err := NewSealedStore(ctx, inner, []byte("pass"))
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, KeyUserEmail, "a@b.c"))

	second, err := NewSealedStore(ctx, inner, []byte("pass"))
	require.NoError(t, err)
	v, ok, err := second.Get(ctx, KeyUserEmail)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a@b.c", v)
}

func TestSealedStore_WrongPassphrase(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()

	good, err := NewSealedStore(ctx, inner, []byte("pass"))
	require.NoError(t, err)
	require.NoError(t, good.Set(ctx, KeyToken, "tok"))

	bad, err := NewSealedStore(ctx, inner, []byte("nope"))
	require.NoError(t, err)
	_, _, err = bad.Get(ctx, KeyToken)
	require.ErrorIs(t, err, ErrSealBroken)
}

func TestSealedStore_LogoutKeepsSalt(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	s, err := NewSealedStore(ctx, inner, []byte("pass"))
	require.NoError(t, err)

	require.NoError(t, s.MultiRemove(ctx, Keys...))
	_, ok, err := inner.Get(ctx, KeySealSalt)
	require.NoError(t, err)
	assert.True(t, ok)
}
