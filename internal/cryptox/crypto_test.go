package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey(t *testing.T) {
	salt := bytes.Repeat([]byte{1}, SaltSize)

	k1 := DeriveKey([]byte("pass"), salt)
	k2 := DeriveKey([]byte("pass"), salt)
	k3 := DeriveKey([]byte("other"), salt)

	assert.Len(t, k1, KeySize)
	assert.Equal(t, k1, k2, "derivation must be deterministic")
	assert.NotEqual(t, k1, k3)
}

func TestNewSalt(t *testing.T) {
	a, err := NewSalt()
	require.NoError(t, err)
	b, err := NewSalt()
	require.NoError(t, err)

	assert.Len(t, a, SaltSize)
	assert.NotEqual(t, a, b)
}

func TestSealer_RoundTripAndNonce(t *testing.T) {
	s, err := NewSealer(DeriveKey([]byte("pass"), make([]byte, SaltSize)))
	require.NoError(t, err)

	c1, err := s.Seal([]byte("token"))
	require.NoError(t, err)
	c2, err := s.Seal([]byte("token"))
	require.NoError(t, err)
	assert.NotEqual(t, c1, c2, "each seal uses a fresh nonce")

	p, err := s.Open(c1)
	require.NoError(t, err)
	assert.Equal(t, "token", string(p))
}

func TestSealer_OpenRejects(t *testing.T) {
	s, err := NewSealer(DeriveKey([]byte("pass"), make([]byte, SaltSize)))
	require.NoError(t, err)
	other, err := NewSealer(DeriveKey([]byte("nope"), make([]byte, SaltSize)))
	require.NoError(t, err)

	c, err := s.Seal([]byte("token"))
	require.NoError(t, err)

	_, err = other.Open(c)
	require.ErrorIs(t, err, ErrOpen)

	_, err = s.Open([]byte("short"))
	require.ErrorIs(t, err, ErrOpen)

	c[len(c)-1] ^= 0xff
	_, err = s.Open(c)
	require.ErrorIs(t, err, ErrOpen)
}

func TestNewSealer_BadKey(t *testing.T) {
	_, err := NewSealer([]byte("short"))
	require.Error(t, err)
}
