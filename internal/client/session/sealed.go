package session

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/cryptox"
)

// KeySealSalt holds the per-device salt used to derive the sealing key.
// It is not part of Keys, so logout leaves it in place.
const KeySealSalt = "@sealSalt"

var ErrSealBroken = errors.New("sealed value cannot be opened")

// SealedStore encrypts values with AES-GCM before handing them to the
// wrapped Store. Keys are stored in clear text.
type SealedStore struct {
	inner  Store
	sealer *cryptox.Sealer
}

// NewSealedStore derives an AES-256 key from passphrase with argon2id. The
// salt is read from inner, or generated and saved on first use.
func NewSealedStore(ctx context.Context, inner Store, passphrase []byte) (*SealedStore, error) {
	salt, err := loadOrCreateSalt(ctx, inner)
	if err != nil {
		return nil, err
	}

	sealer, err := cryptox.NewSealer(cryptox.DeriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}
	return &SealedStore{inner: inner, sealer: sealer}, nil
}

func loadOrCreateSalt(ctx context.Context, inner Store) ([]byte, error) {
	encoded, ok, err := inner.Get(ctx, KeySealSalt)
	if err != nil {
		return nil, err
	}
	if ok {
		salt, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("corrupt seal salt: %w", err)
		}
		return salt, nil
	}

	salt, err := cryptox.NewSalt()
	if err != nil {
		return nil, err
	}
	if err := inner.Set(ctx, KeySealSalt, base64.StdEncoding.EncodeToString(salt)); err != nil {
		return nil, err
	}
	return salt, nil
}

func (s *SealedStore) seal(plaintext string) (string, error) {
	out, err := s.sealer.Seal([]byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

func (s *SealedStore) open(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrSealBroken
	}
	plaintext, err := s.sealer.Open(raw)
	if err != nil {
		return "", ErrSealBroken
	}
	return string(plaintext), nil
}

func (s *SealedStore) Get(ctx context.Context, key string) (string, bool, error) {
	encoded, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}
	v, err := s.open(encoded)
	if err != nil {
		return "", false, fmt.Errorf("session[%s]: %w", key, err)
	}
	return v, true, nil
}

func (s *SealedStore) Set(ctx context.Context, key, value string) error {
	sealed, err := s.seal(value)
	if err != nil {
		return err
	}
	return s.inner.Set(ctx, key, sealed)
}

func (s *SealedStore) MultiSet(ctx context.Context, pairs []Pair) error {
	sealed := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		v, err := s.seal(p.Value)
		if err != nil {
			return err
		}
		sealed = append(sealed, Pair{Key: p.Key, Value: v})
	}
	return s.inner.MultiSet(ctx, sealed)
}

func (s *SealedStore) MultiRemove(ctx context.Context, keys ...string) error {
	return s.inner.MultiRemove(ctx, keys...)
}
