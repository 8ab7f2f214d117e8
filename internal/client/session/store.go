// Package session persists the login session on the device: the backend
// token plus the profile fields derived from it, kept as a flat string
// key-value namespace.
//
// Several backends implement Store: SQLiteStore (default, on-disk),
// RedisStore (shared desktop/dev setups), MemoryStore (tests and throwaway
// sessions) and SealedStore, a decorator that encrypts values at rest.
package session

import (
	"context"
	"errors"
)

// Storage keys. The set is fixed by the mobile app and read by other
// components, so the names must not change.
const (
	KeyToken       = "@token"
	KeyUserID      = "@userId"
	KeyMobilePhone = "@mobilePhone"
	KeyUserName    = "@userName"
	KeyUniqueName  = "@uniqueName"
	KeyUserEmail   = "@userEmail"
	KeyIsPremium   = "@isPremium"
	KeyTheme       = "@theme"
)

// Keys lists every session key in storage order.
var Keys = []string{
	KeyToken,
	KeyUserID,
	KeyMobilePhone,
	KeyUserName,
	KeyUniqueName,
	KeyUserEmail,
	KeyIsPremium,
	KeyTheme,
}

var ErrUnknownBackend = errors.New("unknown session store backend")

// Pair is a single key/value entry of a batched write.
type Pair struct {
	Key   string
	Value string
}

// Store is the device key-value storage used for session data.
//
// Get reports ok=false (and no error) when the key is absent.
// MultiSet writes all pairs as one batch; backends that can make the batch
// atomic do so. MultiRemove ignores keys that are not present.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	MultiSet(ctx context.Context, pairs []Pair) error
	MultiRemove(ctx context.Context, keys ...string) error
}
