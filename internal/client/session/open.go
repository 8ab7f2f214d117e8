package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and parameterises the store backend.
type Options struct {
	Backend        string
	Path           string
	RedisAddr      string
	RedisNamespace string
	// SealPassphrase enables at-rest encryption when non-empty.
	SealPassphrase string
}

// Open builds the configured Store. The returned close function releases
// the backend connection and is never nil.
func Open(ctx context.Context, opts Options) (Store, func() error, error) {
	var (
		store   Store
		closeFn = func() error { return nil }
	)

	switch opts.Backend {
	case BackendSQLite, "":
		db, err := InitDatabase(ctx, opts.Path)
		if err != nil {
			return nil, nil, err
		}
		store, closeFn = NewSQLiteStore(db), db.Close
	case BackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: opts.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("redis ping %s: %w", opts.RedisAddr, err)
		}
		store, closeFn = NewRedisStore(rdb, opts.RedisNamespace), rdb.Close
	case BackendMemory:
		store = NewMemoryStore()
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}

	if opts.SealPassphrase != "" {
		sealed, err := NewSealedStore(ctx, store, []byte(opts.SealPassphrase))
		if err != nil {
			_ = closeFn()
			return nil, nil, fmt.Errorf("seal session store: %w", err)
		}
		store = sealed
	}
	return store, closeFn, nil
}
