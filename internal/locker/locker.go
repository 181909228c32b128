package locker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nimasrn/donor-hub/pkg/logger"
	"github.com/nimasrn/donor-hub/pkg/redis"
)

var (
	// ErrLockHeld means another request owns the lease right now.
	ErrLockHeld = errors.New("lock is held by another request")
	// ErrLockUnavailable wraps failures talking to redis.
	ErrLockUnavailable = errors.New("lock backend unavailable")
)

type Config struct {
	TTL       time.Duration
	KeyPrefix string
}

func DefaultConfig() Config {
	return Config{
		TTL:       30 * time.Second,
		KeyPrefix: "lock:",
	}
}

// Locker hands out short-lived leases backed by redis SET NX. A lease that
// is never released expires after TTL.
type Locker struct {
	redis  redis.RedisAdapter
	config Config
}

func New(adapter redis.RedisAdapter, config Config) *Locker {
	if config.TTL <= 0 {
		config.TTL = DefaultConfig().TTL
	}
	return &Locker{
		redis:  adapter,
		config: config,
	}
}

// Lease is an acquired lock. The zero value releases as a no-op.
type Lease struct {
	key    string
	token  []byte
	locker *Locker
}

func (l *Locker) Acquire(ctx context.Context, name string) (*Lease, error) {
	key := l.config.KeyPrefix + name
	token := []byte(uuid.NewString())

	ok, err := l.redis.SetNX(ctx, key, token, l.config.TTL)
	if err != nil {
		logger.Error("[locker] failed to acquire", "key", key, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrLockUnavailable, err)
	}
	if !ok {
		logger.Info("[locker] already held", "key", key)
		return nil, ErrLockHeld
	}

	logger.Debug("[locker] acquired", "key", key, "ttl", l.config.TTL)
	return &Lease{key: key, token: token, locker: l}, nil
}

// Release deletes the key only if this lease still owns it, so a lease
// that outlived its TTL cannot drop a newer holder's lock.
func (l *Lease) Release(ctx context.Context) error {
	if l == nil || l.locker == nil {
		return nil
	}
	deleted, err := l.locker.redis.DelIfEqual(ctx, l.key, l.token)
	if err != nil {
		logger.Warn("[locker] failed to release", "key", l.key, "error", err)
		return err
	}
	if !deleted {
		logger.Warn("[locker] lease expired before release", "key", l.key)
	}
	l.locker = nil
	return nil
}
